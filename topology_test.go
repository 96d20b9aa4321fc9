package netsim

import (
	"errors"
	"testing"

	"github.com/dcflow/netsim/internal"
)

func TestParseSwitchTypeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		want SwitchType
	}{
		{"lossy", SwitchLossy},
		{"pfc", SwitchPFC},
		{"ingresspfc", SwitchIngressPFC},
		{"nacks", SwitchNack},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseSwitchType(c.name)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("ParseSwitchType(%q): got %v, want %v", c.name, got, c.want)
			}
			if got.String() != c.name {
				t.Errorf("String() round trip: got %q, want %q", got.String(), c.name)
			}
		})
	}
}

func TestParseSwitchTypeUnknown(t *testing.T) {
	_, err := ParseSwitchType("bogus")
	if !errors.Is(err, ErrUnknownSwitchType) {
		t.Fatalf("expected ErrUnknownSwitchType, got %v", err)
	}
}

func TestOneBigSwitchTopologyLookups(t *testing.T) {
	logger := &internal.NullLogger{}
	topology := NewOneBigSwitchTopology(3, 15_000, 1_000_000, 1_000_000, false, SwitchLossy, logger)

	for id := uint32(0); id < 3; id++ {
		host, err := topology.LookupHost(id)
		if err != nil {
			t.Fatalf("LookupHost(%d): %v", id, err)
		}
		if host.ID() != id {
			t.Errorf("host %d: ID() = %d", id, host.ID())
		}
		node, err := topology.LookupNode(id)
		if err != nil {
			t.Fatalf("LookupNode(%d): %v", id, err)
		}
		if node.ID() != id {
			t.Errorf("LookupNode(%d): ID() = %d", id, node.ID())
		}
	}

	sw, err := topology.LookupNode(3)
	if err != nil {
		t.Fatalf("LookupNode(switch): %v", err)
	}
	if sw.ID() != 3 {
		t.Errorf("switch ID: got %d, want 3", sw.ID())
	}

	if _, err := topology.LookupHost(3); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("LookupHost(3) (a switch id) should fail with ErrUnknownNode, got %v", err)
	}
	if _, err := topology.LookupNode(99); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("LookupNode(99): expected ErrUnknownNode, got %v", err)
	}
}

func TestTopologyLookupNodesPreservesOrder(t *testing.T) {
	logger := &internal.NullLogger{}
	topology := NewOneBigSwitchTopology(3, 15_000, 1_000_000, 1_000_000, false, SwitchLossy, logger)

	nodes, err := topology.LookupNodes([]uint32{2, 0, 3})
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{2, 0, 3}
	for i, n := range nodes {
		if n.ID() != want[i] {
			t.Errorf("index %d: got id %d, want %d", i, n.ID(), want[i])
		}
	}

	if _, err := topology.LookupNodes([]uint32{0, 99}); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode on an invalid id in the batch, got %v", err)
	}
}

func TestTopologyActiveNodes(t *testing.T) {
	logger := &internal.NullLogger{}
	topology := NewOneBigSwitchTopology(2, 15_000, 1_000_000, 1_000_000, false, SwitchLossy, logger)

	if len(topology.ActiveNodes()) != 0 {
		t.Fatal("a freshly built topology should have no active nodes")
	}

	host0, err := topology.LookupHost(0)
	if err != nil {
		t.Fatal(err)
	}
	host0.PushPacket(NewDataPacket(PacketHeader{FlowID: 0, FromNode: 0, ToNode: 1}, 0, 1460))

	active := topology.ActiveNodes()
	if len(active) != 1 || active[0].ID() != 0 {
		t.Fatalf("expected only host 0 active, got %+v", active)
	}
}
