package netsim

import (
	"testing"

	"github.com/dcflow/netsim/internal"
)

func TestLossySwitchForwardsAndDropsSilentlyOnOverflow(t *testing.T) {
	logger := &internal.NullLogger{}
	q := NewQueue(Link{FromNode: 2, ToNode: 1}, 1500)
	sw := NewLossySwitch(2, []*Queue{q}, logger)

	hdr := PacketHeader{FlowID: 0, FromNode: 0, ToNode: 1}
	if _, err := sw.Receive(NewDataPacket(hdr, 0, 1460), 0); err != nil {
		t.Fatal(err)
	}
	if got, want := q.Headroom(), uint32(0); got != want {
		t.Fatalf("headroom after first packet: got %d, want %d", got, want)
	}

	// the queue is full; a second packet overflows it and is dropped
	// without any reply to the sender.
	if _, err := sw.Receive(NewDataPacket(hdr, 1460, 1460), 0); err != nil {
		t.Fatal(err)
	}
	if got, want := q.Headroom(), uint32(0); got != want {
		t.Fatalf("headroom after overflow: got %d, want %d", got, want)
	}
}

func TestLossySwitchIgnoresControlPackets(t *testing.T) {
	logger := &internal.NullLogger{}
	q := NewQueue(Link{FromNode: 2, ToNode: 1}, 15_000)
	sw := NewLossySwitch(2, []*Queue{q}, logger)

	if _, err := sw.Receive(NewPausePacket(5), 0); err != nil {
		t.Fatal(err)
	}
	if q.IsActive() || q.HasForcedHead() {
		t.Fatal("a lossy switch has no flow control and must not react to a Pause packet")
	}
}

func TestLossySwitchExecDrainsActiveQueues(t *testing.T) {
	logger := &internal.NullLogger{}
	q := NewQueue(Link{FromNode: 2, ToNode: 1}, 15_000)
	sw := NewLossySwitch(2, []*Queue{q}, logger)

	hdr := PacketHeader{FlowID: 0, FromNode: 0, ToNode: 1}
	if _, err := sw.Receive(NewDataPacket(hdr, 0, 1460), 0); err != nil {
		t.Fatal(err)
	}
	events, err := sw.Exec(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 transmit event, got %d", len(events))
	}
	if q.IsActive() {
		t.Fatal("queue should go inactive once drained")
	}
}
