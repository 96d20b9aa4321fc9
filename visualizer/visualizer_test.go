package visualizer

import (
	"strconv"
	"strings"
	"testing"
)

func traceLine(message string, timeNs int64, node uint64, packet string) string {
	return `{"fields":{"time":` + strconv.FormatInt(timeNs, 10) +
		`,"node":` + strconv.FormatUint(node, 10) +
		`,"packet":"` + packet + `"},"level":"debug","message":"` + message + `"}`
}

func TestParseEventsPairsTxAndRxAndRebasesTime(t *testing.T) {
	lines := strings.Join([]string{
		traceLine("tx", 1_000_000_000, 0, `Data { flow: 0, from: 0, to: 1, seq: 0, length: 1460 }`),
		traceLine("rx", 1_013_000_000, 1, `Data { flow: 0, from: 0, to: 1, seq: 0, length: 1460 }`),
		`{"fields":{"id":0,"fct":52640000},"level":"info","message":"fct"}`,
	}, "\n")

	events, err := ParseEvents(strings.NewReader(lines))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 packet events (the fct record should be skipped), got %d", len(events))
	}

	tx, rx := events[0], events[1]
	if tx.Side != SideTx || rx.Side != SideRx {
		t.Fatalf("expected tx then rx, got sides %v, %v", tx.Side, rx.Side)
	}
	if tx.Time != 0 {
		t.Errorf("first event should rebase to time 0, got %d", tx.Time)
	}
	if rx.Time != 13_000_000 {
		t.Errorf("rx time relative to first event: got %d, want %d", rx.Time, 13_000_000)
	}
	if tx.PacketType != "Data" || tx.Flow != 0 || tx.From != 0 || tx.To != 1 || tx.Seq != 0 {
		t.Errorf("unexpected parsed tx event: %+v", tx)
	}
	if tx.Annotation() != rx.Annotation() {
		t.Errorf("tx/rx annotations should match for pairing: %q vs %q", tx.Annotation(), rx.Annotation())
	}
}

func TestParseEventsSkipsUnparseableAndControlPackets(t *testing.T) {
	lines := strings.Join([]string{
		traceLine("tx", 0, 2, `Pause { from: 2 }`),
		"not json at all",
		traceLine("tx", 0, 0, `Data { flow: 0, from: 0, to: 1, seq: 0, length: 1460 }`),
	}, "\n")

	events, err := ParseEvents(strings.NewReader(lines))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected only the one well-formed Data event, got %d", len(events))
	}
	if events[0].PacketType != "Data" {
		t.Errorf("got %+v", events[0])
	}
}

func TestEventColorByPacketType(t *testing.T) {
	cases := map[string]string{"Data": "black", "Ack": "green", "Nack": "red", "Pause": "blue"}
	for packetType, want := range cases {
		e := Event{PacketType: packetType}
		if got := e.Color(); got != want {
			t.Errorf("Color(%s): got %q, want %q", packetType, got, want)
		}
	}
}
