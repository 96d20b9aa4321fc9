package netsim

import (
	"testing"

	"github.com/dcflow/netsim/internal"
)

const (
	ipfcDest     = 1
	ipfcSenderA  = 10
	ipfcSenderB  = 20
	ipfcSwitchID = 2
)

func newIngressPFCTestSwitch(limitBytes uint32) (*IngressPFCSwitch, *Queue, *Queue, *Queue) {
	logger := &internal.NullLogger{}
	egress := NewQueue(Link{PropagationDelayNs: 0, BandwidthBps: 1_000_000, PFCEnabled: true, FromNode: ipfcSwitchID, ToNode: ipfcDest}, limitBytes)
	towardA := NewQueue(Link{FromNode: ipfcSwitchID, ToNode: ipfcSenderA}, 100_000)
	towardB := NewQueue(Link{FromNode: ipfcSwitchID, ToNode: ipfcSenderB}, 100_000)
	sw := NewIngressPFCSwitch(ipfcSwitchID, []*Queue{egress, towardA, towardB}, logger)
	return sw, egress, towardA, towardB
}

func sendData(t *testing.T, sw *IngressPFCSwitch, from uint32, seq uint32) {
	t.Helper()
	hdr := PacketHeader{FlowID: 0, FromNode: from, ToNode: ipfcDest}
	if _, err := sw.Receive(NewDataPacket(hdr, seq, 1460), 0); err != nil {
		t.Fatal(err)
	}
}

// Two senders share one congested egress. Only the sender responsible for
// crossing the fair per-ingress threshold should be paused; an unrelated
// sender with little buffered data must not be.
func TestIngressPFCSwitchPausesOnlyOverThresholdIngress(t *testing.T) {
	sw, _, towardA, towardB := newIngressPFCTestSwitch(60_000)

	// pause threshold = 0 + 2*1500 = 3000; per-ingress share = headroom/3.
	for i := uint32(0); i < 9; i++ {
		sendData(t, sw, ipfcSenderA, i*1460)
	}
	if !sw.ingressPaused[ipfcSenderA] {
		t.Fatal("expected sender A to be paused after crossing its fair share of the egress queue")
	}
	if !towardA.HasForcedHead() {
		t.Fatal("expected a forced Pause packet toward sender A")
	}
	p, ok := towardA.Dequeue()
	if !ok || p.Kind != PacketPause {
		t.Fatalf("expected a Pause packet toward sender A, got %+v", p)
	}

	sendData(t, sw, ipfcSenderB, 0)
	sendData(t, sw, ipfcSenderB, 1460)
	if sw.ingressPaused[ipfcSenderB] {
		t.Fatal("sender B's small share should not cross the fair threshold")
	}
	if towardB.HasForcedHead() {
		t.Fatal("sender B should not have received a Pause packet")
	}
}

// Once a paused ingress's buffered share falls back under the fair resume
// level, dequeuing even one more packet off the egress should force a
// Resume toward it: the fair threshold divides the whole link's headroom
// by the link count, so a single freed packet is normally enough.
func TestIngressPFCSwitchResumesPausedIngressOnceFairLevelRecovers(t *testing.T) {
	sw, _, towardA, _ := newIngressPFCTestSwitch(60_000)

	for i := uint32(0); i < 9; i++ {
		sendData(t, sw, ipfcSenderA, i*1460)
	}
	if !sw.ingressPaused[ipfcSenderA] {
		t.Fatal("expected sender A to be paused")
	}
	towardA.Dequeue() // consume the forced Pause, as the host side would

	events, err := sw.Exec(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 transmit event, got %d", len(events))
	}
	if sw.ingressPaused[ipfcSenderA] {
		t.Fatal("expected sender A to resume once its buffered share fell back under the fair resume level")
	}
	if !towardA.HasForcedHead() {
		t.Fatal("expected a forced Resume packet toward sender A")
	}
	p, ok := towardA.Dequeue()
	if !ok || p.Kind != PacketResume {
		t.Fatalf("expected a Resume packet toward sender A, got %+v", p)
	}
}
