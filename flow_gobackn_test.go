package netsim

import "testing"

func testFlowInfo() FlowInfo {
	return FlowInfo{FlowID: 0, SenderID: 0, DestID: 1, LengthBytes: 4380, MaxPacketLength: 1460}
}

func TestGoBackNSenderSendsFullWindowOnArrival(t *testing.T) {
	snd, _ := NewGoBackNFlow(testFlowInfo(), NewConstCwnd())
	pkts, clear, err := snd.Exec(0)
	if err != nil {
		t.Fatal(err)
	}
	if clear {
		t.Fatal("first Exec should not signal clear")
	}
	if got, want := len(pkts), 3; got != want {
		t.Fatalf("packets sent: got %d, want %d", got, want)
	}
	for i, p := range pkts {
		if p.Kind != PacketData {
			t.Errorf("packet %d: got kind %v, want Data", i, p.Kind)
		}
	}
	if got, want := pkts[2].Length, uint32(4380-2*1460); got != want {
		t.Errorf("last packet length: got %d, want %d", got, want)
	}
}

func TestGoBackNSenderIgnoresStaleAck(t *testing.T) {
	snd, _ := NewGoBackNFlow(testFlowInfo(), NewConstCwnd())
	snd.Exec(0)

	hdr := PacketHeader{FlowID: 0, FromNode: 1, ToNode: 0}
	if _, _, err := snd.Receive(100, NewAckPacket(hdr, 1460)); err != nil {
		t.Fatal(err)
	}
	if got, want := snd.cumulativeAcked, uint32(1460); got != want {
		t.Fatalf("cumulativeAcked after first ack: got %d, want %d", got, want)
	}

	// a stale/duplicate ack must not move cumulativeAcked backward or re-trigger anything.
	pkts, clear, err := snd.Receive(200, NewAckPacket(hdr, 1460))
	if err != nil {
		t.Fatal(err)
	}
	if clear {
		t.Fatal("a stale ack must not signal clear")
	}
	if len(pkts) != 0 {
		t.Fatalf("a stale ack must not produce packets, got %d", len(pkts))
	}
	if got, want := snd.cumulativeAcked, uint32(1460); got != want {
		t.Fatalf("cumulativeAcked after stale ack: got %d, want %d", got, want)
	}
}

func TestGoBackNSenderNackTriggersGoBackAndClear(t *testing.T) {
	snd, _ := NewGoBackNFlow(testFlowInfo(), NewConstCwnd())
	snd.Exec(0)

	hdr := PacketHeader{FlowID: 0, FromNode: 1, ToNode: 0}
	pkts, clear, err := snd.Receive(500, NewNackPacket(hdr, 1460))
	if err != nil {
		t.Fatal(err)
	}
	if !clear {
		t.Fatal("a nack must signal clear so the host discards stale queued data")
	}
	if len(pkts) == 0 {
		t.Fatal("a nack should trigger at least one retransmitted packet")
	}
	if got, want := pkts[0].Seq, uint32(1460); got != want {
		t.Fatalf("retransmit should resume from the nacked seq: got %d, want %d", got, want)
	}
}

func TestGoBackNReceiverAcksInOrderAndNacksOutOfOrder(t *testing.T) {
	_, rcv := NewGoBackNFlow(testFlowInfo(), NewConstCwnd())
	hdr := PacketHeader{FlowID: 0, FromNode: 0, ToNode: 1}

	pkts, _, err := rcv.Receive(0, NewDataPacket(hdr, 0, 1460))
	if err != nil {
		t.Fatal(err)
	}
	if len(pkts) != 1 || pkts[0].Kind != PacketAck || pkts[0].CumulativeAckedSeq != 1460 {
		t.Fatalf("expected a cumulative ack for 1460, got %+v", pkts)
	}

	// out-of-order: skip straight to seq 2920, expect a Nack for the
	// still-missing 1460.
	pkts, _, err = rcv.Receive(10, NewDataPacket(hdr, 2920, 1460))
	if err != nil {
		t.Fatal(err)
	}
	if len(pkts) != 1 || pkts[0].Kind != PacketNack || pkts[0].Seq != 1460 {
		t.Fatalf("expected a nack for 1460, got %+v", pkts)
	}

	// a second out-of-order packet while a nack is already in flight must
	// be silently dropped, not re-nacked.
	pkts, _, err = rcv.Receive(20, NewDataPacket(hdr, 2920, 1460))
	if err != nil {
		t.Fatal(err)
	}
	if len(pkts) != 0 {
		t.Fatalf("expected no reply while a nack is already in flight, got %+v", pkts)
	}

	// the retransmit arrives in order: clears nackInflight and resumes acking.
	pkts, _, err = rcv.Receive(30, NewDataPacket(hdr, 1460, 1460))
	if err != nil {
		t.Fatal(err)
	}
	if len(pkts) != 1 || pkts[0].Kind != PacketAck || pkts[0].CumulativeAckedSeq != 2920 {
		t.Fatalf("expected a cumulative ack for 2920, got %+v", pkts)
	}
}

func TestGoBackNFlowCompletesOnFinalAck(t *testing.T) {
	snd, rcv := NewGoBackNFlow(testFlowInfo(), NewConstCwnd())
	snd.Exec(0)

	hdrToSender := PacketHeader{FlowID: 0, FromNode: 0, ToNode: 1}
	for _, seq := range []uint32{0, 1460, 2920} {
		length := uint32(1460)
		if seq == 2920 {
			length = 4380 - 2920
		}
		replies, _, err := rcv.Receive(Nanos(seq), NewDataPacket(hdrToSender, seq, length))
		if err != nil {
			t.Fatal(err)
		}
		for _, ack := range replies {
			if _, _, err := snd.Receive(Nanos(seq)+1, ack); err != nil {
				t.Fatal(err)
			}
		}
	}

	if _, ok := snd.CompletionTime(); !ok {
		t.Fatal("sender should have completed after the final cumulative ack")
	}
	if _, ok := rcv.CompletionTime(); !ok {
		t.Fatal("receiver should have completed after the final in-order packet")
	}
}
