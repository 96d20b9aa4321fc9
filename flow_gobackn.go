package netsim

//
// Go-back-N sliding-window transport
//

// retransmitTimeoutNs is the anchor staleness that triggers a go-back-N
// retransmission: one second, matching the protocol's fixed RTO.
const retransmitTimeoutNs Nanos = 1_000_000_000

// NewGoBackNFlow builds the sender and receiver halves of a go-back-N flow
// sharing the same [FlowInfo]. cong drives the sender's congestion window.
func NewGoBackNFlow(info FlowInfo, cong CongAlg) (*GoBackNSender, *GoBackNReceiver) {
	return &GoBackNSender{info: info, cong: cong}, &GoBackNReceiver{info: info}
}

// GoBackNSender is the transmitting half of a go-back-N flow.
type GoBackNSender struct {
	info FlowInfo
	cong CongAlg

	haveStart      bool
	startTime      Nanos
	haveCompletion bool
	completionTime Nanos

	nextToSend      uint32
	cumulativeAcked uint32

	haveAnchor bool
	anchor     Nanos
}

var _ Flow = &GoBackNSender{}

// Info implements [Flow].
func (s *GoBackNSender) Info() FlowInfo { return s.info }

// Side implements [Flow].
func (s *GoBackNSender) Side() FlowSide { return FlowSender }

// StartTime implements [Flow].
func (s *GoBackNSender) StartTime() (Nanos, bool) { return s.startTime, s.haveStart }

// CompletionTime implements [Flow].
func (s *GoBackNSender) CompletionTime() (Nanos, bool) { return s.completionTime, s.haveCompletion }

// Receive implements [Flow]: only Ack and Nack are valid inputs to the
// sending side.
func (s *GoBackNSender) Receive(now Nanos, p Packet) ([]Packet, bool, error) {
	s.haveAnchor = true
	s.anchor = now
	switch p.Kind {
	case PacketAck:
		return s.gotAck(now, p)
	case PacketNack:
		s.cong.Reduction(ReductionDrop)
		pkts := s.goBackN(p.Seq)
		return pkts, true, nil
	default:
		return nil, false, nil
	}
}

func (s *GoBackNSender) gotAck(now Nanos, ack Packet) ([]Packet, bool, error) {
	if ack.CumulativeAckedSeq <= s.cumulativeAcked {
		// stale or duplicate ack: ignore, no congestion reduction
		return nil, false, nil
	}
	newlyAcked := ack.CumulativeAckedSeq - s.cumulativeAcked
	s.cong.OnPacket(newlyAcked, 0)
	s.cumulativeAcked = ack.CumulativeAckedSeq
	if s.cumulativeAcked == s.info.LengthBytes {
		s.completionTime = now - s.startTime
		s.haveCompletion = true
		return nil, false, nil
	}
	return s.maybeSendMore(), false, nil
}

// Exec implements [Flow].
func (s *GoBackNSender) Exec(now Nanos) ([]Packet, bool, error) {
	if !s.haveStart {
		s.haveStart = true
		s.startTime = now
	}
	if s.haveCompletion {
		return nil, false, nil
	}
	if !s.checkTimeout(now) {
		return s.maybeSendMore(), false, nil
	}
	cumAck := s.cumulativeAcked
	s.haveAnchor = true
	s.anchor = now
	pkts := s.goBackN(cumAck)
	return pkts, true, nil
}

func (s *GoBackNSender) checkTimeout(now Nanos) bool {
	return s.haveAnchor && !s.haveCompletion && (now-s.anchor) > retransmitTimeoutNs
}

func (s *GoBackNSender) maybeSendMore() []Packet {
	cwnd := s.cong.Cwnd() * s.info.MaxPacketLength
	var pkts []Packet
	hdr := PacketHeader{FlowID: s.info.FlowID, FromNode: s.info.SenderID, ToNode: s.info.DestID}
	for s.nextToSend < s.cumulativeAcked+cwnd {
		if s.nextToSend+s.info.MaxPacketLength <= s.info.LengthBytes {
			pkts = append(pkts, NewDataPacket(hdr, s.nextToSend, s.info.MaxPacketLength))
			s.nextToSend += s.info.MaxPacketLength
			continue
		}
		if s.nextToSend < s.info.LengthBytes {
			length := s.info.LengthBytes - s.nextToSend
			pkts = append(pkts, NewDataPacket(hdr, s.nextToSend, length))
			s.nextToSend = s.info.LengthBytes
		}
		break
	}
	return pkts
}

func (s *GoBackNSender) goBackN(goBackTo uint32) []Packet {
	s.nextToSend = goBackTo
	return s.maybeSendMore()
}

// GoBackNReceiver is the acknowledging half of a go-back-N flow.
type GoBackNReceiver struct {
	info FlowInfo

	haveStart      bool
	startTime      Nanos
	haveCompletion bool
	completionTime Nanos

	cumulativeReceived uint32
	nackInflight       bool
}

var _ Flow = &GoBackNReceiver{}

// Info implements [Flow].
func (r *GoBackNReceiver) Info() FlowInfo { return r.info }

// Side implements [Flow].
func (r *GoBackNReceiver) Side() FlowSide { return FlowReceiver }

// StartTime implements [Flow].
func (r *GoBackNReceiver) StartTime() (Nanos, bool) { return r.startTime, r.haveStart }

// CompletionTime implements [Flow].
func (r *GoBackNReceiver) CompletionTime() (Nanos, bool) { return r.completionTime, r.haveCompletion }

// Receive implements [Flow]: only Data is a valid input to the receiving
// side.
func (r *GoBackNReceiver) Receive(now Nanos, p Packet) ([]Packet, bool, error) {
	if p.Kind != PacketData {
		return nil, false, nil
	}
	if !r.haveStart {
		r.haveStart = true
		r.startTime = now
	}
	hdr := PacketHeader{FlowID: r.info.FlowID, FromNode: r.info.DestID, ToNode: r.info.SenderID}
	if p.Seq != r.cumulativeReceived {
		// out-of-order: at most one NACK outstanding at a time
		if r.nackInflight {
			return nil, false, nil
		}
		r.nackInflight = true
		return []Packet{NewNackPacket(hdr, r.cumulativeReceived)}, false, nil
	}
	r.cumulativeReceived += p.Length
	r.nackInflight = false
	if r.cumulativeReceived == r.info.LengthBytes {
		r.completionTime = now - r.startTime
		r.haveCompletion = true
	}
	return []Packet{NewAckPacket(hdr, r.cumulativeReceived)}, false, nil
}

// Exec implements [Flow]: the receiver never sends proactively.
func (r *GoBackNReceiver) Exec(now Nanos) ([]Packet, bool, error) {
	return nil, false, nil
}
