package netsim

//
// NACK switch: instead of silently dropping like [LossySwitch], a dropped
// Data packet earns the source an explicit Nack, and the switch purges
// queued retransmit-bound duplicates from its own buffer so the go-back-N
// retransmission does not queue behind stale copies.
//

// NackSwitch forwards like [LossySwitch] but signals drops back to the
// source and tracks, per flow, the smallest sequence number it is still
// waiting to see retransmitted.
type NackSwitch struct {
	id           uint32
	active       bool
	queues       queueSet
	blockedFlows map[uint32]uint32 // flow id -> expected (dropped) seq
	logger       Logger
}

var _ Node = &NackSwitch{}

// NewNackSwitch creates a [NackSwitch] with one egress queue per entry in
// queues.
func NewNackSwitch(id uint32, queues []*Queue, logger Logger) *NackSwitch {
	return &NackSwitch{
		id:           id,
		queues:       newQueueSet(queues),
		blockedFlows: make(map[uint32]uint32),
		logger:       logger,
	}
}

// ID implements [Node].
func (s *NackSwitch) ID() uint32 { return s.id }

// IsActive implements [Node].
func (s *NackSwitch) IsActive() bool { return s.active }

// Reactivate implements [Node].
func (s *NackSwitch) Reactivate(link Link) {
	if q, _, ok := s.queues.towards(link.ToNode); ok {
		q.SetActive(true)
	}
}

// Receive implements [Node].
func (s *NackSwitch) Receive(p Packet, now Nanos) ([]Event, error) {
	s.active = true

	if p.Kind == PacketPause || p.Kind == PacketResume {
		return nil, nil
	}
	if p.Kind != PacketData {
		// Ack/Nack transit normally.
		q, _, ok := s.queues.towards(p.Header.ToNode)
		if !ok {
			return nil, ErrQueueNotFound
		}
		if !q.Enqueue(p) {
			s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id, "packet": p.String()}).Debug("dropping")
		}
		return nil, nil
	}

	flowID, seq := p.Header.FlowID, p.Seq
	if expected, blocked := s.blockedFlows[flowID]; blocked {
		if seq == expected {
			delete(s.blockedFlows, flowID)
		} else {
			// going to be retransmitted anyway; pre-drop it.
			s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id, "packet": p.String()}).Debug("dropping")
			return nil, nil
		}
	}

	q, _, ok := s.queues.towards(p.Header.ToNode)
	if !ok {
		return nil, ErrQueueNotFound
	}
	if q.Enqueue(p) {
		return nil, nil
	}

	// dropped: record, purge later duplicates of this flow, nack the source.
	s.blockedFlows[flowID] = seq
	dropped := q.DiscardMatching(func(x Packet) bool {
		return x.Kind == PacketData && x.Header.FlowID == flowID && x.Seq > seq
	})
	s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id, "packet": p.String(), "purged": dropped}).Debug("dropping")

	nackHdr := PacketHeader{FlowID: flowID, FromNode: p.Header.ToNode, ToNode: p.Header.FromNode}
	nackPkt := NewNackPacket(nackHdr, seq)
	nq, _, ok := s.queues.towards(p.Header.FromNode)
	if ok {
		nq.Enqueue(nackPkt)
	}
	return nil, nil
}

// Exec implements [Node].
func (s *NackSwitch) Exec(now Nanos) ([]Event, error) {
	var events []Event
	for _, q := range s.queues.all() {
		if !q.IsActive() {
			continue
		}
		q.SetActive(false)
		pkt, ok := q.Dequeue()
		if !ok {
			continue
		}
		events = append(events, NewNodeTransmitEvent(q.Link(), pkt))
	}
	return events, nil
}
