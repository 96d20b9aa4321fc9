package netsim

//
// Lossy switch: plain drop-tail forwarding, no flow control of any kind.
//

// LossySwitch forwards Data/Ack/Nack onto the egress queue matching the
// packet's destination, dropping silently on overflow. PAUSE/RESUME
// packets are never produced and are ignored if received.
type LossySwitch struct {
	id     uint32
	active bool
	queues queueSet
	logger Logger
}

var _ Node = &LossySwitch{}

// NewLossySwitch creates a [LossySwitch] with one egress queue per entry
// in queues.
func NewLossySwitch(id uint32, queues []*Queue, logger Logger) *LossySwitch {
	return &LossySwitch{id: id, queues: newQueueSet(queues), logger: logger}
}

// ID implements [Node].
func (s *LossySwitch) ID() uint32 { return s.id }

// IsActive implements [Node].
func (s *LossySwitch) IsActive() bool { return s.active }

// Reactivate implements [Node]: the outgoing link toward link.ToNode is
// free again.
func (s *LossySwitch) Reactivate(link Link) {
	if q, _, ok := s.queues.towards(link.ToNode); ok {
		q.SetActive(true)
	}
}

// Receive implements [Node].
func (s *LossySwitch) Receive(p Packet, now Nanos) ([]Event, error) {
	s.active = true
	hdr, ok := p.routingHeader()
	if !ok {
		// PAUSE/RESUME: PFC is disabled on a lossy switch, ignore.
		return nil, nil
	}
	q, _, ok := s.queues.towards(hdr.ToNode)
	if !ok {
		return nil, ErrQueueNotFound
	}
	if !q.Enqueue(p) {
		s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id, "packet": p.String()}).Debug("dropping")
	}
	return nil, nil
}

// Exec implements [Node].
func (s *LossySwitch) Exec(now Nanos) ([]Event, error) {
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
