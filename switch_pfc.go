package netsim

//
// PFC switch: static, queue-agnostic flow control. A single over-threshold
// egress pauses every ingress, which is what makes it "naive" relative to
// [IngressPFCSwitch]: an unrelated victim flow sharing a port with a
// congested one observes head-of-line blocking.
//

// PFCSwitch forwards the same way [LossySwitch] does, but additionally
// watches each egress queue's headroom and force-transmits PAUSE/RESUME
// control packets to every attached neighbour when a single queue crosses
// its threshold.
type PFCSwitch struct {
	id            uint32
	active        bool
	queues        queueSet
	alreadyPaused []bool // parallel to queues.all(), "have I paused the peer on this link"
	logger        Logger
}

var _ Node = &PFCSwitch{}

// NewPFCSwitch creates a [PFCSwitch] with one egress queue per entry in
// queues. Each queue's [Link] must have PFCEnabled set for its thresholds
// to have any effect.
func NewPFCSwitch(id uint32, queues []*Queue, logger Logger) *PFCSwitch {
	return &PFCSwitch{
		id:            id,
		queues:        newQueueSet(queues),
		alreadyPaused: make([]bool, len(queues)),
		logger:        logger,
	}
}

// ID implements [Node].
func (s *PFCSwitch) ID() uint32 { return s.id }

// IsActive implements [Node].
func (s *PFCSwitch) IsActive() bool { return s.active }

// Reactivate implements [Node].
func (s *PFCSwitch) Reactivate(link Link) {
	if q, _, ok := s.queues.towards(link.ToNode); ok {
		q.SetActive(true)
	}
}

func (s *PFCSwitch) pauseIncoming(now Nanos) {
	s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id}).Debug("pausing")
	for _, q := range s.queues.all() {
		q.ForceTxNext(NewPausePacket(s.id))
	}
}

func (s *PFCSwitch) resumeIncoming(now Nanos) {
	s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id}).Debug("resuming")
	for _, q := range s.queues.all() {
		q.ForceTxNext(NewResumePacket(s.id))
	}
}

// Receive implements [Node].
func (s *PFCSwitch) Receive(p Packet, now Nanos) ([]Event, error) {
	s.active = true

	switch p.Kind {
	case PacketPause:
		if q, _, ok := s.queues.towards(p.ControlNode); ok {
			q.SetPaused(true)
		}
		return nil, nil
	case PacketResume:
		if q, _, ok := s.queues.towards(p.ControlNode); ok {
			q.SetPaused(false)
		}
		return nil, nil
	}

	hdr, ok := p.routingHeader()
	if !ok {
		return nil, nil
	}
	q, idx, ok := s.queues.towards(hdr.ToNode)
	if !ok {
		return nil, ErrQueueNotFound
	}
	if !q.Enqueue(p) {
		s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id, "packet": p.String()}).Debug("dropping")
		return nil, nil
	}

	if q.Link().PFCEnabled && !s.alreadyPaused[idx] && q.Headroom() <= q.Link().PFCPauseThreshold() {
		s.alreadyPaused[idx] = true
		s.pauseIncoming(now)
	}
	return nil, nil
}

// Exec implements [Node].
func (s *PFCSwitch) Exec(now Nanos) ([]Event, error) {
	var events []Event
	shouldResume := false
	all := s.queues.all()
	for idx, q := range all {
		if !q.IsActive() {
			continue
		}
		q.SetActive(false)
		pkt, ok := q.Dequeue()
		if !ok {
			continue
		}
		if q.Link().PFCEnabled && s.alreadyPaused[idx] && q.Headroom() > q.Link().PFCResumeThreshold() {
			s.alreadyPaused[idx] = false
			shouldResume = true
		}
		events = append(events, NewNodeTransmitEvent(q.Link(), pkt))
	}
	if shouldResume {
		s.resumeIncoming(now)
	}
	return events, nil
}
