package netsim

//
// Ingress-PFC switch: per-ingress virtual occupancy instead of a single
// paused-or-not bit per egress. Only the ingress actually responsible for
// filling a queue gets paused, which spares a victim flow that does not use
// the congested egress from being paused along with the flows that do.
//

// ingressCredit is one entry in a queue's ingress-FIFO: which neighbour a
// buffered packet arrived from, and how many bytes it occupies. Since this
// build's topology connects every host directly to the one switch, a
// packet's physical ingress is always its logical header.FromNode; a
// multi-hop topology would need to stamp the physical previous hop
// instead.
type ingressCredit struct {
	ingress uint32
	bytes   uint32
}

// IngressPFCSwitch is [PFCSwitch]'s fair cousin: it buckets buffered bytes
// by the ingress they arrived from and only pauses the ingress whose
// share of a congested egress crosses the fair per-ingress threshold.
type IngressPFCSwitch struct {
	id     uint32
	active bool
	queues queueSet
	logger Logger

	ingressFIFO      [][]ingressCredit // parallel to queues.all(), FIFO order
	ingressOccupancy map[uint32]uint32 // ingress node id -> buffered bytes
	ingressPaused    map[uint32]bool   // ingress node id -> currently paused
}

var _ Node = &IngressPFCSwitch{}

// NewIngressPFCSwitch creates an [IngressPFCSwitch] with one egress queue
// per entry in queues.
func NewIngressPFCSwitch(id uint32, queues []*Queue, logger Logger) *IngressPFCSwitch {
	return &IngressPFCSwitch{
		id:               id,
		queues:           newQueueSet(queues),
		logger:           logger,
		ingressFIFO:      make([][]ingressCredit, len(queues)),
		ingressOccupancy: make(map[uint32]uint32),
		ingressPaused:    make(map[uint32]bool),
	}
}

// ID implements [Node].
func (s *IngressPFCSwitch) ID() uint32 { return s.id }

// IsActive implements [Node].
func (s *IngressPFCSwitch) IsActive() bool { return s.active }

// Reactivate implements [Node].
func (s *IngressPFCSwitch) Reactivate(link Link) {
	if q, _, ok := s.queues.towards(link.ToNode); ok {
		q.SetActive(true)
	}
}

func (s *IngressPFCSwitch) pauseIngress(now Nanos, ingress uint32) {
	s.ingressPaused[ingress] = true
	s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id}).Debug("pausing")
	if q, _, ok := s.queues.towards(ingress); ok {
		q.ForceTxNext(NewPausePacket(s.id))
	}
}

func (s *IngressPFCSwitch) resumeIngress(now Nanos, ingress uint32) {
	s.ingressPaused[ingress] = false
	s.logger.WithFields(map[string]any{"time": int64(now), "node": s.id}).Debug("resuming")
	if q, _, ok := s.queues.towards(ingress); ok {
		q.ForceTxNext(NewResumePacket(s.id))
	}
}

// Receive implements [Node].
func (s *IngressPFCSwitch) Receive(p Packet, now Nanos) ([]Event, error) {
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

	ingress := hdr.FromNode
	size := p.WireSize()
	s.ingressOccupancy[ingress] += size
	s.ingressFIFO[idx] = append(s.ingressFIFO[idx], ingressCredit{ingress: ingress, bytes: size})

	if !q.Link().PFCEnabled || s.ingressPaused[ingress] {
		return nil, nil
	}
	numLinks := uint32(len(s.queues.all()))
	perIngressThreshold := q.Headroom() / numLinks
	if s.ingressOccupancy[ingress]+q.Link().PFCPauseThreshold() > perIngressThreshold {
		s.pauseIngress(now, ingress)
	}
	return nil, nil
}

// Exec implements [Node].
func (s *IngressPFCSwitch) Exec(now Nanos) ([]Event, error) {
	var events []Event
	all := s.queues.all()
	numLinks := uint32(len(all))
	var toResume []uint32
	for idx, q := range all {
		if !q.IsActive() {
			continue
		}
		wasForced := q.HasForcedHead()
		q.SetActive(false)
		pkt, ok := q.Dequeue()
		if !ok {
			continue
		}
		if !wasForced && len(s.ingressFIFO[idx]) > 0 {
			credit := s.ingressFIFO[idx][0]
			s.ingressFIFO[idx] = s.ingressFIFO[idx][1:]
			if s.ingressOccupancy[credit.ingress] >= credit.bytes {
				s.ingressOccupancy[credit.ingress] -= credit.bytes
			} else {
				s.ingressOccupancy[credit.ingress] = 0
			}
			if q.Link().PFCEnabled && s.ingressPaused[credit.ingress] {
				headroom := q.Headroom()
				resumeThreshold := q.Link().PFCResumeThreshold()
				var fairResumeLevel uint32
				if headroom > resumeThreshold {
					fairResumeLevel = (headroom - resumeThreshold) / numLinks
				}
				if s.ingressOccupancy[credit.ingress] < fairResumeLevel {
					toResume = append(toResume, credit.ingress)
				}
			}
		}
		events = append(events, NewNodeTransmitEvent(q.Link(), pkt))
	}
	for _, ingress := range toResume {
		if s.ingressPaused[ingress] {
			s.resumeIngress(now, ingress)
		}
	}
	return events, nil
}
