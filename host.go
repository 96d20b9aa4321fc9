package netsim

//
// Host: a transport endpoint, one egress link, a FIFO of serialised
// outbound packets, and the set of flows it sends or receives.
//

// Host is a simulated endpoint. At most one outbound packet is in
// transmission at a time; the link itself serialises further sends.
type Host struct {
	id     uint32
	link   Link
	logger Logger

	paused bool
	active bool

	flows  []Flow
	toSend []Packet
}

var _ Node = &Host{}

// NewHost creates a [Host] with the given id and egress link. logger
// receives trace records for flow completions and protocol warnings.
func NewHost(id uint32, link Link, logger Logger) *Host {
	return &Host{id: id, link: link, logger: logger}
}

// ID implements [Node].
func (h *Host) ID() uint32 { return h.id }

// IsActive implements [Node].
func (h *Host) IsActive() bool { return h.active && !h.paused }

// IsPaused reports whether this host has been PFC-paused by its switch.
func (h *Host) IsPaused() bool { return h.paused }

// Reactivate implements [Node]: the link leaving this host is free again.
func (h *Host) Reactivate(link Link) {
	h.active = true
}

// PushPacket enqueues p directly onto this host's outbound FIFO, bypassing
// flow state entirely. Used by tests and diagnostics that want to inject
// a single already-serialised packet without installing a flow.
func (h *Host) PushPacket(p Packet) {
	h.toSend = append(h.toSend, p)
	h.active = true
}

// FlowArrival installs f as an active flow on this host and marks it
// active so the executor's next poll lets it send or start acking.
func (h *Host) FlowArrival(f Flow) {
	h.flows = append(h.flows, f)
	h.active = true
}

func (h *Host) findFlow(flowID uint32) Flow {
	for _, f := range h.flows {
		if f.Info().FlowID == flowID {
			return f
		}
	}
	return nil
}

func (h *Host) evictQueuedData(flowID uint32) {
	kept := h.toSend[:0:0]
	for _, p := range h.toSend {
		if p.Kind == PacketData && p.Header.FlowID == flowID {
			continue
		}
		kept = append(kept, p)
	}
	h.toSend = kept
}

func (h *Host) logCompletionIfNew(f Flow, wasComplete bool, now Nanos) {
	completionTime, isComplete := f.CompletionTime()
	if isComplete && !wasComplete {
		startTime, _ := f.StartTime()
		h.logger.WithFields(map[string]any{
			"flow":            f.Info().FlowID,
			"node":            h.id,
			"side":            f.Side().String(),
			"completion_time": int64(completionTime),
			"start_time":      int64(startTime),
			"end_time":        int64(now),
		}).Info("flow completed")
	}
}

// Receive implements [Node].
func (h *Host) Receive(p Packet, now Nanos) ([]Event, error) {
	switch p.Kind {
	case PacketPause:
		h.paused = true
		return nil, nil
	case PacketResume:
		h.paused = false
		return nil, nil
	}

	f := h.findFlow(p.Header.FlowID)
	if f == nil {
		h.logger.Warnf("host %d: got %s for unknown flow %d", h.id, p.String(), p.Header.FlowID)
		return nil, nil
	}
	_, wasComplete := f.CompletionTime()
	wasEmpty := len(h.toSend) == 0
	reply, clear, err := f.Receive(now, p)
	if err != nil {
		return nil, err
	}
	h.logCompletionIfNew(f, wasComplete, now)
	if clear {
		h.evictQueuedData(f.Info().FlowID)
	}
	if len(reply) > 0 {
		h.toSend = append(h.toSend, reply...)
		if wasEmpty {
			h.active = true
		}
	}
	return nil, nil
}

// Exec implements [Node].
func (h *Host) Exec(now Nanos) ([]Event, error) {
	if h.paused {
		return nil, nil
	}

	for _, f := range h.flows {
		_, wasComplete := f.CompletionTime()
		pkts, clear, err := f.Exec(now)
		if err != nil {
			return nil, err
		}
		h.logCompletionIfNew(f, wasComplete, now)
		if clear {
			h.evictQueuedData(f.Info().FlowID)
		}
		h.toSend = append(h.toSend, pkts...)
	}

	h.active = false
	if len(h.toSend) == 0 {
		return nil, ErrNoPendingPackets
	}
	next := h.toSend[0]
	h.toSend = h.toSend[1:]
	return []Event{NewNodeTransmitEvent(h.link, next)}, nil
}
