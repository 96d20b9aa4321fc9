package netsim

//
// Event: the three concrete event kinds that move packets through the
// simulation, plus the time-resolution contract the executor relies on.
//

// EventTimeKind discriminates how an [EventTime] resolves to an absolute
// fire time.
type EventTimeKind int

const (
	// EventTimeAbsolute means the event fires at a fixed simulated time,
	// independent of when it was pushed.
	EventTimeAbsolute EventTimeKind = iota

	// EventTimeDelta means the event fires Value nanoseconds after the
	// current simulated time at the moment it is pushed.
	EventTimeDelta
)

// EventTime is a tagged variant: either an absolute fire time or a delta
// from "now" at push time.
type EventTime struct {
	Kind  EventTimeKind
	Value Nanos
}

// Absolute resolves this EventTime against the executor's current time.
func (t EventTime) Absolute(now Nanos) Nanos {
	if t.Kind == EventTimeAbsolute {
		return t.Value
	}
	return now + t.Value
}

// Event is anything the executor can schedule and fire. Each event names
// the node ids it needs exclusive access to; the executor resolves those
// via [Topology.LookupNodes] before calling Exec, so Exec never needs to
// look up nodes itself.
type Event interface {
	// Time returns this event's scheduling time: either an absolute fire
	// time or a delta from the moment it is pushed.
	Time() EventTime

	// AffectedNodeIDs names the nodes Exec needs borrowed, in the order
	// Exec expects them.
	AffectedNodeIDs() []uint32

	// Exec runs the event at the resolved absolute time now, against the
	// nodes resolved from AffectedNodeIDs (same order), and returns any
	// events it produces.
	Exec(now Nanos, nodes []Node, logger Logger) ([]Event, error)
}

// FlowArrivalEvent installs a new flow's sender half on the sending host
// and receiver half on the destination host, at an absolute time.
type FlowArrivalEvent struct {
	Info FlowInfo
	At   Nanos
	Cong func() CongAlg
}

var _ Event = &FlowArrivalEvent{}

// NewFlowArrivalEvent builds a [FlowArrivalEvent]. cong constructs a fresh
// [CongAlg] instance for the flow's sender; pass [NewConstCwnd] for the
// baseline algorithm.
func NewFlowArrivalEvent(info FlowInfo, at Nanos, cong func() CongAlg) *FlowArrivalEvent {
	return &FlowArrivalEvent{Info: info, At: at, Cong: cong}
}

// Time implements [Event].
func (e *FlowArrivalEvent) Time() EventTime {
	return EventTime{Kind: EventTimeAbsolute, Value: e.At}
}

// AffectedNodeIDs implements [Event]: sender then destination.
func (e *FlowArrivalEvent) AffectedNodeIDs() []uint32 {
	return []uint32{e.Info.SenderID, e.Info.DestID}
}

// Exec implements [Event].
func (e *FlowArrivalEvent) Exec(now Nanos, nodes []Node, logger Logger) ([]Event, error) {
	sender, ok := nodes[0].(*Host)
	if !ok {
		return nil, ErrUnknownNode
	}
	receiver, ok := nodes[1].(*Host)
	if !ok {
		return nil, ErrUnknownNode
	}
	var cong CongAlg = NewConstCwnd()
	if e.Cong != nil {
		cong = e.Cong()
	}
	snd, rcv := NewGoBackNFlow(e.Info, cong)
	sender.FlowArrival(snd)
	receiver.FlowArrival(rcv)
	return nil, nil
}

// NodeTransmitEvent models the serialisation delay of putting a packet on
// the wire at its sending node. When it fires, the sending node's egress
// becomes eligible to send again (the link is free) and a
// [LinkTransmitEvent] is scheduled to carry the packet across the
// propagation delay.
type NodeTransmitEvent struct {
	Link   Link
	Packet Packet
}

var _ Event = &NodeTransmitEvent{}

// NewNodeTransmitEvent builds a [NodeTransmitEvent].
func NewNodeTransmitEvent(link Link, p Packet) *NodeTransmitEvent {
	return &NodeTransmitEvent{Link: link, Packet: p}
}

// Time implements [Event]: delta equal to the link's transmit delay for
// this packet.
func (e *NodeTransmitEvent) Time() EventTime {
	return EventTime{Kind: EventTimeDelta, Value: e.Link.TransmitDelay(e.Packet)}
}

// AffectedNodeIDs implements [Event]: the sending node only.
func (e *NodeTransmitEvent) AffectedNodeIDs() []uint32 {
	return []uint32{e.Link.FromNode}
}

// Exec implements [Event].
func (e *NodeTransmitEvent) Exec(now Nanos, nodes []Node, logger Logger) ([]Event, error) {
	nodes[0].Reactivate(e.Link)
	logger.WithFields(map[string]any{
		"time":   int64(now),
		"node":   e.Link.FromNode,
		"packet": e.Packet.String(),
	}).Debug("tx")
	return []Event{NewLinkTransmitEvent(e.Link, e.Packet)}, nil
}

// LinkTransmitEvent models the propagation delay of a packet crossing the
// wire. When it fires, the packet is delivered to the destination node.
type LinkTransmitEvent struct {
	Link   Link
	Packet Packet
}

var _ Event = &LinkTransmitEvent{}

// NewLinkTransmitEvent builds a [LinkTransmitEvent].
func NewLinkTransmitEvent(link Link, p Packet) *LinkTransmitEvent {
	return &LinkTransmitEvent{Link: link, Packet: p}
}

// Time implements [Event]: delta equal to the link's propagation delay.
func (e *LinkTransmitEvent) Time() EventTime {
	return EventTime{Kind: EventTimeDelta, Value: e.Link.PropagationDelayNs}
}

// AffectedNodeIDs implements [Event]: the receiving node only.
func (e *LinkTransmitEvent) AffectedNodeIDs() []uint32 {
	return []uint32{e.Link.ToNode}
}

// Exec implements [Event].
func (e *LinkTransmitEvent) Exec(now Nanos, nodes []Node, logger Logger) ([]Event, error) {
	logger.WithFields(map[string]any{
		"time":   int64(now),
		"node":   e.Link.ToNode,
		"packet": e.Packet.String(),
	}).Debug("rx")
	return nodes[0].Receive(e.Packet, now)
}
