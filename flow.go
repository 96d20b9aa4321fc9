package netsim

//
// Flow: the transport-level abstraction a [Host] drives per active
// connection. A flow is always installed as one of two disjoint roles
// (Sender or Receiver) on the host named by FlowInfo; the two roles live
// on different hosts unless a flow loops back to itself.
//

// FlowSide discriminates a flow's installed role.
type FlowSide int

const (
	// FlowSender is the transmitting half of a flow.
	FlowSender FlowSide = iota

	// FlowReceiver is the acknowledging half of a flow.
	FlowReceiver
)

// String renders the side the way trace records expect: "Sender" or
// "Receiver".
func (s FlowSide) String() string {
	switch s {
	case FlowSender:
		return "Sender"
	default:
		return "Receiver"
	}
}

// FlowInfo describes a flow's identity and fixed parameters, shared by
// both the sender and receiver halves.
type FlowInfo struct {
	FlowID          uint32
	SenderID        uint32
	DestID          uint32
	LengthBytes     uint32
	MaxPacketLength uint32
}

// Flow is one side (Sender or Receiver) of a transport connection running
// atop the simulator's packet model.
type Flow interface {
	// Info returns this flow's static parameters.
	Info() FlowInfo

	// Side reports which half of the flow this value implements.
	Side() FlowSide

	// StartTime returns the time this flow's first packet was sent or
	// received, and whether that has happened yet.
	StartTime() (Nanos, bool)

	// CompletionTime returns the flow's completion time and whether it
	// has completed yet.
	CompletionTime() (Nanos, bool)

	// Receive processes an inbound packet addressed to this flow and
	// returns any reply packets to enqueue, plus whether the host should
	// clear this flow's previously-queued data packets before appending
	// the replies (the go-back-N "clear" signal).
	Receive(now Nanos, p Packet) (toSend []Packet, clear bool, err error)

	// Exec is polled by the host's own Exec and returns any proactive
	// packets this flow wants to send, plus the same "clear" signal.
	Exec(now Nanos) (toSend []Packet, clear bool, err error)
}
