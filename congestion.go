package netsim

//
// Congestion control plug-in interface
//

// ReductionKind names the event that triggers a congestion-control window
// reduction.
type ReductionKind int

const (
	// ReductionDrop marks a switch-signalled packet drop (a Nack).
	ReductionDrop ReductionKind = iota

	// ReductionECN marks an explicit-congestion-notification signal. Not
	// produced anywhere in this build (ECN is a spec non-goal); the
	// constant exists so a [CongAlg] implementation can match
	// exhaustively against [ReductionKind].
	ReductionECN
)

// CongAlg is the pluggable congestion-control contract a [GoBackNSender]
// drives. Implementations are expected to be cheap to copy, the same way
// the teacher's forwarding-state values are.
type CongAlg interface {
	// Cwnd returns the current window, in packets.
	Cwnd() uint32

	// OnPacket reports newly-acknowledged bytes and the observed RTT (zero
	// if unknown), and returns the updated window in packets.
	OnPacket(newlyAckedBytes uint32, rtt Nanos) uint32

	// Reduction reports a loss/congestion signal and returns the updated
	// window in packets.
	Reduction(kind ReductionKind) uint32
}

// ConstCwnd is the baseline [CongAlg]: a fixed window of 10 packets that
// never grows or shrinks, regardless of acks or drops.
type ConstCwnd struct {
	packets uint32
}

var _ CongAlg = &ConstCwnd{}

// NewConstCwnd returns a [ConstCwnd] with the baseline 10-packet window.
func NewConstCwnd() *ConstCwnd {
	return &ConstCwnd{packets: 10}
}

// Cwnd implements [CongAlg].
func (c *ConstCwnd) Cwnd() uint32 { return c.packets }

// OnPacket implements [CongAlg].
func (c *ConstCwnd) OnPacket(newlyAckedBytes uint32, rtt Nanos) uint32 { return c.packets }

// Reduction implements [CongAlg].
func (c *ConstCwnd) Reduction(kind ReductionKind) uint32 { return c.packets }
