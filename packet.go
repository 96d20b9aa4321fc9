package netsim

//
// Packet model
//

import "fmt"

// PacketKind discriminates the variants of [Packet]. Go has no tagged
// unions, so the closed enumeration from spec §3 is implemented as a small
// kind tag plus payload fields, the same pattern the teacher uses for
// [LinkDirection].
type PacketKind int

const (
	// PacketData carries a sliding-window data segment.
	PacketData PacketKind = iota

	// PacketAck carries a cumulative acknowledgement.
	PacketAck

	// PacketNack carries a go-back-N negative acknowledgement.
	PacketNack

	// PacketPause is a PFC control frame asking the peer to stop sending.
	PacketPause

	// PacketResume is a PFC control frame asking the peer to resume sending.
	PacketResume
)

// String renders the kind the way the original Rust enum's Debug
// representation would: the visualiser's regex expects the type name as
// the first token of [Packet.String].
func (k PacketKind) String() string {
	switch k {
	case PacketData:
		return "Data"
	case PacketAck:
		return "Ack"
	case PacketNack:
		return "Nack"
	case PacketPause:
		return "Pause"
	case PacketResume:
		return "Resume"
	default:
		return "Unknown"
	}
}

// headerWireSize is the fixed size, in bytes, of a [PacketHeader] as it
// would appear on the wire.
const headerWireSize = 40

// pauseResumeWireSize is the wire size of a Pause/Resume control frame,
// matching ns3-rdma's pause-header: https://github.com/bobzhuyb/ns3-rdma
const pauseResumeWireSize = 9

// PacketHeader identifies the flow and endpoints of a [Packet].
type PacketHeader struct {
	FlowID   uint32
	FromNode uint32
	ToNode   uint32
}

// Packet is a tagged-union variant: Data, Ack, Nack, Pause, or Resume.
// Equality over packets is structural, which is what the NACK switch's
// [Queue.DiscardMatching] needs to pick out retransmit-bound packets.
type Packet struct {
	Kind   PacketKind
	Header PacketHeader // valid for Data, Ack, Nack

	// Seq is the sequence number of a Data packet, or the dropped sequence
	// number carried by a Nack.
	Seq uint32

	// Length is the payload length, in bytes, of a Data packet.
	Length uint32

	// CumulativeAckedSeq is the cumulative byte index acknowledged by an Ack.
	CumulativeAckedSeq uint32

	// ControlNode is the sender's node id carried by Pause/Resume.
	ControlNode uint32
}

// NewDataPacket constructs a Data packet.
func NewDataPacket(hdr PacketHeader, seq, length uint32) Packet {
	return Packet{Kind: PacketData, Header: hdr, Seq: seq, Length: length}
}

// NewAckPacket constructs an Ack packet.
func NewAckPacket(hdr PacketHeader, cumulativeAckedSeq uint32) Packet {
	return Packet{Kind: PacketAck, Header: hdr, CumulativeAckedSeq: cumulativeAckedSeq}
}

// NewNackPacket constructs a Nack packet.
func NewNackPacket(hdr PacketHeader, nackedSeq uint32) Packet {
	return Packet{Kind: PacketNack, Header: hdr, Seq: nackedSeq}
}

// NewPausePacket constructs a Pause control packet.
func NewPausePacket(switchID uint32) Packet {
	return Packet{Kind: PacketPause, ControlNode: switchID}
}

// NewResumePacket constructs a Resume control packet.
func NewResumePacket(switchID uint32) Packet {
	return Packet{Kind: PacketResume, ControlNode: switchID}
}

// WireSize returns the on-the-wire size, in bytes, of this packet.
func (p Packet) WireSize() uint32 {
	switch p.Kind {
	case PacketPause, PacketResume:
		return pauseResumeWireSize
	case PacketData:
		return headerWireSize + p.Length
	default: // Ack, Nack
		return headerWireSize
	}
}

// String renders the packet the way the visualiser's regexes expect: the
// type name first, then "flow: F, from: N, to: M, seq: S" fields for Data
// and Nack (Data adds its length), cumulative_acked_seq in place of seq
// for Ack, and only "from: N" for Pause/Resume.
func (p Packet) String() string {
	switch p.Kind {
	case PacketData:
		return fmt.Sprintf("Data { flow: %d, from: %d, to: %d, seq: %d, length: %d }",
			p.Header.FlowID, p.Header.FromNode, p.Header.ToNode, p.Seq, p.Length)
	case PacketAck:
		return fmt.Sprintf("Ack { flow: %d, from: %d, to: %d, cumulative_acked_seq: %d }",
			p.Header.FlowID, p.Header.FromNode, p.Header.ToNode, p.CumulativeAckedSeq)
	case PacketNack:
		return fmt.Sprintf("Nack { flow: %d, from: %d, to: %d, seq: %d }",
			p.Header.FlowID, p.Header.FromNode, p.Header.ToNode, p.Seq)
	case PacketPause:
		return fmt.Sprintf("Pause { from: %d }", p.ControlNode)
	case PacketResume:
		return fmt.Sprintf("Resume { from: %d }", p.ControlNode)
	default:
		return "Unknown { }"
	}
}
