package netsim

//
// Link modeling
//

// mtuBytes is the maximum transmission unit assumed throughout the
// simulator.
const mtuBytes = 1500

// pfcHeadroomMTUs is the number of extra MTUs of headroom the PFC pause
// threshold reserves beyond the bandwidth-delay product, and the extra gap
// between the pause and resume thresholds.
const pfcHeadroomMTUs = 2

// Link models a unidirectional connection between two nodes. A bidirectional
// connection between two nodes is two Link values, one in each direction.
type Link struct {
	// PropagationDelayNs is the one-way propagation delay, in nanoseconds.
	PropagationDelayNs Nanos

	// BandwidthBps is the link bandwidth in bits per second.
	BandwidthBps uint64

	// PFCEnabled says whether this link's PFC thresholds are active.
	PFCEnabled bool

	// FromNode and ToNode are the node ids the Link connects.
	FromNode uint32
	ToNode   uint32
}

// bandwidthDelayProductBytes returns the link's BDP in bytes:
// propagation_delay * bandwidth / 8e9 (time in ns, bandwidth in bits/sec).
func (l Link) bandwidthDelayProductBytes() uint32 {
	return uint32((int64(l.PropagationDelayNs) * int64(l.BandwidthBps)) / 8_000_000_000)
}

// PFCPauseThreshold is the queue headroom, in bytes, at or below which a
// PFC-enabled egress must pause its upstream peers: the bandwidth-delay
// product plus two MTUs of slack.
func (l Link) PFCPauseThreshold() uint32 {
	if !l.PFCEnabled {
		return 0
	}
	return l.bandwidthDelayProductBytes() + pfcHeadroomMTUs*mtuBytes
}

// PFCResumeThreshold is the queue headroom, in bytes, above which a paused
// PFC-enabled egress resumes its upstream peers: two more MTUs of slack
// past the pause threshold, so pause/resume do not oscillate right at the
// edge.
func (l Link) PFCResumeThreshold() uint32 {
	if !l.PFCEnabled {
		return 0
	}
	return l.PFCPauseThreshold() + pfcHeadroomMTUs*mtuBytes
}

// TransmitDelay returns the serialisation delay for putting p on the wire:
// wire_size(p) * 8e9 / bandwidth_bps, rounded down to whole nanoseconds.
func (l Link) TransmitDelay(p Packet) Nanos {
	return Nanos((uint64(p.WireSize()) * 8 * 1_000_000_000) / l.BandwidthBps)
}
