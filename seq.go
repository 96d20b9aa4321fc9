package netsim

//
// Event insertion sequencing (for FIFO tie-breaking in the event heap)
//

import "sync/atomic"

// eventSeq is the monotonic counter used to break ties between events that
// fire at the same simulated time. The executor pushes events in the order
// they are produced, and a PAUSE enqueued at the head of a queue at time T
// must fire before any data packet scheduled at time T on the same node, so
// ties are broken by insertion order rather than left undefined.
var eventSeq = &atomic.Int64{}

// nextEventSeq returns a fresh, strictly increasing sequence number.
func nextEventSeq() int64 {
	return eventSeq.Add(1)
}
