package netsim

//
// Queue: drop-tail FIFO with forced head, tied to one outbound Link
//

// Queue is a drop-tail FIFO queue bound to a single outgoing [Link]. The
// zero value is invalid; use [NewQueue].
type Queue struct {
	link        Link
	limitBytes  uint32
	packets     []Packet
	forcedHead  *Packet
	activeFlag  bool
	pausedFlag  bool
}

// NewQueue creates a [Queue] bound to link with the given byte limit.
func NewQueue(link Link, limitBytes uint32) *Queue {
	return &Queue{link: link, limitBytes: limitBytes}
}

// Link returns the link this queue transmits onto.
func (q *Queue) Link() Link { return q.link }

// occupancyBytes sums the wire size of every queued packet, excluding the
// forced head (which does not count against limitBytes).
func (q *Queue) occupancyBytes() uint32 {
	var total uint32
	for _, p := range q.packets {
		total += p.WireSize()
	}
	return total
}

// Headroom is the queue's remaining capacity in bytes.
func (q *Queue) Headroom() uint32 {
	occ := q.occupancyBytes()
	if occ >= q.limitBytes {
		return 0
	}
	return q.limitBytes - occ
}

// Enqueue appends p to the tail of the queue. It returns false (and drops
// the packet) if doing so would push occupancy over limitBytes.
func (q *Queue) Enqueue(p Packet) bool {
	if q.occupancyBytes()+p.WireSize() > q.limitBytes {
		return false
	}
	q.packets = append(q.packets, p)
	q.activeFlag = true
	return true
}

// ForceTxNext installs p as the forced head: the next [Queue.Dequeue] call
// returns p regardless of FIFO order, and p never counts against
// limitBytes. Intended for control packets (PAUSE/RESUME) that must jump
// the queue.
func (q *Queue) ForceTxNext(p Packet) {
	q.forcedHead = &p
	q.activeFlag = true
}

// Dequeue removes and returns the next packet to transmit: the forced head
// if set, else the FIFO front. When the last packet is removed and no
// forced head remains, the active flag clears.
func (q *Queue) Dequeue() (Packet, bool) {
	if q.forcedHead != nil {
		p := *q.forcedHead
		q.forcedHead = nil
		return p, true
	}
	if len(q.packets) == 0 {
		return Packet{}, false
	}
	p := q.packets[0]
	q.packets = q.packets[1:]
	if len(q.packets) == 0 {
		q.activeFlag = false
	}
	return p, true
}

// HasForcedHead reports whether a forced head is set, i.e. whether the
// next [Queue.Dequeue] will return it instead of the FIFO front.
func (q *Queue) HasForcedHead() bool { return q.forcedHead != nil }

// Peek returns the FIFO front packet (not the forced head) without removing
// it.
func (q *Queue) Peek() (Packet, bool) {
	if len(q.packets) == 0 {
		return Packet{}, false
	}
	return q.packets[0], true
}

// DiscardMatching removes every queued packet (excluding the forced head)
// for which match returns true, and reports how many were removed. Used by
// the NACK switch to purge retransmit-bound packets after a drop.
func (q *Queue) DiscardMatching(match func(Packet) bool) int {
	kept := q.packets[:0:0]
	dropped := 0
	for _, p := range q.packets {
		if match(p) {
			dropped++
			continue
		}
		kept = append(kept, p)
	}
	q.packets = kept
	return dropped
}

// CountMatching returns the number of queued packets (excluding the forced
// head) for which match returns true.
func (q *Queue) CountMatching(match func(Packet) bool) int {
	n := 0
	for _, p := range q.packets {
		if match(p) {
			n++
		}
	}
	return n
}

// IsActive reports whether this queue has a packet ready to transmit and is
// not paused.
func (q *Queue) IsActive() bool { return q.activeFlag && !q.pausedFlag }

// SetActive sets the queue's active flag directly; used by the executor's
// poll phase and by switch reactivation on link-free events.
func (q *Queue) SetActive(a bool) { q.activeFlag = a }

// IsPaused reports whether PFC has paused this queue.
func (q *Queue) IsPaused() bool { return q.pausedFlag }

// SetPaused sets the queue's paused flag.
func (q *Queue) SetPaused(p bool) { q.pausedFlag = p }
