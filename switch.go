package netsim

//
// Switch forwarding: shared queue bookkeeping used by all four
// disciplines below. Every switch in this build has only rack queues
// (one per directly-attached host); the "one big switch" topology never
// exercises core queues, but the field stays separate from rack so a
// richer topology could populate it without changing the forwarding
// logic.
//

// queueSet is the egress-queue bookkeeping shared by every switch
// forwarding discipline: one [Queue] per directly attached neighbour,
// searchable by the neighbour's node id in either direction.
type queueSet struct {
	rack []*Queue
	core []*Queue
}

func newQueueSet(queues []*Queue) queueSet {
	return queueSet{rack: queues}
}

func (qs *queueSet) all() []*Queue {
	if len(qs.core) == 0 {
		return qs.rack
	}
	all := make([]*Queue, 0, len(qs.rack)+len(qs.core))
	all = append(all, qs.rack...)
	all = append(all, qs.core...)
	return all
}

// towards returns the queue whose link delivers to node id.
func (qs *queueSet) towards(id uint32) (*Queue, int, bool) {
	for i, q := range qs.all() {
		if q.Link().ToNode == id {
			return q, i, true
		}
	}
	return nil, -1, false
}

func (p Packet) routingHeader() (PacketHeader, bool) {
	switch p.Kind {
	case PacketData, PacketAck, PacketNack:
		return p.Header, true
	default:
		return PacketHeader{}, false
	}
}
