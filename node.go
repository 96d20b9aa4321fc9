package netsim

//
// Node: the capability set shared by hosts and switches
//

// Node is the capability set the executor drives uniformly over hosts and
// switches. It is deliberately free of generics so that a single interface
// value can stand in for either concrete kind (object-safety, in the
// teacher's parlance).
type Node interface {
	// ID returns this node's id within its [Topology].
	ID() uint32

	// Receive handles an inbound packet arriving at time now and returns
	// any events it directly produces (switches return none; hosts return
	// none too, since replies are queued for the next Exec).
	Receive(p Packet, now Nanos) ([]Event, error)

	// Exec is called by the executor's poll phase for every node whose
	// IsActive is true. It returns any events produced by proactively
	// transmitting.
	Exec(now Nanos) ([]Event, error)

	// IsActive reports whether this node has work to do on the next poll.
	IsActive() bool

	// Reactivate is called when a link leaving this node becomes free
	// again (its in-flight [NodeTransmitEvent] has fired). Hosts mark
	// themselves active; switches mark the matching egress queue active.
	Reactivate(link Link)
}
