package netsim

//
// Topology: the "one big switch" network all scenarios in this build run
// on — H hosts (ids 0..H-1) each with a direct rack link to a single
// switch (id H).
//

import "fmt"

// SwitchType names a switch forwarding discipline a [Topology] can be
// built with.
type SwitchType int

const (
	// SwitchLossy is plain drop-tail forwarding with no flow control.
	SwitchLossy SwitchType = iota

	// SwitchPFC pauses every ingress when any egress queue fills.
	SwitchPFC

	// SwitchIngressPFC pauses only the offending ingress.
	SwitchIngressPFC

	// SwitchNack signals drops back to the source instead of silently
	// discarding.
	SwitchNack
)

// String renders the switch type using the CLI's own spelling.
func (t SwitchType) String() string {
	switch t {
	case SwitchLossy:
		return "lossy"
	case SwitchPFC:
		return "pfc"
	case SwitchIngressPFC:
		return "ingresspfc"
	case SwitchNack:
		return "nacks"
	default:
		return "unknown"
	}
}

// ParseSwitchType maps a CLI --switch-type value to a [SwitchType].
func ParseSwitchType(s string) (SwitchType, error) {
	switch s {
	case "lossy":
		return SwitchLossy, nil
	case "pfc":
		return SwitchPFC, nil
	case "ingresspfc":
		return SwitchIngressPFC, nil
	case "nacks":
		return SwitchNack, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownSwitchType, s)
	}
}

// Topology owns every [Host] and switch [Node] for the lifetime of a
// simulation run. Nodes and links are created once here and never
// destroyed; flows come and go via [FlowArrivalEvent].
type Topology struct {
	hosts    []*Host
	switches []Node
}

// NewOneBigSwitchTopology builds the topology every scenario in this
// build uses: numHosts hosts, each with a bidirectional access link of
// the given queue/bandwidth/propagation characteristics to a single
// switch of the requested discipline. pfcEnabled controls whether the
// links' PFC thresholds are active; it should be true for SwitchPFC and
// SwitchIngressPFC, false otherwise.
func NewOneBigSwitchTopology(
	numHosts uint32,
	queueBytes uint32,
	bandwidthBps uint64,
	propagationDelay Nanos,
	pfcEnabled bool,
	switchType SwitchType,
	logger Logger,
) *Topology {
	switchID := numHosts

	hosts := make([]*Host, 0, numHosts)
	switchQueues := make([]*Queue, 0, numHosts)
	for id := uint32(0); id < numHosts; id++ {
		hostLink := Link{
			PropagationDelayNs: propagationDelay,
			BandwidthBps:       bandwidthBps,
			PFCEnabled:         pfcEnabled,
			FromNode:           id,
			ToNode:             switchID,
		}
		hosts = append(hosts, NewHost(id, hostLink, logger))

		switchLink := Link{
			PropagationDelayNs: propagationDelay,
			BandwidthBps:       bandwidthBps,
			PFCEnabled:         pfcEnabled,
			FromNode:           switchID,
			ToNode:             id,
		}
		switchQueues = append(switchQueues, NewQueue(switchLink, queueBytes))
	}

	var sw Node
	switch switchType {
	case SwitchPFC:
		sw = NewPFCSwitch(switchID, switchQueues, logger)
	case SwitchIngressPFC:
		sw = NewIngressPFCSwitch(switchID, switchQueues, logger)
	case SwitchNack:
		sw = NewNackSwitch(switchID, switchQueues, logger)
	default:
		sw = NewLossySwitch(switchID, switchQueues, logger)
	}

	return &Topology{hosts: hosts, switches: []Node{sw}}
}

// LookupHost returns the host with the given id, or [ErrUnknownNode].
func (t *Topology) LookupHost(id uint32) (*Host, error) {
	if int(id) < len(t.hosts) {
		return t.hosts[id], nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
}

// LookupNode returns the host or switch with the given id, or
// [ErrUnknownNode].
func (t *Topology) LookupNode(id uint32) (Node, error) {
	if int(id) < len(t.hosts) {
		return t.hosts[id], nil
	}
	switchIdx := int(id) - len(t.hosts)
	if switchIdx >= 0 && switchIdx < len(t.switches) {
		return t.switches[switchIdx], nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
}

// LookupNodes resolves every id in ids, preserving the caller's order, so
// that an event declaring affected node ids [a, b] receives them at
// result[0] and result[1]. Node values are pointers shared with the
// topology's own storage; since the executor runs single-threaded and
// never recurses into another event mid-Exec, there is no concurrent
// access to guard against.
func (t *Topology) LookupNodes(ids []uint32) ([]Node, error) {
	nodes := make([]Node, len(ids))
	for i, id := range ids {
		n, err := t.LookupNode(id)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

// ActiveNodes returns every node whose IsActive is currently true, for
// the executor's poll phase.
func (t *Topology) ActiveNodes() []Node {
	var active []Node
	for _, h := range t.hosts {
		if h.IsActive() {
			active = append(active, h)
		}
	}
	for _, s := range t.switches {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	return active
}

// Hosts returns every host in id order, for scenario builders and
// statistics collection.
func (t *Topology) Hosts() []*Host {
	return t.hosts
}
