package netsim

//
// Scenario library: the named, reproducible flow mixes the CLI's --scenario
// flag selects between. Each builder returns a ready-to-run [Executor]
// already carrying its [FlowArrivalEvent]s; the caller only needs to call
// Execute.
//

import "fmt"

// mtuPacketLength is the data packet payload size every scenario in this
// library uses, matching the spec's worked examples (1500-byte MTU minus
// the 40-byte header).
const mtuPacketLength = 1460

// ScenarioName enumerates the --scenario CLI values this build supports.
type ScenarioName string

const (
	// ScenarioSharedIngressVictim is two senders converging on the same
	// destination: both flows share the congested egress queue and no
	// victim is isolated from it.
	ScenarioSharedIngressVictim ScenarioName = "shared_ingress_victim"

	// ScenarioIndependentVictim adds a third, independent flow to a
	// congested pair: the victim shares no egress with the congested
	// flows, so a fair switch should isolate it from their backpressure.
	ScenarioIndependentVictim ScenarioName = "independent_victim"
)

// ParseScenarioName maps a CLI --scenario value to a [ScenarioName].
func ParseScenarioName(s string) (ScenarioName, error) {
	switch ScenarioName(s) {
	case ScenarioSharedIngressVictim, ScenarioIndependentVictim:
		return ScenarioName(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownScenario, s)
	}
}

// BuildScenario constructs the named scenario atop a fresh "one big
// switch" topology of the given switch type, queue/link characteristics,
// and logger.
func BuildScenario(
	name ScenarioName,
	switchType SwitchType,
	queueBytes uint32,
	bandwidthBps uint64,
	propagationDelay Nanos,
	logger Logger,
) (*Topology, *Executor, error) {
	pfcEnabled := switchType == SwitchPFC || switchType == SwitchIngressPFC

	switch name {
	case ScenarioSharedIngressVictim:
		return buildSharedIngressVictim(switchType, pfcEnabled, queueBytes, bandwidthBps, propagationDelay, logger)
	case ScenarioIndependentVictim:
		return buildIndependentVictim(switchType, pfcEnabled, queueBytes, bandwidthBps, propagationDelay, logger)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
}

// buildSharedIngressVictim is spec scenario 4: two senders (hosts 1 and 2)
// each send a 30-packet flow to host 0, both starting at t = 1s.
func buildSharedIngressVictim(
	switchType SwitchType,
	pfcEnabled bool,
	queueBytes uint32,
	bandwidthBps uint64,
	propagationDelay Nanos,
	logger Logger,
) (*Topology, *Executor, error) {
	const numHosts = 3
	topology := NewOneBigSwitchTopology(numHosts, queueBytes, bandwidthBps, propagationDelay, pfcEnabled, switchType, logger)
	ex := NewExecutor(topology, logger)

	const startTime Nanos = 1_000_000_000
	const packetsPerFlow = 30
	flows := []FlowInfo{
		{FlowID: 1, SenderID: 1, DestID: 0, LengthBytes: packetsPerFlow * mtuPacketLength, MaxPacketLength: mtuPacketLength},
		{FlowID: 2, SenderID: 2, DestID: 0, LengthBytes: packetsPerFlow * mtuPacketLength, MaxPacketLength: mtuPacketLength},
	}
	for _, fi := range flows {
		ex.Push(NewFlowArrivalEvent(fi, startTime, nil))
	}
	return topology, ex, nil
}

// buildIndependentVictim is spec scenario 5: flows 1 and 2 (hosts 2 and 3)
// each send a 300-packet flow to host 0 starting at t = 1s; a victim flow
// 0 from host 0 to host 1 starts at t = 1.1s and shares no egress with the
// congested pair.
func buildIndependentVictim(
	switchType SwitchType,
	pfcEnabled bool,
	queueBytes uint32,
	bandwidthBps uint64,
	propagationDelay Nanos,
	logger Logger,
) (*Topology, *Executor, error) {
	const numHosts = 4
	topology := NewOneBigSwitchTopology(numHosts, queueBytes, bandwidthBps, propagationDelay, pfcEnabled, switchType, logger)
	ex := NewExecutor(topology, logger)

	const congestedStart Nanos = 1_000_000_000
	const victimStart Nanos = 1_100_000_000
	const congestedPackets = 300
	const victimPackets = 30

	ex.Push(NewFlowArrivalEvent(FlowInfo{
		FlowID: 1, SenderID: 2, DestID: 0,
		LengthBytes: congestedPackets * mtuPacketLength, MaxPacketLength: mtuPacketLength,
	}, congestedStart, nil))
	ex.Push(NewFlowArrivalEvent(FlowInfo{
		FlowID: 2, SenderID: 3, DestID: 0,
		LengthBytes: congestedPackets * mtuPacketLength, MaxPacketLength: mtuPacketLength,
	}, congestedStart, nil))
	ex.Push(NewFlowArrivalEvent(FlowInfo{
		FlowID: 0, SenderID: 0, DestID: 1,
		LengthBytes: victimPackets * mtuPacketLength, MaxPacketLength: mtuPacketLength,
	}, victimStart, nil))

	return topology, ex, nil
}
