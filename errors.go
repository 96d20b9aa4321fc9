package netsim

import "errors"

// ErrUnknownNode indicates that a [Topology] lookup referenced a node id
// that does not exist. This is a topology error (spec-speak: fatal to the
// simulation run) and aborts the event that caused it.
var ErrUnknownNode = errors.New("netsim: unknown node id")

// ErrQueueNotFound indicates a switch could not locate the egress or
// ingress queue a packet's header demands. Topologies are expected to wire
// every destination a scenario can address; hitting this means the
// scenario and the topology disagree.
var ErrQueueNotFound = errors.New("netsim: no queue for destination")

// ErrEventTimeRegression indicates the executor popped an event whose fire
// time is strictly earlier than the simulation's current time. This can
// only happen from a programming error in an event's time calculation, so
// the executor aborts rather than trying to recover.
var ErrEventTimeRegression = errors.New("netsim: event fired before current time")

// ErrNoPendingPackets is returned by [Host.Exec] when the host has nothing
// queued to transmit. The executor's poll loop treats it as a normal,
// silent outcome rather than a failure.
var ErrNoPendingPackets = errors.New("netsim: no pending outgoing packets")

// ErrUnknownSwitchType indicates a CLI or scenario argument named a switch
// forwarding discipline this build does not implement.
var ErrUnknownSwitchType = errors.New("netsim: unknown switch type")

// ErrUnknownScenario indicates a CLI argument named a scenario this build
// does not implement.
var ErrUnknownScenario = errors.New("netsim: unknown scenario")
