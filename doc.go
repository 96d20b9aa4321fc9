// Package netsim is a discrete-event simulator for studying datacenter
// transport under lossy, Priority Flow Control (PFC), Ingress-PFC, and
// switch-originated NACK forwarding policies.
//
// The simulator models hosts running a sliding-window (go-back-N) transport
// and a single-tier switch that forwards packets through per-egress FIFO
// queues. Running a scenario produces per-flow completion times and a
// packet-event trace suitable for offline visualisation by the sibling
// visualizer package.
//
// The entry point is [Executor]: construct a [Topology] (see
// [NewOneBigSwitchTopology]), push one or more [FlowArrivalEvent]s or raw
// data [Packet]s onto hosts, and call [Executor.Execute]. The executor
// drives a single-threaded, deterministic event loop: there is no real
// concurrency here, because every timestamp in this model is simulated
// rather than wall-clock.
package netsim
