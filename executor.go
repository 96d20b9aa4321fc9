package netsim

//
// Executor: the global event priority queue and the poll-idle-nodes step
// that drives the whole simulation forward.
//
// container/heap is the one non-negotiable piece of this build that falls
// back to the standard library rather than a third-party dependency: none
// of the example repositories this module draws on ship a priority queue,
// and the heap here needs an insertion-order tie-break the stdlib
// container/heap does not provide on its own, so it is wrapped rather
// than replaced.
//

import (
	"container/heap"
	"errors"
)

// heapItem is one scheduled [Event] together with the bookkeeping the
// priority queue needs: its resolved absolute fire time and the insertion
// sequence number that breaks ties in FIFO order.
type heapItem struct {
	event    Event
	fireTime Nanos
	seq      int64
}

// eventHeap implements [container/heap.Interface] ordered by (fireTime,
// seq), so that events scheduled for the same instant fire in the order
// they were pushed.
type eventHeap []*heapItem

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].fireTime != h[j].fireTime {
		return h[i].fireTime < h[j].fireTime
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*heapItem))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Executor runs a [Topology] to quiescence: it pops the minimum-time
// event, advances simulated time, and dispatches to the event's affected
// nodes, interleaving a poll phase whenever the next event lies strictly
// in the future.
type Executor struct {
	topology *Topology
	logger   Logger
	now      Nanos
	pending  eventHeap
}

// NewExecutor creates an [Executor] bound to topology. logger receives
// trace records for every transmit/receive and flow completion.
func NewExecutor(topology *Topology, logger Logger) *Executor {
	ex := &Executor{topology: topology, logger: logger}
	heap.Init(&ex.pending)
	return ex
}

// Now returns the executor's current simulated time.
func (ex *Executor) Now() Nanos { return ex.now }

// Topology exposes the executor's topology for inspection after a run.
func (ex *Executor) Topology() *Topology { return ex.topology }

// Push schedules event, resolving its fire time against the executor's
// current simulated time.
func (ex *Executor) Push(event Event) {
	heap.Push(&ex.pending, &heapItem{
		event:    event,
		fireTime: event.Time().Absolute(ex.now),
		seq:      nextEventSeq(),
	})
}

func (ex *Executor) popMin() (*heapItem, bool) {
	if ex.pending.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&ex.pending).(*heapItem), true
}

func (ex *Executor) pushBack(item *heapItem) {
	heap.Push(&ex.pending, item)
}

// pollPhase calls Exec on every currently active node and returns the
// events they produce. A host reporting [ErrNoPendingPackets] is a clean
// no-op, not a failure.
func (ex *Executor) pollPhase() ([]Event, error) {
	var produced []Event
	for _, n := range ex.topology.ActiveNodes() {
		evs, err := n.Exec(ex.now)
		if err != nil {
			if errors.Is(err, ErrNoPendingPackets) {
				continue
			}
			return nil, err
		}
		produced = append(produced, evs...)
	}
	return produced, nil
}

// Execute runs the simulation to quiescence: the event queue drains and
// no active node remains to poll. It returns an error if any event or
// node Exec call fails, or if the executor detects a time regression.
func (ex *Executor) Execute() error {
	for {
		item, ok := ex.popMin()
		if !ok {
			produced, err := ex.pollPhase()
			if err != nil {
				return err
			}
			for _, e := range produced {
				ex.Push(e)
			}
			if ex.pending.Len() == 0 {
				ex.logger.WithFields(map[string]any{"time": int64(ex.now)}).Debug("exiting")
				return nil
			}
			continue
		}

		if item.fireTime > ex.now {
			ex.pushBack(item)
			produced, err := ex.pollPhase()
			if err != nil {
				return err
			}
			for _, e := range produced {
				ex.Push(e)
			}
			item, _ = ex.popMin()
		}
		if item.fireTime < ex.now {
			return ErrEventTimeRegression
		}

		ex.now = item.fireTime
		nodes, err := ex.topology.LookupNodes(item.event.AffectedNodeIDs())
		if err != nil {
			return err
		}
		produced, err := item.event.Exec(ex.now, nodes, ex.logger)
		if err != nil {
			return err
		}
		for _, e := range produced {
			ex.Push(e)
		}
	}
}
