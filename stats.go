package netsim

//
// Completion-time statistics over the sender-side flow completions a
// scenario run collects (the same values its per-flow "fct" trace records
// carry).
//

import (
	"github.com/montanaflynn/stats"
)

// FlowCompletion is one sender-side flow's recorded completion, the unit
// the scenario runner's "fct" trace records carry.
type FlowCompletion struct {
	FlowID         uint32
	CompletionTime Nanos
}

// CompletionSummary holds the mean/median/p95 flow completion time across
// a batch of flows, in nanoseconds.
type CompletionSummary struct {
	Count  int
	Mean   float64
	Median float64
	P95    float64
}

// SummarizeCompletions computes a [CompletionSummary] over completions.
// Returns the zero summary (Count 0) if completions is empty.
func SummarizeCompletions(completions []FlowCompletion) (CompletionSummary, error) {
	if len(completions) == 0 {
		return CompletionSummary{}, nil
	}
	data := make(stats.Float64Data, len(completions))
	for i, c := range completions {
		data[i] = float64(c.CompletionTime)
	}
	mean, err := data.Mean()
	if err != nil {
		return CompletionSummary{}, err
	}
	median, err := data.Median()
	if err != nil {
		return CompletionSummary{}, err
	}
	p95, err := data.Percentile(95)
	if err != nil {
		return CompletionSummary{}, err
	}
	return CompletionSummary{
		Count:  len(completions),
		Mean:   mean,
		Median: median,
		P95:    p95,
	}, nil
}

// CollectSenderCompletions walks every host in topology and returns the
// completion time of every sender-side flow that has finished, the same
// population the scenario runner's "fct" records describe.
func CollectSenderCompletions(topology *Topology) []FlowCompletion {
	var out []FlowCompletion
	for _, h := range topology.Hosts() {
		for _, f := range h.flows {
			if f.Side() != FlowSender {
				continue
			}
			if ct, ok := f.CompletionTime(); ok {
				out = append(out, FlowCompletion{FlowID: f.Info().FlowID, CompletionTime: ct})
			}
		}
	}
	return out
}
