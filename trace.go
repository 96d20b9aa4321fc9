package netsim

//
// Trace file plumbing: the structured JSON-lines sink the visualiser
// collaborator reads, plus the "fct" summary records emitted once a run
// completes.
//

import (
	"fmt"
	"os"
)

// TraceFileName returns the conventional trace file name for a scenario
// run: "<scenario>-<switch>.tr".
func TraceFileName(scenario string, switchType SwitchType) string {
	return fmt.Sprintf("%s-%s.tr", scenario, switchType.String())
}

// OpenTraceLogger creates (or truncates) the trace file for scenario and
// switchType and returns an [ApexLogger] writing JSON-lines records to it,
// plus the file itself so the caller can close it once the run completes.
func OpenTraceLogger(scenario string, switchType SwitchType) (*ApexLogger, *os.File, error) {
	name := TraceFileName(scenario, switchType)
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, fmt.Errorf("netsim: opening trace file: %w", err)
	}
	return NewApexTraceLogger(f), f, nil
}

// EmitFCTRecords writes one "fct" trace record per completion, the record
// kind the visualiser's companion tooling uses to plot flow completion
// time distributions.
func EmitFCTRecords(logger Logger, completions []FlowCompletion) {
	for _, c := range completions {
		logger.WithFields(map[string]any{
			"id":  c.FlowID,
			"fct": int64(c.CompletionTime),
		}).Info("fct")
	}
}
