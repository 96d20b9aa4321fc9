// Command simulate runs one named scenario to quiescence under a chosen
// switch forwarding discipline and reports per-flow completion times.
package main

import (
	"flag"
	"fmt"
	"os"

	alog "github.com/apex/log"
	"github.com/dcflow/netsim"
)

func main() {
	switchTypeFlag := flag.String("switch-type", "", "switch forwarding discipline: lossy, pfc, ingresspfc, nacks")
	scenarioFlag := flag.String("scenario", "", "scenario to run: shared_ingress_victim, independent_victim")
	flag.StringVar(switchTypeFlag, "t", "", "shorthand for --switch-type")
	flag.StringVar(scenarioFlag, "r", "", "shorthand for --scenario")
	queueBytes := flag.Uint("queue-bytes", 15_000, "per-egress drop-tail queue limit, in bytes")
	bandwidthBps := flag.Uint64("bandwidth-bps", 1_000_000, "link bandwidth, in bits per second")
	propDelayNs := flag.Int64("prop-delay", 1_000_000, "one-way link propagation delay, in nanoseconds")
	logLevel := flag.String("log-level", "info", "operational log level: debug, info, warn")
	flag.Parse()

	switchType, err := netsim.ParseSwitchType(*switchTypeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	scenarioName, err := netsim.ParseScenarioName(*scenarioFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := alog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	opLogger := netsim.NewApexLogger(os.Stderr, level)

	traceLogger, traceFile := netsim.Must2(netsim.OpenTraceLogger(string(scenarioName), switchType))
	defer traceFile.Close()

	topology, executor := netsim.Must2(netsim.BuildScenario(
		scenarioName,
		switchType,
		uint32(*queueBytes),
		*bandwidthBps,
		netsim.Nanos(*propDelayNs),
		traceLogger,
	))
	if err := executor.Execute(); err != nil {
		opLogger.Warnf("simulation aborted: %s", err)
		os.Exit(1)
	}

	completions := netsim.CollectSenderCompletions(topology)
	netsim.EmitFCTRecords(traceLogger, completions)

	summary, err := netsim.SummarizeCompletions(completions)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("flows completed: %d\n", summary.Count)
	if summary.Count > 0 {
		fmt.Printf("fct mean=%.0fns median=%.0fns p95=%.0fns\n", summary.Mean, summary.Median, summary.P95)
	}
}
