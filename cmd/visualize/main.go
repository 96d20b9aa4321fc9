// Command visualize renders a netsim trace file as a TikZ sequence diagram.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dcflow/netsim/visualizer"
)

func main() {
	tracePath := flag.String("trace", "", "trace file written by netsim.TraceLogger")
	outPath := flag.String("out", "", "output .tex file")
	nodesFlag := flag.String("nodes", "", "comma-separated node ids to draw timelines for, in left-to-right order (default: every node seen in the trace)")
	filterFlow := flag.Int64("filter-flow", -1, "only draw edges for this flow id (-1 draws every flow)")
	flag.Parse()

	if *tracePath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: visualize --trace <file>.tr --out <file>.tex [--nodes 0,1,2] [--filter-flow N]")
		os.Exit(1)
	}

	in, err := os.Open(*tracePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer in.Close()

	events, err := visualizer.ParseEvents(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *filterFlow >= 0 {
		events = filterByFlow(events, uint64(*filterFlow))
	}

	layout, err := nodeLayout(*nodesFlag, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	writer := visualizer.NewTikzWriter(out, layout)
	if err := writer.DumpEvents(events); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func filterByFlow(events []visualizer.Event, flow uint64) []visualizer.Event {
	var out []visualizer.Event
	for _, e := range events {
		if e.Flow == flow {
			out = append(out, e)
		}
	}
	return out
}

func nodeLayout(nodesFlag string, events []visualizer.Event) ([]visualizer.NodeLayout, error) {
	if nodesFlag != "" {
		var layout []visualizer.NodeLayout
		for i, field := range strings.Split(nodesFlag, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("netsim: invalid --nodes value %q: %w", field, err)
			}
			layout = append(layout, visualizer.NodeLayout{NodeID: id, X: i})
		}
		return layout, nil
	}

	seen := make(map[uint64]bool)
	var ids []uint64
	for _, e := range events {
		if !seen[e.Node] {
			seen[e.Node] = true
			ids = append(ids, e.Node)
		}
	}
	layout := make([]visualizer.NodeLayout, len(ids))
	for i, id := range ids {
		layout[i] = visualizer.NodeLayout{NodeID: id, X: i}
	}
	return layout, nil
}
