package visualizer

import (
	"fmt"
	"io"
)

// ErrUnmatchedRx means a "rx" event has no preceding "tx" event with the
// same annotation; this indicates a malformed or truncated trace file.
type ErrUnmatchedRx struct {
	Annotation string
}

func (e *ErrUnmatchedRx) Error() string {
	return fmt.Sprintf("netsim/visualizer: unmatched rx event: %s", e.Annotation)
}

// NodeLayout maps a node id to its horizontal position, in TikZ units, in
// the emitted diagram.
type NodeLayout struct {
	NodeID uint64
	X      int
}

// TikzWriter renders a sequence of tx/rx [Event] pairs as a TikZ sequence
// diagram: one vertical timeline per node in nodes, one diagonal edge per
// matched tx/rx pair.
type TikzWriter struct {
	w     io.Writer
	nodes []NodeLayout
}

// NewTikzWriter creates a [TikzWriter] with one timeline per entry in
// nodes, in the given horizontal order.
func NewTikzWriter(w io.Writer, nodes []NodeLayout) *TikzWriter {
	return &TikzWriter{w: w, nodes: nodes}
}

func (w *TikzWriter) lookup(node uint64) (int, bool) {
	for _, n := range w.nodes {
		if n.NodeID == node {
			return n.X, true
		}
	}
	return 0, false
}

func (w *TikzWriter) prelude() error {
	_, err := io.WriteString(w.w, "\\documentclass[class=minimal,border=5pt]{standalone}\n"+
		"\\usepackage{tikz}\n\n\\begin{document}\n\\begin{tikzpicture}\n")
	return err
}

func (w *TikzWriter) postlude(endTime int64) error {
	for _, n := range w.nodes {
		_, err := fmt.Fprintf(w.w,
			"\\draw[very thick] (%d, 0) -- (%d, -%f) ;\n\\draw (%d, 0.5) node {%d} ;\n",
			n.X, n.X, float64(endTime)/1e6, n.X, n.NodeID)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w.w, "\\end{tikzpicture}\n\\end{document}\n")
	return err
}

func (w *TikzWriter) singleEdge(tx, rx Event) error {
	txX, ok := w.lookup(tx.Node)
	if !ok {
		return nil
	}
	rxX, ok := w.lookup(rx.Node)
	if !ok {
		return nil
	}
	txTime := float64(tx.Time) / 1e6
	rxTime := float64(rx.Time) / 1e6
	_, err := fmt.Fprintf(w.w,
		"\\draw[%s] (%d,-%f) -> (%d,-%f)\n  node[pos=0.5,sloped,%s] {%s} ;\n",
		tx.Color(), txX, txTime, rxX, rxTime, tx.Color(), tx.Annotation())
	return err
}

// DumpEvents writes the full TikZ document for events, matching each tx
// event to the next unmatched rx event sharing its annotation (FIFO per
// annotation, since a flow's sequence numbers are only reused after a
// go-back-N retransmission). Returns [*ErrUnmatchedRx] if an rx event has
// no pending tx event.
func (w *TikzWriter) DumpEvents(events []Event) error {
	if err := w.prelude(); err != nil {
		return err
	}

	pending := make(map[string][]Event)
	var endTime int64
	for _, ev := range events {
		endTime = ev.Time
		switch ev.Side {
		case SideTx:
			key := ev.Annotation()
			pending[key] = append(pending[key], ev)
		case SideRx:
			key := ev.Annotation()
			queue := pending[key]
			if len(queue) == 0 {
				return &ErrUnmatchedRx{Annotation: key}
			}
			tx := queue[0]
			pending[key] = queue[1:]
			if err := w.singleEdge(tx, ev); err != nil {
				return err
			}
		default:
			continue
		}
	}

	return w.postlude(endTime)
}
