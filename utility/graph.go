package utility

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"go-micrograd/autograd"
)


// WriteDot renders the graph that ends at root in Graphviz DOT: one record per
// value showing data and grad, plus a small op node between an op result and
// its operands. Pipe the output into `dot -Tsvg`.
func WriteDot(out io.Writer, root *autograd.Value) error {
	w := bufio.NewWriter(out)
	topo := autograd.TopologicalOrder(root)

	ids := make(map[*autograd.Value]string, len(topo))
	for i, v := range topo {
		ids[v] = fmt.Sprintf("n%d", i)
	}

	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "  rankdir=LR;")
	for _, v := range topo {
		id := ids[v]
		fmt.Fprintf(w, "  %s [shape=record, label=\"{ data %.4f | grad %.4f }\"];\n", id, v.Data(), v.Grad())
		if v.Op().IsLeaf() {
			continue
		}
		fmt.Fprintf(w, "  %s_op [label=\"%s\"];\n", id, v.Op())
		fmt.Fprintf(w, "  %s_op -> %s;\n", id, id)
		for _, p := range v.Children() {
			fmt.Fprintf(w, "  %s -> %s_op;\n", ids[p], id)
		}
	}
	fmt.Fprintln(w, "}")

	return errors.Wrap(w.Flush(), "write dot")
}
