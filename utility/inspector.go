package utility

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"go-micrograd/nn"
)

// provides utility functions to analyze and log details of a model.
type ModelInspector struct {
	model *nn.MLP
}

// creates a new inspector for the given model.
func NewModelInspector(model *nn.MLP) *ModelInspector {
	return &ModelInspector{model: model}
}

// prints summary of the model
func (mi *ModelInspector) Summary() {
	mi.Fprint(os.Stdout)
}

func (mi *ModelInspector) Fprint(out io.Writer) {
	fmt.Fprintln(out, "\n--- Model Summary ---")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Layer\tActivation\tShape\tParam #")
	fmt.Fprintln(w, "-----\t----------\t-----\t-------")

	for i, layer := range mi.model.Layers() {
		neurons := layer.Neurons()
		act := "-"
		if len(neurons) > 0 {
			act = neurons[0].Name()
		}
		fmt.Fprintf(w, "%d\t%s\t%d -> %d\t%d\n", i, act, layer.InputSize(), layer.OutputSize(), len(layer.Parameters()))
	}

	w.Flush()

	fmt.Fprintln(out, "----------------------------------")
	fmt.Fprintf(out, "Total Parameters: %d\n", mi.CountParameters())
	fmt.Fprintf(out, "Gradient L2 Norm: %.6g\n", mi.GradNorm())
	fmt.Fprintln(out, "----------------------------------")
}


// every parameter is a scalar leaf, so this is just the length of Parameters()
func (mi *ModelInspector) CountParameters() int {
	return len(mi.model.Parameters())
}


// L2 norm of the current parameter gradients, handy for spotting exploding steps.
func (mi *ModelInspector) GradNorm() float64 {
	params := mi.model.Parameters()
	grads := make([]float64, len(params))
	for i, p := range params {
		grads[i] = p.Grad()
	}
	return floats.Norm(grads, 2)
}
