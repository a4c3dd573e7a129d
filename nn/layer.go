package nn

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go-micrograd/autograd"
)


// Module is anything that owns trainable parameters.
type Module interface {
	Parameters() []*autograd.Value
	ZeroGrad()
	Name() string
}



// Neuron computes activation(bias + sum_i w_i * x_i).
type Neuron struct {
	weights    []*autograd.Value
	bias       *autograd.Value
	activation Activation
}

func NewNeuron(nin int, activation Activation, init Initializer) (*Neuron, error) {
	if nin <= 0 {
		return nil, errors.Errorf("neuron: number of inputs must be positive, got %d", nin)
	}
	weights := make([]*autograd.Value, nin)
	for i := range weights {
		weights[i] = autograd.NewValue(init.Sample())
	}
	return &Neuron{
		weights:    weights,
		bias:       autograd.NewValue(init.Sample()),
		activation: activation,
	}, nil
}

func (n *Neuron) Forward(x []*autograd.Value) (*autograd.Value, error) {
	if len(x) != len(n.weights) {
		return nil, errors.Errorf("neuron: expected %d inputs, got %d", len(n.weights), len(x))
	}
	act := lo.Reduce(n.weights, func(acc *autograd.Value, w *autograd.Value, i int) *autograd.Value {
		return acc.Add(w.Mul(x[i]))
	}, n.bias)
	return n.activation.Apply(act), nil
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*autograd.Value {
	return append(append([]*autograd.Value{}, n.weights...), n.bias)
}

func (n *Neuron) ZeroGrad() { autograd.ZeroGrad(n.Parameters()...) }
func (n *Neuron) Name() string { return "Neuron(" + n.activation.Name() + ")" }
func (n *Neuron) Weights() []*autograd.Value { return n.weights }
func (n *Neuron) Bias() *autograd.Value { return n.bias }



// Layer is a row of neurons that all read the same input.
type Layer struct {
	neurons    []*Neuron
	nin        int
	activation Activation
}

func NewLayer(nin, nout int, activation Activation, init Initializer) (*Layer, error) {
	if nout <= 0 {
		return nil, errors.Errorf("layer: number of outputs must be positive, got %d", nout)
	}
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		n, err := NewNeuron(nin, activation, init)
		if err != nil {
			return nil, errors.Wrapf(err, "layer: neuron %d", i)
		}
		neurons[i] = n
	}
	return &Layer{neurons: neurons, nin: nin, activation: activation}, nil
}

func (l *Layer) Forward(x []*autograd.Value) ([]*autograd.Value, error) {
	out := make([]*autograd.Value, len(l.neurons))
	for i, n := range l.neurons {
		v, err := n.Forward(x)
		if err != nil {
			return nil, errors.Wrapf(err, "layer: neuron %d", i)
		}
		out[i] = v
	}
	return out, nil
}

func (l *Layer) Parameters() []*autograd.Value {
	return lo.FlatMap(l.neurons, func(n *Neuron, _ int) []*autograd.Value {
		return n.Parameters()
	})
}

func (l *Layer) ZeroGrad() {
	for _, n := range l.neurons {
		n.ZeroGrad()
	}
}

func (l *Layer) Name() string { return "Layer(" + l.activation.Name() + ")" }
func (l *Layer) Neurons() []*Neuron { return l.neurons }
func (l *Layer) InputSize() int { return l.nin }
func (l *Layer) OutputSize() int { return len(l.neurons) }
