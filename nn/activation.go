package nn

import "go-micrograd/autograd"


// Activation is the non-linearity a neuron applies to its weighted sum.
type Activation struct {
	name  string
	apply func(*autograd.Value) *autograd.Value
}

func (a Activation) Apply(x *autograd.Value) *autograd.Value { return a.apply(x) }
func (a Activation) Name() string { return a.name }


var (
	// out = tanh(x), the default for every layer
	Tanh = Activation{name: "tanh", apply: (*autograd.Value).Tanh}

	// you definitely know RELU if you're reading this: out = max(0, x)
	ReLU = Activation{name: "relu", apply: (*autograd.Value).ReLU}

	// identity, no node is added to the graph
	Linear = Activation{name: "linear", apply: func(x *autograd.Value) *autograd.Value { return x }}

	// out = 1 / (1 + exp(-x)), built from engine ops so it needs no backward rule of its own
	Sigmoid = Activation{name: "sigmoid", apply: sigmoid}
)


func sigmoid(x *autograd.Value) *autograd.Value {
	return autograd.Div(1.0, x.Neg().Exp().AddScalar(1))
}



// Softmax turns logits into probabilities that sum to 1.
// the max logit is subtracted first so exp does not overflow on large scores.
func Softmax(logits []*autograd.Value) []*autograd.Value {
	if len(logits) == 0 {
		return nil
	}
	maxv := logits[0].Data()
	for _, l := range logits {
		if l.Data() > maxv {
			maxv = l.Data()
		}
	}

	exps := make([]*autograd.Value, len(logits))
	for i, l := range logits {
		exps[i] = l.SubScalar(maxv).Exp()
	}
	inv := autograd.Sum(exps...).Pow(-1)

	probs := make([]*autograd.Value, len(logits))
	for i, e := range exps {
		probs[i] = e.Mul(inv)
	}
	return probs
}
