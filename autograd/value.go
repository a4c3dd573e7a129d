package autograd

import "fmt"

// Value is a differentiable scalar and a node of the computation graph.
// Nodes are shared by pointer: two handles are the same node iff the pointers are equal.
// A Value must not be mutated from more than one goroutine at a time.
type Value struct {
	data    float64
	grad    float64
	op      Op
	parents []*Value
}

// NewValue creates a leaf: no op, no parents, zero gradient.
func NewValue(data float64) *Value {
	return &Value{data: data}
}

func newNode(data float64, op Op, parents ...*Value) *Value {
	return &Value{
		data:    data,
		op:      op,
		parents: parents,
	}
}

func (v *Value) Data() float64 { return v.data }

// SetData overwrites the forward value. Nodes built from v are not recomputed.
func (v *Value) SetData(data float64) { v.data = data }

func (v *Value) Grad() float64 { return v.grad }

func (v *Value) SetGrad(grad float64) { v.grad = grad }

func (v *Value) AddGrad(grad float64) { v.grad += grad }

func (v *Value) ZeroGrad() { v.grad = 0 }

func (v *Value) Op() Op { return v.op }

// Children returns the operands v was built from, in operand order.
// The slice is a copy; the pointers are the shared parent nodes.
func (v *Value) Children() []*Value {
	out := make([]*Value, len(v.parents))
	copy(out, v.parents)
	return out
}

// first and second operand accessors. asking a unary node for its right
// operand is a bug in this package, not a user error.
func (v *Value) lvalue() *Value {
	if len(v.parents) < 1 {
		panic(fmt.Sprintf("autograd: op %q has no left operand", v.op))
	}
	return v.parents[0]
}

func (v *Value) rvalue() *Value {
	if len(v.parents) < 2 {
		panic(fmt.Sprintf("autograd: op %q has no right operand", v.op))
	}
	return v.parents[1]
}

func (v *Value) String() string {
	return fmt.Sprintf("Value(data=%g, grad=%g)", v.data, v.grad)
}

// ZeroGrad resets the gradient of every given value. Intermediate nodes are not visited.
func ZeroGrad(values ...*Value) {
	for _, v := range values {
		v.grad = 0
	}
}
