package autograd

import "math"

// --- primitive ops: each one has a backward rule in autograd.go ---

// Add returns v + other.
func (v *Value) Add(other *Value) *Value {
	return newNode(v.data+other.data, Op{Kind: OpAdd}, v, other)
}

// Mul returns v * other.
func (v *Value) Mul(other *Value) *Value {
	return newNode(v.data*other.data, Op{Kind: OpMul}, v, other)
}

// Exp returns e^v.
func (v *Value) Exp() *Value {
	return newNode(math.Exp(v.data), Op{Kind: OpExp}, v)
}

// Pow returns v^k. k does not have to be an integer; a negative base with a
// fractional k gives NaN, which is propagated like any other value.
func (v *Value) Pow(k float64) *Value {
	return newNode(math.Pow(v.data, k), Op{Kind: OpPow, Exponent: k}, v)
}

// ReLU returns max(v, 0).
func (v *Value) ReLU() *Value {
	return newNode(math.Max(v.data, 0), Op{Kind: OpReLU}, v)
}

// Tanh returns tanh(v).
func (v *Value) Tanh() *Value {
	return newNode(math.Tanh(v.data), Op{Kind: OpTanh}, v)
}

// --- derived ops, expressed with the primitives above ---

// Neg returns v * -1.
func (v *Value) Neg() *Value {
	return v.Mul(NewValue(-1))
}

// Sub returns v + (-other).
func (v *Value) Sub(other *Value) *Value {
	return v.Add(other.Neg())
}

// Div returns v * other^-1.
func (v *Value) Div(other *Value) *Value {
	return v.Mul(other.Pow(-1))
}

func (v *Value) AddScalar(s float64) *Value { return v.Add(NewValue(s)) }
func (v *Value) SubScalar(s float64) *Value { return v.Sub(NewValue(s)) }
func (v *Value) MulScalar(s float64) *Value { return v.Mul(NewValue(s)) }
func (v *Value) DivScalar(s float64) *Value { return v.Div(NewValue(s)) }

// --- mixed scalar / node forms ---

// Operand is either a graph node or a plain scalar. Scalars are lifted to leaves.
type Operand interface {
	*Value | float64
}

func lift[T Operand](x T) *Value {
	switch x := any(x).(type) {
	case *Value:
		return x
	case float64:
		return NewValue(x)
	}
	panic("autograd: unsupported operand")
}

// Add returns a + b for any combination of nodes and scalars.
func Add[A, B Operand](a A, b B) *Value { return lift(a).Add(lift(b)) }

// Sub returns a - b for any combination of nodes and scalars.
func Sub[A, B Operand](a A, b B) *Value { return lift(a).Sub(lift(b)) }

// Mul returns a * b for any combination of nodes and scalars.
func Mul[A, B Operand](a A, b B) *Value { return lift(a).Mul(lift(b)) }

// Div returns a / b for any combination of nodes and scalars.
func Div[A, B Operand](a A, b B) *Value { return lift(a).Div(lift(b)) }

func Neg[A Operand](a A) *Value { return lift(a).Neg() }

// Sum folds values with Add from left to right. An empty sum is a zero leaf.
func Sum(values ...*Value) *Value {
	if len(values) == 0 {
		return NewValue(0)
	}
	out := values[0]
	for _, v := range values[1:] {
		out = out.Add(v)
	}
	return out
}

// Dot returns sum a[i]*b[i]. Panics if the lengths differ.
func Dot(a, b []*Value) *Value {
	if len(a) != len(b) {
		panic("autograd: Dot of slices with different lengths")
	}
	terms := make([]*Value, len(a))
	for i := range a {
		terms[i] = a[i].Mul(b[i])
	}
	return Sum(terms...)
}
