package autograd

import "fmt"

// OpKind tags the operation that produced a Value.
type OpKind int

const (
	OpLeaf OpKind = iota
	OpAdd
	OpMul
	OpExp
	OpPow
	OpReLU
	OpTanh
)

// Op is the operator tag carried by a node. Exponent is only meaningful for OpPow.
type Op struct {
	Kind     OpKind
	Exponent float64
}

// number of parents a node with this op must have
func (o Op) Arity() int {
	switch o.Kind {
	case OpAdd, OpMul:
		return 2
	case OpExp, OpPow, OpReLU, OpTanh:
		return 1
	default:
		return 0
	}
}

func (o Op) IsLeaf() bool { return o.Kind == OpLeaf }

func (o Op) String() string {
	switch o.Kind {
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpExp:
		return "exp"
	case OpPow:
		return fmt.Sprintf("pow(%g)", o.Exponent)
	case OpReLU:
		return "relu"
	case OpTanh:
		return "tanh"
	default:
		return ""
	}
}
