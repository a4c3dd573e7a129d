package autograd

import "math"

// TopologicalOrder returns every node reachable from root through its parents,
// each node after all of its parents. The order is the one a recursive DFS
// produces (parents visited in operand order, node appended after them), but it
// is computed with an explicit stack so long chains don't grow the call stack.
func TopologicalOrder(root *Value) []*Value {
	var topo []*Value
	visited := map[*Value]bool{root: true}

	type frame struct {
		node *Value
		next int // index of the next parent to visit
	}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.parents) {
			parent := top.node.parents[top.next]
			top.next++
			if !visited[parent] {
				visited[parent] = true
				stack = append(stack, frame{node: parent})
			}
			continue
		}
		topo = append(topo, top.node)
		stack = stack[:len(stack)-1]
	}
	return topo
}

// Backward computes d(v)/d(n) for every ancestor n of v and adds it into n's gradient.
//
// v's own gradient is overwritten with 1; every other gradient keeps its previous
// value and accumulates on top of it. Calling Backward twice without zeroing
// therefore doubles the interior gradients. Zero the retained nodes (usually the
// model parameters) before each pass.
func (v *Value) Backward() {
	topo := TopologicalOrder(v)

	v.grad = 1
	for i := len(topo) - 1; i >= 0; i-- {
		topo[i].backwardStep()
	}
}

// backwardStep distributes v.grad to v's parents using the local derivative of v.op.
func (v *Value) backwardStep() {
	g := v.grad
	switch v.op.Kind {
	case OpAdd:
		v.lvalue().grad += g
		v.rvalue().grad += g
	case OpMul:
		a, b := v.lvalue(), v.rvalue()
		a.grad += g * b.data
		b.grad += g * a.data
	case OpExp:
		v.lvalue().grad += g * v.data
	case OpPow:
		a := v.lvalue()
		k := v.op.Exponent
		a.grad += g * k * math.Pow(a.data, k-1)
	case OpReLU:
		if v.data > 0 {
			v.lvalue().grad += g
		}
	case OpTanh:
		v.lvalue().grad += g * (1 - v.data*v.data)
	case OpLeaf:
		// nothing upstream
	}
}
