package autograd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-micrograd/autograd"
)

const eps = 1e-9

func TestAddLinearity(t *testing.T) {
	x := autograd.NewValue(1.0)
	y := autograd.NewValue(2.0)
	z := x.Add(y)
	z.Backward()

	assert.Equal(t, 3.0, z.Data())
	assert.Equal(t, 1.0, z.Grad())
	assert.Equal(t, 1.0, x.Grad())
	assert.Equal(t, 1.0, y.Grad())
}

func TestProductRule(t *testing.T) {
	a := autograd.NewValue(3.0)
	b := autograd.NewValue(-5.0)
	y := a.Mul(b)
	y.Backward()

	assert.Equal(t, -15.0, y.Data())
	assert.Equal(t, b.Data(), a.Grad())
	assert.Equal(t, a.Data(), b.Grad())
}

func TestDiamond(t *testing.T) {
	t.Run("square", func(t *testing.T) {
		a := autograd.NewValue(4.0)
		y := a.Mul(a)
		y.Backward()
		assert.Equal(t, 2*a.Data(), a.Grad())
	})

	t.Run("double", func(t *testing.T) {
		a := autograd.NewValue(4.0)
		y := a.Add(a)
		y.Backward()
		assert.Equal(t, 2.0, a.Grad())
	})

	t.Run("x*x+x", func(t *testing.T) {
		x := autograd.NewValue(3.0)
		y := x.Mul(x).Add(x)
		y.Backward()
		assert.Equal(t, 12.0, y.Data())
		assert.Equal(t, 7.0, x.Grad())
	})
}

func TestTanhChainRule(t *testing.T) {
	a := autograd.NewValue(0.7)
	y := a.Tanh()
	y.Backward()

	th := math.Tanh(0.7)
	assert.InDelta(t, th, y.Data(), eps)
	assert.InDelta(t, 1-th*th, a.Grad(), eps)
}

func TestPowerRule(t *testing.T) {
	a := autograd.NewValue(2.0)
	y := a.Pow(3)
	y.Backward()

	assert.Equal(t, 8.0, y.Data())
	assert.Equal(t, 12.0, a.Grad())
}

func TestPowerRuleFractionalExponent(t *testing.T) {
	// the exponent, not the base, multiplies the derivative
	a := autograd.NewValue(4.0)
	y := a.Pow(0.5)
	y.Backward()

	assert.Equal(t, 2.0, y.Data())
	assert.InDelta(t, 0.25, a.Grad(), eps)
}

func TestPowNegativeBaseFractionalExponentIsNaN(t *testing.T) {
	a := autograd.NewValue(-4.0)
	y := a.Pow(0.5)
	y.Backward()

	assert.True(t, math.IsNaN(y.Data()))
	assert.True(t, math.IsNaN(a.Grad()))
}

func TestReLUSubgradient(t *testing.T) {
	cases := []struct {
		in, out, grad float64
	}{
		{in: -1, out: 0, grad: 0},
		{in: 0, out: 0, grad: 0},
		{in: 2, out: 2, grad: 1},
	}
	for _, tc := range cases {
		a := autograd.NewValue(tc.in)
		y := a.ReLU()
		y.Backward()
		assert.Equal(t, tc.out, y.Data(), "relu(%g)", tc.in)
		assert.Equal(t, tc.grad, a.Grad(), "relu'(%g)", tc.in)
	}
}

func TestExp(t *testing.T) {
	a := autograd.NewValue(1.5)
	y := a.Exp()
	y.Backward()

	assert.InDelta(t, math.Exp(1.5), y.Data(), eps)
	assert.InDelta(t, math.Exp(1.5), a.Grad(), eps)
}

func TestExpOverflowPropagatesInf(t *testing.T) {
	a := autograd.NewValue(1000)
	y := a.Exp()
	y.Backward()

	assert.True(t, math.IsInf(y.Data(), 1))
	assert.True(t, math.IsInf(a.Grad(), 1))
}

func TestDivideByZeroIsInf(t *testing.T) {
	a := autograd.NewValue(1.0)
	b := autograd.NewValue(0.0)
	y := a.Div(b)

	assert.True(t, math.IsInf(y.Data(), 1))
}

// the classic micrograd sanity check
func TestMicrogradReference(t *testing.T) {
	a := autograd.NewValue(-4.0)
	b := autograd.NewValue(2.0)
	c := a.Add(b)
	d := a.Mul(b).Add(b.Pow(3))
	c = autograd.Add(c.Add(c), 1.0)
	c = c.AddScalar(1).Add(c).Add(a.Neg())
	d = d.Add(autograd.Mul(d, 2.0)).Add(b.Add(a).ReLU())
	d = d.Add(autograd.Mul(3.0, d)).Add(b.Sub(a).ReLU())
	e := c.Sub(d)
	f := e.Pow(2)
	g := autograd.Div(f, 2.0)
	g = g.Add(autograd.Div(10.0, f))
	g.Backward()

	assert.InDelta(t, 24.7041, g.Data(), 1e-4)
	assert.InDelta(t, 138.8338, a.Grad(), 1e-4)
	assert.InDelta(t, 645.5773, b.Grad(), 1e-4)
}

func TestBackwardIsNotIdempotent(t *testing.T) {
	x := autograd.NewValue(1.0)
	y := autograd.NewValue(2.0)
	z := x.Add(y)

	z.Backward()
	z.Backward()
	assert.Equal(t, 2.0, x.Grad())
	assert.Equal(t, 2.0, y.Grad())
	// the root is re-seeded, not accumulated
	assert.Equal(t, 1.0, z.Grad())

	// interior nodes double, and their stale gradients flow into the leaves again
	a := autograd.NewValue(3.0)
	sq := a.Mul(a)
	out := sq.Add(a)

	out.Backward()
	require.Equal(t, 1.0, sq.Grad())
	require.Equal(t, 7.0, a.Grad())

	out.Backward()
	assert.Equal(t, 2.0, sq.Grad())
	assert.Equal(t, 20.0, a.Grad())
}

func TestZeroGradThenBackwardIsFresh(t *testing.T) {
	x := autograd.NewValue(3.0)
	w := autograd.NewValue(2.0)
	y := x.Mul(w)

	y.Backward()
	autograd.ZeroGrad(x, w)
	assert.Zero(t, x.Grad())
	assert.Zero(t, w.Grad())

	y.Backward()
	assert.Equal(t, 2.0, x.Grad())
	assert.Equal(t, 3.0, w.Grad())
}

func TestBackwardOnLeaf(t *testing.T) {
	x := autograd.NewValue(5.0)
	x.Backward()

	assert.Equal(t, 1.0, x.Grad())
	assert.Empty(t, x.Children())
}

func TestFreshNodesHaveZeroGrad(t *testing.T) {
	a := autograd.NewValue(1.0)
	b := autograd.NewValue(2.0)
	nodes := []*autograd.Value{
		a, b, a.Add(b), a.Mul(b), a.Exp(), a.Pow(2), a.ReLU(), a.Tanh(),
		a.Sub(b), a.Div(b), a.Neg(),
	}
	for _, n := range nodes {
		assert.Zero(t, n.Grad(), n.Op().String())
	}
}

func TestArity(t *testing.T) {
	a := autograd.NewValue(1.0)
	b := autograd.NewValue(2.0)

	cases := []struct {
		node *autograd.Value
		kind autograd.OpKind
	}{
		{a, autograd.OpLeaf},
		{a.Add(b), autograd.OpAdd},
		{a.Mul(b), autograd.OpMul},
		{a.Exp(), autograd.OpExp},
		{a.Pow(3), autograd.OpPow},
		{a.ReLU(), autograd.OpReLU},
		{a.Tanh(), autograd.OpTanh},
	}
	for _, tc := range cases {
		op := tc.node.Op()
		assert.Equal(t, tc.kind, op.Kind)
		assert.Len(t, tc.node.Children(), op.Arity(), op.String())
	}
	assert.True(t, a.Op().IsLeaf())
}

func TestDerivedOpsReduceToPrimitives(t *testing.T) {
	a := autograd.NewValue(6.0)
	b := autograd.NewValue(3.0)

	neg := a.Neg()
	assert.Equal(t, autograd.OpMul, neg.Op().Kind)
	assert.Equal(t, -1.0, neg.Children()[1].Data())

	sub := a.Sub(b)
	assert.Equal(t, autograd.OpAdd, sub.Op().Kind)
	assert.Equal(t, 3.0, sub.Data())

	div := a.Div(b)
	require.Equal(t, autograd.OpMul, div.Op().Kind)
	inv := div.Children()[1]
	assert.Equal(t, autograd.OpPow, inv.Op().Kind)
	assert.Equal(t, -1.0, inv.Op().Exponent)
	assert.InDelta(t, 2.0, div.Data(), eps)

	div.Backward()
	assert.InDelta(t, 1/3.0, a.Grad(), eps)
	assert.InDelta(t, -6/9.0, b.Grad(), eps)
}

func TestChildrenPreserveIdentity(t *testing.T) {
	a := autograd.NewValue(1.0)
	b := autograd.NewValue(2.0)
	y := a.Mul(b)

	first, second := y.Children(), y.Children()
	assert.Same(t, first[0], second[0])
	assert.Same(t, a, first[0])
	assert.Same(t, b, first[1])

	sq := a.Mul(a)
	kids := sq.Children()
	assert.Same(t, kids[0], kids[1])
}

func TestMixedOperands(t *testing.T) {
	x := autograd.NewValue(4.0)

	cases := []struct {
		name string
		got  *autograd.Value
		want float64
		grad float64
	}{
		{"node+scalar", autograd.Add(x, 2.0), 6, 1},
		{"scalar+node", autograd.Add(2.0, x), 6, 1},
		{"node-scalar", autograd.Sub(x, 1.0), 3, 1},
		{"scalar-node", autograd.Sub(1.0, x), -3, -1},
		{"node*scalar", autograd.Mul(x, 3.0), 12, 3},
		{"scalar*node", autograd.Mul(3.0, x), 12, 3},
		{"node/scalar", autograd.Div(x, 2.0), 2, 0.5},
		{"scalar/node", autograd.Div(2.0, x), 0.5, -2.0 / 16},
		{"node+node", autograd.Add(x, x), 8, 2},
		{"neg node", autograd.Neg(x), -4, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x.ZeroGrad()
			tc.got.Backward()
			assert.InDelta(t, tc.want, tc.got.Data(), eps)
			assert.InDelta(t, tc.grad, x.Grad(), eps)
		})
	}
}

func TestSetters(t *testing.T) {
	a := autograd.NewValue(1.0)
	y := a.MulScalar(2)

	a.SetData(10)
	// no automatic recompute
	assert.Equal(t, 2.0, y.Data())
	assert.Equal(t, 10.0, a.Data())

	a.SetGrad(0.5)
	a.AddGrad(0.25)
	assert.Equal(t, 0.75, a.Grad())
	a.ZeroGrad()
	assert.Zero(t, a.Grad())
}

func TestSumAndDot(t *testing.T) {
	xs := []*autograd.Value{autograd.NewValue(1), autograd.NewValue(2), autograd.NewValue(3)}
	ws := []*autograd.Value{autograd.NewValue(4), autograd.NewValue(5), autograd.NewValue(6)}

	assert.Equal(t, 0.0, autograd.Sum().Data())
	assert.Same(t, xs[0], autograd.Sum(xs[0]))

	y := autograd.Dot(xs, ws)
	assert.Equal(t, 32.0, y.Data())

	y.Backward()
	for i := range xs {
		assert.Equal(t, ws[i].Data(), xs[i].Grad())
		assert.Equal(t, xs[i].Data(), ws[i].Grad())
	}

	assert.Panics(t, func() { autograd.Dot(xs, ws[:2]) })
}

func TestOpString(t *testing.T) {
	a := autograd.NewValue(2.0)
	assert.Equal(t, "", a.Op().String())
	assert.Equal(t, "+", a.Add(a).Op().String())
	assert.Equal(t, "*", a.Mul(a).Op().String())
	assert.Equal(t, "pow(3)", a.Pow(3).Op().String())
	assert.Equal(t, "tanh", a.Tanh().Op().String())
	assert.Equal(t, "Value(data=2, grad=0)", a.String())
}

func TestDeepChainDoesNotOverflow(t *testing.T) {
	x := autograd.NewValue(1.0)
	y := x
	const depth = 200000
	for i := 0; i < depth; i++ {
		y = y.AddScalar(1)
	}
	y.Backward()

	assert.Equal(t, float64(depth+1), y.Data())
	assert.Equal(t, 1.0, x.Grad())
}
