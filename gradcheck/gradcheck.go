// Package gradcheck compares the gradients computed by autograd's backward pass
// with central finite differences.
package gradcheck

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats/scalar"

	"go-micrograd/autograd"
)

// Func builds a scalar expression from its inputs. It is called once on graph
// leaves for the backward pass and once per finite-difference evaluation.
type Func func(x []*autograd.Value) *autograd.Value

type Config struct {
	Step   float64 // finite-difference step, 0 lets gonum pick one
	AbsTol float64
	RelTol float64
}

func DefaultConfig() Config {
	return Config{
		Step:   1e-6,
		AbsTol: 1e-5,
		RelTol: 1e-4,
	}
}

// Report holds both gradients and the coordinates where they disagree.
type Report struct {
	Analytic    []float64
	Numeric     []float64
	MaxAbsError float64
	Mismatches  []int
}

func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

func (r *Report) String() string {
	return fmt.Sprintf("gradcheck: %d inputs, max abs error %.3g, %d mismatches",
		len(r.Analytic), r.MaxAbsError, len(r.Mismatches))
}

// Check runs fn at x, back-propagates, and compares every input gradient with a
// central-difference estimate.
func Check(fn Func, x []float64, cfg Config) (*Report, error) {
	if fn == nil {
		return nil, errors.New("gradcheck: nil function")
	}
	if len(x) == 0 {
		return nil, errors.New("gradcheck: no inputs")
	}

	leaves := leavesFor(x)
	out := fn(leaves)
	if out == nil {
		return nil, errors.New("gradcheck: function returned a nil value")
	}
	out.Backward()

	analytic := make([]float64, len(leaves))
	for i, l := range leaves {
		analytic[i] = l.Grad()
	}

	forward := func(p []float64) float64 {
		return fn(leavesFor(p)).Data()
	}
	numeric := fd.Gradient(nil, forward, append([]float64(nil), x...), &fd.Settings{
		Formula: fd.Central,
		Step:    cfg.Step,
	})

	report := &Report{Analytic: analytic, Numeric: numeric}
	for i := range analytic {
		a, n := analytic[i], numeric[i]
		if math.IsNaN(a) || math.IsNaN(n) {
			if !(math.IsNaN(a) && math.IsNaN(n)) {
				report.Mismatches = append(report.Mismatches, i)
			}
			continue
		}
		if d := math.Abs(a - n); d > report.MaxAbsError {
			report.MaxAbsError = d
		}
		if !scalar.EqualWithinAbsOrRel(a, n, cfg.AbsTol, cfg.RelTol) {
			report.Mismatches = append(report.Mismatches, i)
		}
	}
	return report, nil
}

// Verify is Check that turns a disagreement into an error.
func Verify(fn Func, x []float64, cfg Config) error {
	report, err := Check(fn, x, cfg)
	if err != nil {
		return err
	}
	if !report.OK() {
		i := report.Mismatches[0]
		return errors.Errorf("gradcheck: input %d: backward %g, finite difference %g (%d mismatches)",
			i, report.Analytic[i], report.Numeric[i], len(report.Mismatches))
	}
	return nil
}

func leavesFor(x []float64) []*autograd.Value {
	leaves := make([]*autograd.Value, len(x))
	for i, v := range x {
		leaves[i] = autograd.NewValue(v)
	}
	return leaves
}
