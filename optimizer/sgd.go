package optimizer

import (
	"math"

	"github.com/pkg/errors"

	"go-micrograd/autograd"
)


// common method all optimizers must utilize
type Optimizer interface {
	Step() error
	ZeroGrad()
	Parameters() []*autograd.Value // return the parameters managed by the optimizer
}



// SGD : Stochastic Gradient Descent optimizer.
type SGD struct {
	learningRate float64
	parameters   []*autograd.Value
}



// creates a new SGD over the given parameters (usually model.Parameters()) and a learning rate.
func NewSGD(parameters []*autograd.Value, learningRate float64) (*SGD, error) {
	if err := validate(parameters, learningRate); err != nil {
		return nil, err
	}
	return &SGD{
		learningRate: learningRate,
		parameters:   parameters,
	}, nil
}


func validate(parameters []*autograd.Value, learningRate float64) error {
	if learningRate <= 0 || math.IsNaN(learningRate) {
		return errors.Errorf("optimizer: learning rate must be positive, got %f", learningRate)
	}
	if len(parameters) == 0 {
		return errors.New("optimizer: created with empty parameters list")
	}
	for i, p := range parameters {
		if p == nil {
			return errors.Errorf("optimizer: parameter %d is nil", i)
		}
	}
	return nil
}



// step updates the parameters based on their gradients using the SGD rule:
// parameter = parameter - learning_rate * gradient
// a NaN or infinite gradient stops the step before any parameter is touched.
func (s *SGD) Step() error {
	if err := checkGradients(s.parameters); err != nil {
		return err
	}
	for _, p := range s.parameters {
		p.SetData(p.Data() - s.learningRate*p.Grad())
	}
	return nil
}


func checkGradients(parameters []*autograd.Value) error {
	for i, p := range parameters {
		if g := p.Grad(); math.IsNaN(g) || math.IsInf(g, 0) {
			return errors.Errorf("optimizer: parameter %d has non-finite gradient %v", i, g)
		}
	}
	return nil
}



// sets all params managed by this to zero
func (s *SGD) ZeroGrad() {
	autograd.ZeroGrad(s.parameters...)
}

func (s *SGD) LearningRate() float64 { return s.learningRate }

// returns the slice of params managed by this optimizer
func (s *SGD) Parameters() []*autograd.Value {
	return s.parameters
}
