package optimizer

import (
	"math"

	"go-micrograd/autograd"
)


type AdamConfig struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64
}

func DefaultAdamConfig() AdamConfig {
	return AdamConfig{
		LearningRate: 0.01,
		Beta1:        0.85,
		Beta2:        0.99,
		Epsilon:      1e-8,
	}
}



// Adam keeps per-parameter first and second moment estimates.
type Adam struct {
	config     AdamConfig
	parameters []*autograd.Value
	m, v       []float64
	steps      int
}

func NewAdam(parameters []*autograd.Value, config AdamConfig) (*Adam, error) {
	if err := validate(parameters, config.LearningRate); err != nil {
		return nil, err
	}
	return &Adam{
		config:     config,
		parameters: parameters,
		m:          make([]float64, len(parameters)),
		v:          make([]float64, len(parameters)),
	}, nil
}



func (a *Adam) Step() error {
	if err := checkGradients(a.parameters); err != nil {
		return err
	}
	a.steps++

	c := a.config
	// bias corrections for the moving averages
	c1 := 1 - math.Pow(c.Beta1, float64(a.steps))
	c2 := 1 - math.Pow(c.Beta2, float64(a.steps))

	for i, p := range a.parameters {
		g := p.Grad()
		a.m[i] = c.Beta1*a.m[i] + (1-c.Beta1)*g
		a.v[i] = c.Beta2*a.v[i] + (1-c.Beta2)*g*g

		mHat := a.m[i] / c1
		vHat := a.v[i] / c2
		p.SetData(p.Data() - c.LearningRate*mHat/(math.Sqrt(vHat)+c.Epsilon))
	}
	return nil
}

func (a *Adam) ZeroGrad() { autograd.ZeroGrad(a.parameters...) }

func (a *Adam) Parameters() []*autograd.Value { return a.parameters }

func (a *Adam) Steps() int { return a.steps }
