package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)


// Initializer draws the starting value of a weight or bias.
type Initializer interface {
	Sample() float64
}


// uniform in [min, max]; the default is [-1, 1] like the classic micrograd MLP.
type UniformInitializer struct {
	dist distuv.Uniform
}

func NewUniformInitializer(min, max float64, seed uint64) *UniformInitializer {
	return &UniformInitializer{dist: distuv.Uniform{
		Min: min,
		Max: max,
		Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}}
}

func (u *UniformInitializer) Sample() float64 { return u.dist.Rand() }


// gaussian with a small std, useful for deeper nets where [-1, 1] saturates tanh.
type NormalInitializer struct {
	dist distuv.Normal
}

func NewNormalInitializer(mean, std float64, seed uint64) *NormalInitializer {
	return &NormalInitializer{dist: distuv.Normal{
		Mu:    mean,
		Sigma: std,
		Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}}
}

func (n *NormalInitializer) Sample() float64 { return n.dist.Rand() }
