package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"go-micrograd/autograd"
	"go-micrograd/nn"
)



// bench params
const (
	numIterations = 20
	shortChain    = 1_000
	mediumChain   = 10_000
	longChain     = 100_000
)


// we time the following tasks (averaged over numIterations):
// 1) building a chain of additions              - 1e3, 1e4, 1e5
// 2) backward through that chain
// 3) a wide sum feeding one node (high fan-in)
// 4) forward + backward of an MLP loss



func benchmarkChain(depth int, iterations int) (build, backward time.Duration) {
	for i := 0; i < iterations; i++ {
		start := time.Now()
		x := autograd.NewValue(rand.Float64())
		y := x
		for j := 0; j < depth; j++ {
			y = y.Mul(x).AddScalar(1).Tanh()
		}
		build += time.Since(start)

		start = time.Now()
		y.Backward()
		backward += time.Since(start)
	}
	n := time.Duration(iterations)
	return build / n, backward / n
}


func benchmarkFanIn(width int, iterations int) time.Duration {
	var total time.Duration
	for i := 0; i < iterations; i++ {
		x := autograd.NewValue(rand.Float64())
		terms := make([]*autograd.Value, width)
		for j := range terms {
			terms[j] = x.MulScalar(float64(j))
		}

		start := time.Now()
		autograd.Sum(terms...).Backward()
		total += time.Since(start)
	}
	return total / time.Duration(iterations)
}


func benchmarkMLP(nin int, nouts []int, batch int, iterations int) time.Duration {
	model, err := nn.NewMLP(nin, nouts, nn.WithInitializer(nn.NewUniformInitializer(-1, 1, 1)))
	if err != nil {
		log.Fatalf("micrograd: Error creating MLP: %v", err)
	}

	xs := make([][]float64, batch)
	ys := make([]float64, batch)
	for i := range xs {
		xs[i] = make([]float64, nin)
		for j := range xs[i] {
			xs[i][j] = rand.Float64()*2 - 1
		}
		ys[i] = float64(rand.IntN(2)*2 - 1)
	}

	var total time.Duration
	for i := 0; i < iterations; i++ {
		// begin the timer here
		start := time.Now()

		preds := make([]*autograd.Value, batch)
		for k, x := range xs {
			out, err := model.Predict(x)
			if err != nil {
				log.Fatalf("micrograd: Error in forward pass: %v", err)
			}
			preds[k] = out[0]
		}
		loss, err := nn.SumSquaredError(preds, ys)
		if err != nil {
			log.Fatalf("micrograd: Error in loss: %v", err)
		}
		model.ZeroGrad()
		loss.Backward()

		total += time.Since(start)
	}
	return total / time.Duration(iterations)
}



func main() {
	fmt.Println("--- micrograd engine benchmarks ---")
	fmt.Printf("Iterations per benchmark: %d\n\n", numIterations)

	for _, depth := range []int{shortChain, mediumChain, longChain} {
		build, backward := benchmarkChain(depth, numIterations)
		fmt.Printf("--- Chain depth: %d (%d nodes) ---\n", depth, 4*depth+1)
		fmt.Printf("Forward build: %v\n", build)
		fmt.Printf("Backward: %v\n\n", backward)
	}

	fmt.Printf("Fan-in sum (width %d): %v\n", longChain, benchmarkFanIn(longChain, numIterations))
	fmt.Printf("MLP 16-32-32-1 forward+backward (batch 32): %v\n", benchmarkMLP(16, []int{32, 32, 1}, 32, numIterations))

	fmt.Println("\n--- Benchmarks Complete ---")
}
