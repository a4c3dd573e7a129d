package main

import (
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go-micrograd/autograd"
	"go-micrograd/nn"
	"go-micrograd/optimizer"
	"go-micrograd/utility"
)


// tiny binary dataset: 4 samples of dimension 3
var (
	samples = [][]float64{
		{2.0, 3.0, -1.0},
		{3.0, -1.0, 0.5},
		{0.5, 1.0, 1.0},
		{1.0, 1.0, -1.0},
	}
	targets = []float64{1.0, -1.0, -1.0, 1.0}
)


type trainConfig struct {
	steps        int
	learningRate float64
	seed         uint64
	optimizer    string
	dashboard    bool
	logEvery     int
}



func main() {
	cfg := trainConfig{}

	cmd := &cobra.Command{
		Use:   "mlp_trainer",
		Short: "train a 3-4-4-1 tanh MLP on four samples with sum of squared errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return train(cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.steps, "steps", 100, "number of optimisation steps")
	cmd.Flags().Float64Var(&cfg.learningRate, "lr", 0.01, "learning rate")
	cmd.Flags().Uint64Var(&cfg.seed, "seed", uint64(time.Now().UnixNano()), "weight init seed")
	cmd.Flags().StringVar(&cfg.optimizer, "optimizer", "sgd", "sgd or adam")
	cmd.Flags().BoolVar(&cfg.dashboard, "dashboard", false, "show the terminal dashboard")
	cmd.Flags().IntVar(&cfg.logEvery, "log-every", 10, "log the loss every n steps")

	if err := cmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}



func newOptimizer(cfg trainConfig, params []*autograd.Value) (optimizer.Optimizer, error) {
	switch cfg.optimizer {
	case "sgd":
		return optimizer.NewSGD(params, cfg.learningRate)
	case "adam":
		ac := optimizer.DefaultAdamConfig()
		ac.LearningRate = cfg.learningRate
		return optimizer.NewAdam(params, ac)
	default:
		return nil, errors.Errorf("unknown optimizer %q", cfg.optimizer)
	}
}


// forward pass over the whole dataset
func forward(model *nn.MLP) ([]*autograd.Value, *autograd.Value, error) {
	preds := make([]*autograd.Value, len(samples))
	for i, x := range samples {
		out, err := model.Predict(x)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "sample %d", i)
		}
		preds[i] = out[0]
	}
	loss, err := nn.SumSquaredError(preds, targets)
	if err != nil {
		return nil, nil, err
	}
	return preds, loss, nil
}



func train(cfg trainConfig) error {
	model, err := nn.NewMLP(3, []int{4, 4, 1}, nn.WithInitializer(nn.NewUniformInitializer(-1, 1, cfg.seed)))
	if err != nil {
		return errors.Wrap(err, "failed to build model")
	}
	opt, err := newOptimizer(cfg, model.Parameters())
	if err != nil {
		return errors.Wrap(err, "failed to build optimizer")
	}
	inspector := utility.NewModelInspector(model)

	var dash *utility.TrainingDashboard
	if cfg.dashboard {
		dash, err = utility.NewTrainingDashboard(cfg.learningRate, len(samples), cfg.steps)
		if err != nil {
			return err
		}
		defer dash.Close()
	} else {
		inspector.Summary()
	}

	start := time.Now()
	for step := 1; step <= cfg.steps; step++ {
		_, loss, err := forward(model)
		if err != nil {
			return err
		}

		// gradients of the previous step must not leak into this one
		opt.ZeroGrad()
		loss.Backward()
		gradNorm := inspector.GradNorm()

		if err := opt.Step(); err != nil {
			return errors.Wrapf(err, "step %d", step)
		}

		if dash != nil {
			dash.Record(loss.Data(), gradNorm)
			dash.UpdateStats(step, cfg.steps, loss.Data(), start)
		} else if cfg.logEvery > 0 && (step%cfg.logEvery == 0 || step == 1) {
			log.Printf("step %3d  loss %.6f  grad norm %.6f", step, loss.Data(), gradNorm)
		}
	}

	preds, loss, err := forward(model)
	if err != nil {
		return err
	}

	if dash != nil {
		dash.Log(fmt.Sprintf("done in %v, final loss %.6f. press q to quit", time.Since(start).Round(time.Millisecond), loss.Data()))
		dash.Loop()
		return nil
	}

	fmt.Printf("\nfinal loss: %.6f (%v)\n", loss.Data(), time.Since(start).Round(time.Millisecond))
	for i, p := range preds {
		fmt.Printf("sample %d: target %+.1f  prediction %+.4f\n", i, targets[i], p.Data())
	}
	return nil
}
