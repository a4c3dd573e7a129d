package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go-micrograd/autograd"
	"go-micrograd/gradcheck"
	"go-micrograd/utility"
)

func main() {
	root := &cobra.Command{
		Use:   "micrograd",
		Short: "scalar reverse-mode autodiff playground",
	}
	root.AddCommand(demoCmd(), checkCmd(), graphCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}



// -------------------- demo -------------------- //

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "build a few expressions and print their gradients",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("--> addition")
			x := autograd.NewValue(1.0)
			y := autograd.NewValue(2.0)
			z := x.Add(y)
			z.Backward()
			fmt.Printf("z = x + y: %v\n", z)
			fmt.Printf("x: %v\ny: %v\n\n", x, y)

			fmt.Println("--> diamond: y = x*x + x")
			d := autograd.NewValue(3.0)
			out := d.Mul(d).Add(d)
			out.Backward()
			fmt.Printf("y: %v\nx: %v (dy/dx = 2x + 1)\n\n", out, d)

			fmt.Println("--> micrograd reference expression")
			a := autograd.NewValue(-4.0)
			b := autograd.NewValue(2.0)
			g := reference([]*autograd.Value{a, b})
			g.Backward()
			fmt.Printf("g: %.4f\n", g.Data())
			fmt.Printf("dg/da: %.4f\n", a.Grad())
			fmt.Printf("dg/db: %.4f\n", b.Grad())
		},
	}
}


// reference builds the classic micrograd sanity-check expression from a and b.
func reference(in []*autograd.Value) *autograd.Value {
	a, b := in[0], in[1]
	c := a.Add(b)
	d := a.Mul(b).Add(b.Pow(3))
	c = autograd.Add(c.Add(c), 1.0)
	c = c.AddScalar(1).Add(c).Add(a.Neg())
	d = d.Add(autograd.Mul(d, 2.0)).Add(b.Add(a).ReLU())
	d = d.Add(autograd.Mul(3.0, d)).Add(b.Sub(a).ReLU())
	e := c.Sub(d)
	f := e.Pow(2)
	g := autograd.Div(f, 2.0)
	return g.Add(autograd.Div(10.0, f))
}



// -------------------- check -------------------- //

func checkCmd() *cobra.Command {
	cfg := gradcheck.DefaultConfig()
	var a, b float64

	cmd := &cobra.Command{
		Use:   "check",
		Short: "compare backward gradients of the reference expression with finite differences",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := gradcheck.Check(reference, []float64{a, b}, cfg)
			if err != nil {
				return err
			}
			fmt.Println(report)
			for i := range report.Analytic {
				fmt.Printf("input %d: backward %.6f, numeric %.6f\n", i, report.Analytic[i], report.Numeric[i])
			}
			if !report.OK() {
				return errors.Errorf("gradients disagree at inputs %v", report.Mismatches)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&a, "a", -4.0, "value of a")
	cmd.Flags().Float64Var(&b, "b", 2.0, "value of b")
	cmd.Flags().Float64Var(&cfg.Step, "step", cfg.Step, "finite-difference step")
	cmd.Flags().Float64Var(&cfg.AbsTol, "abs-tol", cfg.AbsTol, "absolute tolerance")
	cmd.Flags().Float64Var(&cfg.RelTol, "rel-tol", cfg.RelTol, "relative tolerance")
	return cmd
}



// -------------------- graph -------------------- //

func graphCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "write the DOT graph of y = x*x + x after backward",
		RunE: func(cmd *cobra.Command, args []string) error {
			x := autograd.NewValue(3.0)
			y := x.Mul(x).Add(x)
			y.Backward()

			if outPath == "" {
				return utility.WriteDot(os.Stdout, y)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return errors.Wrap(err, "create dot file")
			}
			defer f.Close()
			if err := utility.WriteDot(f, y); err != nil {
				return err
			}
			log.Printf("graph written to %s", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
