// Package main provides the Aria CLI.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/junsu0302/Aria/autodiff"
	"github.com/junsu0302/Aria/nn"
	"github.com/junsu0302/Aria/optim"
	"github.com/junsu0302/Aria/tensor"
)

const version = "v0.1.0-dev"

func usage() {
	fmt.Println("Aria - Define-by-Run Autodiff for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version      Show version")
	fmt.Println("  rosenbrock   Minimize the Rosenbrock function by gradient descent")
	fmt.Println("  train        Fit a small MLP to noisy sin data")
	fmt.Println("  dot          Print a sample computation graph in DOT format")
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}

	switch args[0] {
	case "version":
		fmt.Printf("Aria %s\n", version)
	case "rosenbrock":
		runRosenbrock()
	case "train":
		runTrain()
	case "dot":
		runDot()
	default:
		usage()
		os.Exit(1)
	}
}

func runRosenbrock() {
	x := autodiff.NewVariable(tensor.Scalar(0))
	y := autodiff.NewVariable(tensor.Scalar(2))
	const lr, iters = 0.001, 10000

	bar := progressbar.Default(iters, "rosenbrock")
	for i := 0; i < iters; i++ {
		z := autodiff.Rosenbrock(x, y)
		x.Cleargrad()
		y.Cleargrad()
		z.Backward()

		x.SetData(tensor.Sub(x.Data(), tensor.Scale(x.Grad().Data(), lr)))
		y.SetData(tensor.Sub(y.Data(), tensor.Scale(y.Grad().Data(), lr)))
		bar.Add(1)
	}
	fmt.Printf("x=%.6f y=%.6f\n", x.Data().Item(), y.Data().Item())
}

func runTrain() {
	xdata := tensor.Rand(tensor.Shape{100, 1})
	ydata := tensor.Zeros(tensor.Shape{100, 1})
	for i := range ydata.Data {
		ydata.Data[i] = math.Sin(2*math.Pi*xdata.Data[i]) + tensor.Randn(tensor.Shape{1}).Data[0]*0.1
	}
	x := autodiff.NewVariable(xdata)
	y := autodiff.NewVariable(ydata)

	model := nn.NewMLP([]int{10, 1}, nil)
	opt := optim.NewAdam(model)

	const iters = 10000
	bar := progressbar.Default(iters, "train")
	var loss *autodiff.Variable
	for i := 0; i < iters; i++ {
		pred := model.Forward(x)
		loss = autodiff.MeanSquaredError(pred, y)

		nn.Cleargrads(model)
		loss.Backward()
		opt.Update()
		bar.Add(1)

		if (i+1)%1000 == 0 {
			klog.V(1).Infof("iter %d loss %.6f", i+1, loss.Data().Item())
		}
	}
	fmt.Printf("final loss: %.6f\n", loss.Data().Item())
}

func runDot() {
	x := autodiff.NewVariable(tensor.Scalar(1))
	x.Name = "x"
	y := autodiff.NewVariable(tensor.Scalar(1))
	y.Name = "y"
	z := autodiff.Rosenbrock(x, y)
	z.Name = "z"
	fmt.Println(autodiff.DotGraph(z, true))
}
