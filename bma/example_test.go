package bma_test

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibma/bma"
	"github.com/YuminosukeSato/scibma/pkg/log"
)

func ExampleBMA_Fit() {
	// y = 2*rain exactly
	const n = 50
	X := mat.NewDense(n, 3, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		t := float64(i)
		rain := math.Cos(1.3*t) + 0.5
		X.SetRow(i, []float64{math.Sin(0.37 * t), rain, t / n})
		y.SetVec(i, 2*rain)
	}

	logger, _ := log.NewTestLogger(log.LevelError)
	b, err := bma.New(y, X, []string{"wind", "rain", "trend"}, bma.WithLogger(logger))
	if err != nil {
		fmt.Println(err)
		return
	}
	if _, err := b.Fit(); err != nil {
		fmt.Println(err)
		return
	}
	res, err := b.Result()
	if err != nil {
		fmt.Println(err)
		return
	}

	for j, name := range res.Names {
		fmt.Printf("%-5s %.2f\n", name, res.Probabilities[j])
	}
	fmt.Printf("rain coefficient: %.2f\n", res.Coefficients[1])
	// Output:
	// wind  0.11
	// rain  1.00
	// trend 0.11
	// rain coefficient: 2.00
}
