package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createBenchmarkData はベンチマーク用のデータを生成する（先頭列は定数項）
func createBenchmarkData(rows, cols int) (*mat.Dense, *mat.VecDense) {
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		X.Set(i, 0, 1)
		sum := 1.0
		for j := 1; j < cols; j++ {
			v := rng.Float64()*2.0 - 1.0
			X.Set(i, j, v)
			sum += v * float64(j) * 0.5
		}
		sum += (rng.Float64() - 0.5) * 0.1
		y.SetVec(i, sum)
	}
	return X, y
}

func BenchmarkOLSFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Small_100x10", 100, 10},
		{"Medium_1000x10", 1000, 10}, // 並列処理の閾値
		{"Large_5000x20", 5000, 20},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)
			ols := NewOLS()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ols.FitLinear(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
