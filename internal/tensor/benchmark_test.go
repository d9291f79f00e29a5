package tensor

import (
	"fmt"
	"math/rand"
	"testing"
)

func BenchmarkBufferCreation(b *testing.B) {
	shape := Shape{100, 100}
	r := rand.New(rand.NewSource(1)) //nolint:gosec // benchmark data

	b.Run("Zeros", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Zeros[float32](shape)
		}
	})

	b.Run("Randn", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Randn[float32](shape, r)
		}
	})
}

func BenchmarkElementwise(b *testing.B) {
	x := OnesLike(newBuffer[float32](Shape{256, 256}))
	row := OnesLike(newBuffer[float32](Shape{256}))

	b.Run("Add", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = x.Add(x)
		}
	})

	b.Run("AddBroadcast", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = x.Add(row)
		}
	})

	b.Run("SumTo", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = x.SumTo(Shape{256})
		}
	})
}

func BenchmarkMatMul(b *testing.B) {
	for _, n := range []int{16, 64, 256} {
		x := OnesLike(newBuffer[float64](Shape{n, n}))
		b.Run(fmt.Sprintf("%dx%d", n, n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = x.MatMul(x)
			}
		})
	}
}
