package tensor

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/parallel"
)

// kernelConfig controls row-parallelism of MatMul and Transpose. Small
// buffers run sequentially; see parallel.Config.MinChunkSize.
var kernelConfig = parallel.DefaultConfig()

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Both operands must be 2-D.
func (b *Buffer[T]) MatMul(other *Buffer[T]) (*Buffer[T], error) {
	if len(b.shape) != 2 || len(other.shape) != 2 {
		return nil, errors.Wrapf(ErrShape, "matmul: only 2D buffers supported, got %dD and %dD",
			len(b.shape), len(other.shape))
	}

	m, k := b.shape[0], b.shape[1]
	kAlt, n := other.shape[0], other.shape[1]
	if k != kAlt {
		return nil, errors.Wrapf(ErrShape, "matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n)
	}

	out := newBuffer[T](Shape{m, n})
	matmulRows(out.data, b.data, other.data, m, k, n)
	return out, nil
}

// matmulRows computes C[i,j] = sum_k A[i,k] * B[k,j], splitting rows
// across workers. The i-k-j loop order keeps B accesses sequential.
func matmulRows[T Float](c, a, b []T, m, k, n int) {
	parallel.ForRange(m, kernelConfig, func(start, end int) {
		for i := start; i < end; i++ {
			row := c[i*n : (i+1)*n]
			for kIdx := 0; kIdx < k; kIdx++ {
				aik := a[i*k+kIdx]
				bRow := b[kIdx*n : (kIdx+1)*n]
				for j, v := range bRow {
					row[j] += aik * v
				}
			}
		}
	})
}
