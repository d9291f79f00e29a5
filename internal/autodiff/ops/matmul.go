package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/tensor"
)

// MatMulBackward computes operand gradients for C = A @ B.
//
// For A [M, K] and B [K, N]:
//   - grad_A = grad_C @ B^T   [M, N] @ [N, K] -> [M, K]
//   - grad_B = A^T @ grad_C   [K, M] @ [M, N] -> [K, N]
func MatMulBackward[T tensor.Float](grad, a, b *tensor.Buffer[T]) (ga, gb *tensor.Buffer[T], err error) {
	bT, err := b.Transpose()
	if err != nil {
		return nil, nil, errors.Wrap(err, "matmul backward")
	}
	if ga, err = grad.MatMul(bT); err != nil {
		return nil, nil, errors.Wrap(err, "matmul backward")
	}

	aT, err := a.Transpose()
	if err != nil {
		return nil, nil, errors.Wrap(err, "matmul backward")
	}
	if gb, err = aT.MatMul(grad); err != nil {
		return nil, nil, errors.Wrap(err, "matmul backward")
	}
	return ga, gb, nil
}
