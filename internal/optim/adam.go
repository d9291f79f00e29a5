package optim

import (
	"math"

	"github.com/born-ml/borngrad/internal/nn"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam[T tensor.Float] struct {
	params []*nn.Parameter[T]
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                                    // Timestep for bias correction
	m      map[*nn.Parameter[T]]*tensor.Buffer[T] // First moment estimates
	v      map[*nn.Parameter[T]]*tensor.Buffer[T] // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset hyperparameters with
// their defaults.
func NewAdam[T tensor.Float](params []*nn.Parameter[T], config AdamConfig) *Adam[T] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[T]{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*nn.Parameter[T]]*tensor.Buffer[T]),
		v:      make(map[*nn.Parameter[T]]*tensor.Buffer[T]),
	}
}

// Step performs a single optimization step using Adam algorithm.
func (a *Adam[T]) Step() error {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for _, param := range a.params {
		m, err := a.moment(a.m, param)
		if err != nil {
			return err
		}
		v, err := a.moment(a.v, param)
		if err != nil {
			return err
		}
		mData, vData := m.Data(), v.Data()

		err = update(param, func(data, grad []T) {
			for i := range data {
				g := float64(grad[i])
				mi := a.beta1*float64(mData[i]) + (1-a.beta1)*g
				vi := a.beta2*float64(vData[i]) + (1-a.beta2)*g*g
				mData[i], vData[i] = T(mi), T(vi)

				mHat := mi / biasCorrection1
				vHat := vi / biasCorrection2
				data[i] -= T(a.lr * mHat / (math.Sqrt(vHat) + a.eps))
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Adam[T]) moment(moments map[*nn.Parameter[T]]*tensor.Buffer[T], param *nn.Parameter[T]) (*tensor.Buffer[T], error) {
	if b, ok := moments[param]; ok {
		return b, nil
	}
	b, err := tensor.Zeros[T](param.Shape())
	if err != nil {
		return nil, err
	}
	moments[param] = b
	return b, nil
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam[T]) ZeroGrad() error {
	return zeroGrad(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam[T]) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam[T]) SetLR(lr float64) {
	a.lr = lr
}

// GetTimestep returns the number of steps taken.
func (a *Adam[T]) GetTimestep() int {
	return a.t
}
