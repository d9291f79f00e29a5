package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/autodiff"
	"github.com/born-ml/borngrad/nn"
	"github.com/born-ml/borngrad/optim"
)

type trainConfig struct {
	task     string
	epochs   int
	lr       float64
	optim    string
	hidden   int
	seed     int64
	logLevel string
}

func parseTrainFlags(args []string, output io.Writer) (trainConfig, error) {
	var cfg trainConfig
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.task, "task", "xor", "dataset: xor or linear")
	fs.IntVar(&cfg.epochs, "epochs", 2000, "number of full-batch epochs")
	fs.Float64Var(&cfg.lr, "lr", 0.1, "learning rate")
	fs.StringVar(&cfg.optim, "optim", "adam", "optimizer: sgd or adam")
	fs.IntVar(&cfg.hidden, "hidden", 8, "hidden layer width")
	fs.Int64Var(&cfg.seed, "seed", 1, "random seed for weight initialization")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch {
	case cfg.task != "xor" && cfg.task != "linear":
		return cfg, errors.Errorf("unknown task %q", cfg.task)
	case cfg.optim != "sgd" && cfg.optim != "adam":
		return cfg, errors.Errorf("unknown optimizer %q", cfg.optim)
	case cfg.epochs <= 0:
		return cfg, errors.Errorf("epochs must be positive, got %d", cfg.epochs)
	case cfg.hidden <= 0:
		return cfg, errors.Errorf("hidden must be positive, got %d", cfg.hidden)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, errors.Wrapf(err, "log level %q", s)
	}
	return level, nil
}

// dataset returns inputs [n, 2] and targets [n, 1].
func dataset(task string) (x, y [][]float64) {
	if task == "xor" {
		return [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			[][]float64{{0}, {1}, {1}, {0}}
	}
	// y = 0.5*a - 1.5*b + 0.25
	for _, a := range []float64{-1, -0.5, 0, 0.5, 1} {
		for _, b := range []float64{-1, 0, 1} {
			x = append(x, []float64{a, b})
			y = append(y, []float64{0.5*a - 1.5*b + 0.25})
		}
	}
	return x, y
}

func buildModel(cfg trainConfig) (*nn.Sequential[float64], error) {
	r := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // reproducible initialization

	if cfg.task == "linear" {
		l, err := nn.NewLinear[float64](2, 1, r)
		if err != nil {
			return nil, err
		}
		return nn.NewSequential[float64](l), nil
	}

	l1, err := nn.NewLinear[float64](2, cfg.hidden, r)
	if err != nil {
		return nil, err
	}
	l2, err := nn.NewLinear[float64](cfg.hidden, 1, r)
	if err != nil {
		return nil, err
	}
	return nn.NewSequential[float64](l1, nn.NewTanh[float64](), l2, nn.NewSigmoid[float64]()), nil
}

func train(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseTrainFlags(args, stderr)
	if err != nil {
		return err
	}
	level, err := parseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	model, err := buildModel(cfg)
	if err != nil {
		return err
	}

	var optimizer optim.Optimizer
	if cfg.optim == "sgd" {
		optimizer = optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: cfg.lr, Momentum: 0.9})
	} else {
		optimizer = optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.lr})
	}

	xs, ys := dataset(cfg.task)
	mse := nn.NewMSELoss[float64]()
	logger.Info("training", "config", cfg.String())

	var loss float64
	for epoch := 1; epoch <= cfg.epochs; epoch++ {
		if loss, err = step(model, optimizer, mse, xs, ys, logger); err != nil {
			return errors.Wrapf(err, "epoch %d", epoch)
		}
		if epoch == 1 || epoch%(max(cfg.epochs/10, 1)) == 0 {
			logger.Info("epoch", "n", epoch, "loss", loss)
		}
	}

	preds, err := predict(model, xs)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "final loss: %.6f\n", loss)
	for i, x := range xs {
		fmt.Fprintf(stdout, "%v -> %.4f (target %.4f)\n", x, preds[i], ys[i][0])
	}
	return nil
}

// step runs one full-batch forward, backward and optimizer update and
// returns the loss. The graph is released before returning.
func step(model nn.Module[float64], optimizer optim.Optimizer, mse *nn.MSELoss[float64], xs, ys [][]float64, logger *slog.Logger) (float64, error) {
	x, err := autodiff.FromNested(xs)
	if err != nil {
		return 0, err
	}
	y, err := autodiff.FromNested(ys)
	if err != nil {
		return 0, err
	}

	out, err := model.Forward(x.Shared())
	if err != nil {
		return 0, err
	}
	defer out.Release()
	loss, err := mse.Forward(out, y.Shared())
	if err != nil {
		return 0, err
	}
	defer loss.Release()

	if err := optimizer.ZeroGrad(); err != nil {
		return 0, err
	}
	cfg := autodiff.DefaultBackwardConfig()
	cfg.Logger = logger
	if err := loss.BackwardWithConfig(cfg); err != nil {
		return 0, err
	}
	if err := optimizer.Step(); err != nil {
		return 0, err
	}
	return loss.Item()
}

func predict(model nn.Module[float64], xs [][]float64) ([]float64, error) {
	x, err := autodiff.FromNested(xs)
	if err != nil {
		return nil, err
	}
	out, err := model.Forward(x.Shared())
	if err != nil {
		return nil, err
	}
	defer out.Release()
	data, err := out.Data()
	if err != nil {
		return nil, err
	}
	return data.Data(), nil
}

func (c trainConfig) String() string {
	return fmt.Sprintf("task=%s optim=%s epochs=%d lr=%g hidden=%d seed=%d", c.task, c.optim, c.epochs, c.lr, c.hidden, c.seed)
}
