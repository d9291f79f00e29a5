package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 0, run([]string{"version"}, &out, &errOut))
	assert.Contains(t, out.String(), version)
}

func TestRunUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 2, run([]string{"serve"}, &out, &errOut))
	assert.Contains(t, errOut.String(), `unknown command "serve"`)
}

func TestParseTrainFlags(t *testing.T) {
	var errOut bytes.Buffer
	cfg, err := parseTrainFlags([]string{"-task", "linear", "-optim", "sgd", "-epochs", "5"}, &errOut)
	require.NoError(t, err)
	assert.Equal(t, "task=linear optim=sgd epochs=5 lr=0.1 hidden=8 seed=1", cfg.String())

	_, err = parseTrainFlags([]string{"-task", "mnist"}, &errOut)
	assert.Error(t, err)
	_, err = parseTrainFlags([]string{"-optim", "rmsprop"}, &errOut)
	assert.Error(t, err)
	_, err = parseTrainFlags([]string{"-epochs", "0"}, &errOut)
	assert.Error(t, err)

	_, err = parseLevel("verbose")
	assert.Error(t, err)
	level, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())
}

func finalLoss(t *testing.T, out string) float64 {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "final loss: "); ok {
			v, err := strconv.ParseFloat(rest, 64)
			require.NoError(t, err)
			return v
		}
	}
	t.Fatalf("no final loss in output:\n%s", out)
	return 0
}

func TestTrainXOR(t *testing.T) {
	var out, errOut bytes.Buffer
	err := train([]string{"-task", "xor", "-epochs", "1500", "-lr", "0.05", "-log-level", "error"}, &out, &errOut)
	require.NoError(t, err)
	assert.Less(t, finalLoss(t, out.String()), 0.05)
	assert.Empty(t, errOut.String())
}

func TestTrainLinear(t *testing.T) {
	var out, errOut bytes.Buffer
	err := train([]string{"-task", "linear", "-optim", "sgd", "-epochs", "300", "-lr", "0.05"}, &out, &errOut)
	require.NoError(t, err)
	assert.Less(t, finalLoss(t, out.String()), 1e-4)
	assert.Contains(t, errOut.String(), "level=INFO msg=training")
	assert.Contains(t, errOut.String(), `config="task=linear optim=sgd epochs=300`)
	assert.NotContains(t, errOut.String(), "level=DEBUG")
}

func TestTrainDebugLogsBackwardNodes(t *testing.T) {
	var out, errOut bytes.Buffer
	err := train([]string{"-task", "linear", "-epochs", "1", "-log-level", "debug"}, &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "level=DEBUG msg=backward op=mean")
	assert.Contains(t, errOut.String(), "op=matmul")
}
