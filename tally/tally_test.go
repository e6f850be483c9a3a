package tally

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyihe/randgen/random"
	"github.com/pyihe/randgen/weighted"
)

type cycle struct {
	values []int
	pos    int
}

func (c *cycle) Next() int {
	v := c.values[c.pos%len(c.values)]
	c.pos++
	return v
}

type broken struct{}

func (broken) Next() int {
	panic("broken drawer")
}

func TestRun(t *testing.T) {
	r, err := Run[int](&cycle{values: []int{0, 1, 1, 1}}, []int{-1, 0, 1}, 8)
	require.NoError(t, err)

	assert.Equal(t, 8, r.Total)
	assert.Equal(t, map[int]int{-1: 0, 0: 2, 1: 6}, r.Counts)
	assert.Equal(t, 0.0, r.Estimate(-1))
	assert.Equal(t, 0.25, r.Estimate(0))
	assert.Equal(t, 0.75, r.Estimate(1))
}

func TestRun_Zero(t *testing.T) {
	r, err := Run[int](broken{}, []int{1, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Estimate(1))
}

func TestRun_Errors(t *testing.T) {
	_, err := Run[int](&cycle{values: []int{1}}, []int{1}, -1)
	assert.ErrorIs(t, err, ErrNegativeCount)

	_, err = Run[int](broken{}, []int{1}, 3)
	assert.ErrorContains(t, err, "broken drawer")
}

func TestRun_WeightedSampler(t *testing.T) {
	outcomes := []int{-1, 0, 1, 2, 3}
	probabilities := []float64{0.01, 0.3, 0.58, 0.1, 0.01}
	s, err := weighted.New(outcomes, probabilities, weighted.WithSource(random.NewSeeded(99)))
	require.NoError(t, err)

	r, err := Run[int](s, outcomes, 100000)
	require.NoError(t, err)

	var total int
	for i, o := range outcomes {
		total += r.Counts[o]
		assert.InDelta(t, probabilities[i], r.Estimate(o), 0.02)
	}
	assert.Equal(t, 100000, total)
}

func TestReport_WriteTo(t *testing.T) {
	r, err := Run[int](&cycle{values: []int{0, 1, 1, 1}}, []int{-1, 0, 1}, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)

	want := `==========================
Total count = 4
==========================
-1: 0 times
0: 1 times
1: 3 times
==========================
* probability estimates  *
==========================
P(x = -1) = 0
P(x = 0) = 0.25
P(x = 1) = 0.75
`
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
}

func TestReport_WriteTo_Precision(t *testing.T) {
	r, err := Run[int](&cycle{values: []int{0, 1, 1}}, []int{0, 1}, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "P(x = 0) = 0.3333333333333333\n")
	assert.Contains(t, buf.String(), "P(x = 1) = 0.6666666666666666\n")

	r.Precision = 2
	buf.Reset()
	_, err = r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "P(x = 0) = 0.33\n")
	assert.Contains(t, buf.String(), "P(x = 1) = 0.67\n")
}
