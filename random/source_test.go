package random

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeeded(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 100; i++ {
		x := a.Float64()
		require.Equal(t, x, b.Float64())
		require.GreaterOrEqual(t, x, 0.0)
		require.Less(t, x, 1.0)
	}
}

func TestSeedFromString(t *testing.T) {
	assert.Equal(t, SeedFromString("randgen"), SeedFromString("randgen"))
	assert.NotEqual(t, SeedFromString("randgen"), SeedFromString("randgen2"))
}

func TestSequence(t *testing.T) {
	s := NewSequence(0.1, 0.2, 0.3)
	want := []float64{0.1, 0.2, 0.3, 0.1, 0.2}
	for _, w := range want {
		assert.Equal(t, w, s.Float64())
	}

	assert.Equal(t, 0.0, NewSequence().Float64())
}

func TestFunc(t *testing.T) {
	var src Source = Func(func() float64 { return 0.25 })
	assert.Equal(t, 0.25, src.Float64())
}

func TestDefault_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				x := Default().Float64()
				if x < 0 || x >= 1 {
					t.Errorf("out of range: %v", x)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkDefault(b *testing.B) {
	src := Default()
	for i := 0; i < b.N; i++ {
		src.Float64()
	}
}
