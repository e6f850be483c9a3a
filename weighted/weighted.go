// Package weighted 基于累积分布函数的逆变换采样
package weighted

import (
	"math"

	gomath "github.com/pyihe/randgen/math"
	"github.com/pyihe/randgen/random"
)

// DefaultTolerance 概率之和与1之间允许的默认误差
const DefaultTolerance = 1e-9

type Option func(*options)

type options struct {
	source    random.Source
	tolerance float64
}

// WithSource 指定随机数源，默认使用random.Default()
func WithSource(src random.Source) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}

// WithTolerance 指定概率之和允许的误差，非正数时使用DefaultTolerance
func WithTolerance(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.tolerance = eps
		}
	}
}

// Sampler 按照给定的离散概率分布返回结果
// Sampler构造后不可变，是否可以并发调用Next取决于随机数源是否并发安全
type Sampler[T comparable] struct {
	source        random.Source
	outcomes      []T
	probabilities []float64
	cumulative    []float64
}

// New 新建采样器，outcomes与probabilities按下标一一对应
func New[T comparable](outcomes []T, probabilities []float64, opts ...Option) (*Sampler[T], error) {
	o := &options{
		source:    random.Default(),
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(o)
	}

	if len(outcomes) != len(probabilities) {
		return nil, invalid(-1, "%d outcomes but %d probabilities", len(outcomes), len(probabilities))
	}
	if len(outcomes) == 0 {
		return nil, invalid(-1, "no outcomes")
	}

	seen := make(map[T]struct{}, len(outcomes))
	for i, v := range outcomes {
		if _, ok := seen[v]; ok {
			return nil, invalid(i, "duplicate outcome %v", v)
		}
		seen[v] = struct{}{}
	}

	last := -1
	for i, p := range probabilities {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
			return nil, invalid(i, "probability %v out of [0, 1]", p)
		}
		if p > 0 {
			last = i
		}
	}
	if sum := gomath.Sum(probabilities); !gomath.AlmostEqual(sum, 1, o.tolerance) {
		return nil, invalid(-1, "probabilities sum to %v", sum)
	}

	s := &Sampler[T]{
		source:        o.source,
		outcomes:      make([]T, len(outcomes)),
		probabilities: make([]float64, len(probabilities)),
		cumulative:    make([]float64, len(probabilities)),
	}
	copy(s.outcomes, outcomes)
	copy(s.probabilities, probabilities)

	var sum float64
	for i, p := range s.probabilities {
		sum += p
		// 概率之和允许略大于1，中间的累积值也不能超过1
		s.cumulative[i] = math.Min(sum, 1)
	}
	// 累加可能略小于1，从最后一个非零概率开始强制为1，保证任意x∈[0,1]都能命中
	for i := last; i < len(s.cumulative); i++ {
		s.cumulative[i] = 1
	}
	return s, nil
}

// Next 从随机数源取x∈[0,1)，返回对应的结果
// 随机数源返回[0,1]以外的值时panic(*ConsistencyError)
func (s *Sampler[T]) Next() T {
	v, err := s.Sample(s.source.Float64())
	if err != nil {
		panic(err)
	}
	return v
}

// Sample 返回第一个累积概率不小于x且概率非零的结果
func (s *Sampler[T]) Sample(x float64) (v T, err error) {
	if math.IsNaN(x) || x < 0 || x > 1 {
		return v, &ConsistencyError{X: x}
	}
	for i, c := range s.cumulative {
		if x <= c && s.probabilities[i] > 0 {
			return s.outcomes[i], nil
		}
	}
	return v, &ConsistencyError{X: x}
}

// Len 返回结果的个数
func (s *Sampler[T]) Len() int {
	return len(s.outcomes)
}

// Outcomes 返回结果集合的副本
func (s *Sampler[T]) Outcomes() []T {
	vs := make([]T, len(s.outcomes))
	copy(vs, s.outcomes)
	return vs
}

// Probabilities 返回概率表的副本
func (s *Sampler[T]) Probabilities() []float64 {
	ps := make([]float64, len(s.probabilities))
	copy(ps, s.probabilities)
	return ps
}

// Cumulative 返回累积分布的副本
func (s *Sampler[T]) Cumulative() []float64 {
	cs := make([]float64, len(s.cumulative))
	copy(cs, s.cumulative)
	return cs
}
