package random

import (
	"math/rand"
	"sync"
	"time"

	"github.com/spaolacci/murmur3"
)

// Source 均匀随机数源
type Source interface {
	// Float64 返回[0, 1)内均匀分布的随机数
	Float64() float64
}

// Func 将普通函数适配为Source
type Func func() float64

// Float64 返回f()的结果
func (f Func) Float64() float64 {
	return f()
}

var (
	defaultSource = &lockedSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
)

// Default 返回进程级共享的随机数源，可并发使用
func Default() Source {
	return defaultSource
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() (v float64) {
	s.mu.Lock()
	v = s.r.Float64()
	s.mu.Unlock()
	return
}

// NewSeeded 返回以seed为种子的确定性随机数源
// 返回值不能并发使用，如需并发请调用方自行加锁
func NewSeeded(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// SeedFromString 根据任意字符串生成种子，相同的字符串总是得到相同的种子
func SeedFromString(s string) int64 {
	return int64(murmur3.Sum64([]byte(s)))
}

// Sequence 按顺序循环返回给定的值
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence 新建一个循环序列随机数源，values为空时总是返回0
func NewSequence(values ...float64) *Sequence {
	vs := make([]float64, len(values))
	copy(vs, values)
	return &Sequence{values: vs}
}

func (s *Sequence) Float64() (v float64) {
	if len(s.values) == 0 {
		return 0
	}
	v = s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return
}
