package alias

import (
	"errors"
	"math"
	"sync"

	"github.com/pyihe/randgen/random"
)

/*
	别名采样(Vose's Alias Method):
	把n个事件的概率都乘以n，概率大于1的事件把多出来的部分匀给概率小于1的事件，
	最终得到n个"桶"，每个桶最多包含两个事件：桶自身的事件(概率prob[i])和别名事件alias[i]。
	采样时先均匀选一个桶，再掷一次硬币决定取桶自身还是别名，单次采样O(1)，建表O(n)。
*/

var (
	ErrInvalidProb   = errors.New("invalid probability, must be finite and non-negative")
	ErrRepeatedEvent = errors.New("repeated event id")
	ErrEventNotFound = errors.New("event not found")
)

// Event 参与采样的事件
type Event interface {
	Id() int       // 事件ID，同一个采样器内唯一
	Prob() float64 // 事件权重，无需归一化
}

type Sampler interface {
	// Add 添加事件，任意一个事件不合法时不做任何修改
	Add(events ...Event) error

	// Remove 移除事件，任意一个事件不存在时不做任何修改
	Remove(events ...Event) error

	// Pick 采样一次，没有事件或权重之和为0时ok为false
	Pick() (ok bool, id int)

	// PickN 采样n次，返回每个事件ID被采中的次数
	PickN(n int) (ok bool, result map[int]int)
}

type Option func(*core)

// WithSource 指定随机数源
func WithSource(src random.Source) Option {
	return func(c *core) {
		if src != nil {
			c.source = src
		}
	}
}

type core struct {
	source random.Source

	mu     sync.RWMutex
	events []Event
	index  map[int]int // 事件ID -> events下标
	prob   []float64
	alias  []int
}

func New(opts ...Option) Sampler {
	c := &core{
		source: random.Default(),
		index:  make(map[int]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *core) Add(events ...Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := make(map[int]struct{}, len(events))
	for _, e := range events {
		p := e.Prob()
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return ErrInvalidProb
		}
		if _, ok := c.index[e.Id()]; ok {
			return ErrRepeatedEvent
		}
		if _, ok := added[e.Id()]; ok {
			return ErrRepeatedEvent
		}
		added[e.Id()] = struct{}{}
	}

	for _, e := range events {
		c.index[e.Id()] = len(c.events)
		c.events = append(c.events, e)
	}
	c.build()
	return nil
}

func (c *core) Remove(events ...Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := make(map[int]struct{}, len(events))
	for _, e := range events {
		if _, ok := c.index[e.Id()]; !ok {
			return ErrEventNotFound
		}
		removed[e.Id()] = struct{}{}
	}

	kept := c.events[:0]
	for _, e := range c.events {
		if _, ok := removed[e.Id()]; !ok {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(c.events); i++ {
		c.events[i] = nil
	}
	c.events = kept
	c.index = make(map[int]int, len(kept))
	for i, e := range kept {
		c.index[e.Id()] = i
	}
	c.build()
	return nil
}

// build 重建概率表和别名表，调用方需持有写锁
func (c *core) build() {
	c.prob, c.alias = nil, nil

	var total float64
	for _, e := range c.events {
		total += e.Prob()
	}
	if total <= 0 {
		return
	}

	n := len(c.events)
	c.prob = make([]float64, n)
	c.alias = make([]int, n)

	scaled := make([]float64, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, e := range c.events {
		scaled[i] = e.Prob() * float64(n) / total
		if scaled[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s, l := small[len(small)-1], large[len(large)-1]
		small, large = small[:len(small)-1], large[:len(large)-1]

		c.prob[s] = scaled[s]
		c.alias[s] = l
		scaled[l] = scaled[l] + scaled[s] - 1
		if scaled[l] < 1 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}
	// 剩余的桶只受舍入误差影响，概率直接取1
	for _, i := range large {
		c.prob[i] = 1
		c.alias[i] = i
	}
	for _, i := range small {
		c.prob[i] = 1
		c.alias[i] = i
	}
}

func (c *core) pick() int {
	n := len(c.prob)
	x := c.source.Float64() * float64(n)
	i := int(x)
	if i >= n {
		i = n - 1
	}
	// 同一个随机数的小数部分作为硬币
	if x-float64(i) < c.prob[i] {
		return c.events[i].Id()
	}
	return c.events[c.alias[i]].Id()
}

func (c *core) Pick() (ok bool, id int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.prob) == 0 {
		return
	}
	return true, c.pick()
}

func (c *core) PickN(n int) (ok bool, result map[int]int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.prob) == 0 || n <= 0 {
		return
	}
	result = make(map[int]int)
	for i := 0; i < n; i++ {
		result[c.pick()]++
	}
	return true, result
}
