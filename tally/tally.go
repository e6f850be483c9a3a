// Package tally 多次采样并统计每个结果出现的次数与估计概率
package tally

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pyihe/randgen/internal"
	gomath "github.com/pyihe/randgen/math"
)

const (
	separator = "=========================="

	// FullPrecision 估计概率按float64完整精度输出
	FullPrecision = -1
)

var ErrNegativeCount = errors.New("number of draws must not be negative")

// Drawer 每次调用返回一个结果
type Drawer[T comparable] interface {
	Next() T
}

// Report 采样统计结果
type Report[T comparable] struct {
	Total     int
	Outcomes  []T       // 输出顺序
	Counts    map[T]int // 每个结果出现的次数
	Precision int       // 估计概率输出时保留的小数位数，FullPrecision表示不舍入
}

// Run 调用d.Next() n次并统计结果，d.Next()发生panic时返回错误
func Run[T comparable](d Drawer[T], outcomes []T, n int) (*Report[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	r := &Report[T]{
		Total:     n,
		Outcomes:  make([]T, len(outcomes)),
		Counts:    make(map[T]int, len(outcomes)),
		Precision: FullPrecision,
	}
	copy(r.Outcomes, outcomes)
	for _, o := range outcomes {
		r.Counts[o] = 0
	}

	err := internal.Recover(func() {
		for i := 0; i < n; i++ {
			r.Counts[d.Next()]++
		}
	})
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	return r, nil
}

// Estimate 返回o的估计概率count/N，N为0时返回0
func (r *Report[T]) Estimate(o T) float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Counts[o]) / float64(r.Total)
}

// WriteTo 按固定格式输出统计结果
func (r *Report[T]) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)

	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "Total count = %d\n", r.Total)
	fmt.Fprintln(bw, separator)
	for _, o := range r.Outcomes {
		fmt.Fprintf(bw, "%v: %d times\n", o, r.Counts[o])
	}

	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw, "* probability estimates  *")
	fmt.Fprintln(bw, separator)
	for _, o := range r.Outcomes {
		p := r.Estimate(o)
		if r.Precision >= 0 {
			p = gomath.Round(p, r.Precision)
		}
		fmt.Fprintf(bw, "P(x = %v) = %s\n", o, strconv.FormatFloat(p, 'f', -1, 64))
	}

	err := bw.Flush()
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
