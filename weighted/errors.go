package weighted

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDistribution = errors.New("invalid distribution")
	ErrInconsistent        = errors.New("inconsistent distribution")
)

// InvalidDistributionError 构造采样器时概率分布不合法
type InvalidDistributionError struct {
	Reason string
	Index  int // 出错元素的下标，与具体元素无关时为-1
}

func (e *InvalidDistributionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidDistribution, e.Reason)
	}
	return fmt.Sprintf("%v: %s (index %d)", ErrInvalidDistribution, e.Reason, e.Index)
}

func (e *InvalidDistributionError) Unwrap() error {
	return ErrInvalidDistribution
}

func invalid(index int, format string, args ...interface{}) error {
	return &InvalidDistributionError{
		Reason: fmt.Sprintf(format, args...),
		Index:  index,
	}
}

// ConsistencyError 采样时随机数落在累积分布之外
type ConsistencyError struct {
	X float64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%v: no outcome for x=%v", ErrInconsistent, e.X)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrInconsistent
}
