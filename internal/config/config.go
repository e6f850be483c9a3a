package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyTable       = errors.New("distribution table has no outcomes")
	ErrInvalidTolerance = errors.New("tolerance must be a non-negative finite number")
)

// Entry 结果及其概率
type Entry struct {
	Value       int     `yaml:"value"`
	Probability float64 `yaml:"probability"`
}

// Distribution 离散概率分布表
type Distribution struct {
	Tolerance float64 `yaml:"tolerance,omitempty"` // 为0时使用默认误差
	Outcomes  []Entry `yaml:"outcomes"`
}

// Default 内置的分布表
func Default() *Distribution {
	return &Distribution{
		Outcomes: []Entry{
			{Value: -1, Probability: 0.01},
			{Value: 0, Probability: 0.3},
			{Value: 1, Probability: 0.58},
			{Value: 2, Probability: 0.1},
			{Value: 3, Probability: 0.01},
		},
	}
}

// Load 从YAML文件读取分布表，path为空时返回Default()
func Load(path string) (*Distribution, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析YAML格式的分布表，未知字段或负数误差视为错误
func Parse(data []byte) (*Distribution, error) {
	var d Distribution
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse distribution: %w", err)
	}
	if math.IsNaN(d.Tolerance) || math.IsInf(d.Tolerance, 0) || d.Tolerance < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTolerance, d.Tolerance)
	}
	if len(d.Outcomes) == 0 {
		return nil, ErrEmptyTable
	}
	return &d, nil
}

// Split 拆分为按顺序对应的结果与概率
func (d *Distribution) Split() (values []int, probabilities []float64) {
	values = make([]int, len(d.Outcomes))
	probabilities = make([]float64, len(d.Outcomes))
	for i, e := range d.Outcomes {
		values[i] = e.Value
		probabilities[i] = e.Probability
	}
	return
}
