package math

import (
	"math"
)

// Round 按照指定精度四舍五入
func Round(val float64, precision int) float64 {
	switch {
	case precision == 0:
		return math.Round(val)
	case precision < 0:
		v := math.Pow10(-precision)
		return math.Floor(val/v+0.5) * v
	default:
		v := math.Pow10(precision)
		return math.Floor(val*v+0.5) / v
	}
}

// AlmostEqual 判断a与b的差值是否在tolerance以内，任意一方为NaN时返回false
func AlmostEqual(a, b, tolerance float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return math.Abs(a-b) <= tolerance
}

// Sum 使用Kahan补偿求和，降低逐项累加的舍入误差
func Sum(values []float64) float64 {
	var sum, c float64
	for _, x := range values {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}
