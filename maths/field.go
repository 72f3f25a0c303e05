package maths

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Field 序参量场
// 复数网格，仅实部具有物理意义（成分或相分数），虚部只是变换的中间产物。
type Field struct {
	*denseGrid[complex128]
}

// Stats 场实部统计量
type Stats struct {
	Mean     float64 // 平均值
	Min      float64 // 最小值
	Max      float64 // 最大值
	Variance float64 // 方差
}

// NewField 创建全零场
func NewField(nx, ny int) *Field {
	return &Field{denseGrid: newDenseGrid[complex128](nx, ny)}
}

// NewFieldFromReal 从实数采样（行优先）创建场，虚部为零
func NewFieldFromReal(nx, ny int, values []float64) *Field {
	f := NewField(nx, ny)
	f.SetReal(values)
	return f
}

// SetReal 用实数采样覆盖场，虚部清零
func (f *Field) SetReal(values []float64) {
	if len(values) != len(f.data) {
		panic("dimension mismatch")
	}
	for i, v := range values {
		f.data[i] = complex(v, 0)
	}
}

// Real 提取实部到 dst（行优先），dst 为 nil 时分配新切片
func (f *Field) Real(dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(f.data))
	} else if len(dst) != len(f.data) {
		panic("dimension mismatch")
	}
	for i, v := range f.data {
		dst[i] = real(v)
	}
	return dst
}

// Normalize 除以采样点总数 Nx*Ny（抵消未归一化的逆变换）
func (f *Field) Normalize() {
	n := float64(len(f.data))
	for i, v := range f.data {
		f.data[i] = complex(real(v)/n, imag(v)/n)
	}
}

// Mean 实部的空间平均值
func (f *Field) Mean() float64 {
	var sum float64
	for _, v := range f.data {
		sum += real(v)
	}
	return sum / float64(len(f.data))
}

// MaxImag 虚部绝对值的最大值
func (f *Field) MaxImag() float64 {
	var m float64
	for _, v := range f.data {
		m = math.Max(m, math.Abs(imag(v)))
	}
	return m
}

// Clone 深拷贝
func (f *Field) Clone() *Field {
	return &Field{denseGrid: &denseGrid[complex128]{nx: f.nx, ny: f.ny, data: f.DataCopy()}}
}

// Stats 计算实部统计量
func (f *Field) Stats() Stats {
	re := f.Real(nil)
	mean, variance := stat.PopMeanVariance(re, nil)
	return Stats{
		Mean:     mean,
		Min:      floats.Min(re),
		Max:      floats.Max(re),
		Variance: variance,
	}
}
