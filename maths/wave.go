package maths

import "math"

// Wavenumber 返回第 i 个傅里叶模对应的有符号波数
// 折叠规则与 FFT 原生输出顺序一致：i < (n+1)/2 为非负频率，其余回绕为负频率。
// 偶数 n 时 Nyquist 模 i=n/2 归为负频率；奇数 n 时 (n-1)/2 仍为正频率。
func Wavenumber(i, n int, d float64) float64 {
	if i < 0 || i >= n {
		panic("index out of range")
	}
	dk := 2 * math.Pi / (float64(n) * d)
	if i < (n+1)/2 {
		return float64(i) * dk
	}
	return float64(i-n) * dk
}

// WaveGrid 波矢网格（由网格尺寸和间距导出）
type WaveGrid struct {
	Kx []float64 // 行方向波数
	Ky []float64 // 列方向波数
}

// NewWaveGrid 创建波矢网格
func NewWaveGrid(nx, ny int, dx, dy float64) *WaveGrid {
	w := &WaveGrid{Kx: make([]float64, nx), Ky: make([]float64, ny)}
	for i := range w.Kx {
		w.Kx[i] = Wavenumber(i, nx, dx)
	}
	for j := range w.Ky {
		w.Ky[j] = Wavenumber(j, ny, dy)
	}
	return w
}

// K2 返回模 (i,j) 的波矢模平方 kx²+ky²
func (w *WaveGrid) K2(i, j int) float64 {
	return w.Kx[i]*w.Kx[i] + w.Ky[j]*w.Ky[j]
}

// K2Max 返回网格上最大的 k²
func (w *WaveGrid) K2Max() float64 {
	var mx, my float64
	for _, k := range w.Kx {
		mx = math.Max(mx, k*k)
	}
	for _, k := range w.Ky {
		my = math.Max(my, k*k)
	}
	return mx + my
}
