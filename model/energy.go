package model

// DoubleWell 对称四次双阱势 f(φ) = Aφ²(1−φ)²，极小值位于 φ=0 与 φ=1
type DoubleWell struct {
	A float64
}

// Energy 局部自由能密度
func (w DoubleWell) Energy(phi float64) float64 {
	return w.A * phi * phi * (1 - phi) * (1 - phi)
}

// Derivative 局部自由能密度对序参量的导数 2Aφ(1−φ)(1−2φ)
func (w DoubleWell) Derivative(phi float64) float64 {
	return 2 * w.A * phi * (1 - phi) * (1 - 2*phi)
}

// Evaluate 逐点计算非线性项，dst[i] = f'(Re field[i])，虚部为零
func (w DoubleWell) Evaluate(dst, field []complex128) {
	if len(dst) != len(field) {
		panic("dimension mismatch")
	}
	for i, v := range field {
		dst[i] = complex(w.Derivative(real(v)), 0)
	}
}

// FreeEnergy 总自由能 F = Σ[Aφ²(1−φ)² + κ|∇φ|²]·dx·dy
// 梯度使用周期中心差分，仅用于诊断。
func FreeEnergy(p Params, values []float64) float64 {
	if len(values) != p.Len() {
		panic("dimension mismatch")
	}
	w := DoubleWell{A: p.A}
	nx, ny := p.Nx, p.Ny
	var sum float64
	for i := 0; i < nx; i++ {
		ip, im := (i+1)%nx, (i-1+nx)%nx
		for j := 0; j < ny; j++ {
			jp, jm := (j+1)%ny, (j-1+ny)%ny
			phi := values[i*ny+j]
			gx := (values[ip*ny+j] - values[im*ny+j]) / (2 * p.Dx)
			gy := (values[i*ny+jp] - values[i*ny+jm]) / (2 * p.Dy)
			sum += w.Energy(phi) + p.Kappa*(gx*gx+gy*gy)
		}
	}
	return sum * p.Dx * p.Dy
}
