package model

import "phasefield/maths"

// Integrator 半隐式谱积分器
// 梯度能项隐式处理，非线性项显式处理：
//
//	φ̂ ← (φ̂ − dt·w·ĝ) / (1 + 2κ·w·k²·dt)
//
// 非守恒时 w = 1；守恒时 w = k²，即对同一驱动力取拉普拉斯。
// 每个模的系数在创建时预计算，运行中不变。
type Integrator struct {
	dynamics    Dynamics
	explicit    []float64 // dt·w
	denominator []float64 // 1 + 2κ·w·k²·dt
}

// NewIntegrator 创建积分器
func NewIntegrator(p Params, dynamics Dynamics) *Integrator {
	waves := maths.NewWaveGrid(p.Nx, p.Ny, p.Dx, p.Dy)
	in := &Integrator{
		dynamics:    dynamics,
		explicit:    make([]float64, p.Len()),
		denominator: make([]float64, p.Len()),
	}
	for i := 0; i < p.Nx; i++ {
		for j := 0; j < p.Ny; j++ {
			k2 := waves.K2(i, j)
			weight := 1.0
			if dynamics == Conserved {
				weight = k2
			}
			n := i*p.Ny + j
			in.explicit[n] = p.Dt * weight
			in.denominator[n] = 1 + 2*p.Kappa*weight*k2*p.Dt
		}
	}
	return in
}

// Dynamics 演化类型
func (in *Integrator) Dynamics() Dynamics { return in.dynamics }

// Apply 用变换后的场 phiHat 与非线性项 gHat 原地更新 phiHat
func (in *Integrator) Apply(phiHat, gHat []complex128) {
	if len(phiHat) != len(in.explicit) || len(gHat) != len(in.explicit) {
		panic("dimension mismatch")
	}
	for n, e := range in.explicit {
		d := in.denominator[n]
		re := (real(phiHat[n]) - e*real(gHat[n])) / d
		im := (imag(phiHat[n]) - e*imag(gHat[n])) / d
		phiHat[n] = complex(re, im)
	}
}
