// Package model 定义相场模型：参数、双阱自由能与半隐式谱积分器。
package model

import "fmt"

// Dynamics 序参量演化类型
type Dynamics int

const (
	NonConserved Dynamics = iota // 非守恒 (Allen-Cahn)
	Conserved                    // 守恒 (Cahn-Hilliard)
)

// String 演化类型名称
func (d Dynamics) String() string {
	switch d {
	case NonConserved:
		return "allen-cahn"
	case Conserved:
		return "cahn-hilliard"
	}
	return fmt.Sprintf("Dynamics(%d)", int(d))
}

// ParseDynamics 按名称解析演化类型
func ParseDynamics(name string) (Dynamics, error) {
	switch name {
	case "allen-cahn", "ac", "nonconserved":
		return NonConserved, nil
	case "cahn-hilliard", "ch", "conserved":
		return Conserved, nil
	}
	return 0, fmt.Errorf("未知的演化类型: %q", name)
}

// Params 模拟参数（核心只读）
type Params struct {
	Kappa    float64 // 梯度能系数 κ
	A        float64 // 双阱势垒系数
	TimeStep int     // 时间步数
	Dt       float64 // 时间步长
	Nx, Ny   int     // 网格点数
	Dx, Dy   float64 // 网格间距
}

// Len 采样点总数
func (p Params) Len() int { return p.Nx * p.Ny }

// String 参数摘要
func (p Params) String() string {
	return fmt.Sprintf("kappa=%g A=%g time_step=%d dt=%g grid=%dx%d spacing=%gx%g",
		p.Kappa, p.A, p.TimeStep, p.Dt, p.Nx, p.Ny, p.Dx, p.Dy)
}
