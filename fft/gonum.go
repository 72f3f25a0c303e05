package fft

import "gonum.org/v1/gonum/dsp/fourier"

// GonumName gonum 后端名称
const GonumName = "gonum"

func init() { Register(Gonum{}) }

// Gonum 基于 gonum dsp/fourier 的后端
// 先对每一行做一维变换，再对每一列做一维变换。
type Gonum struct{}

// Name 后端名称
func (Gonum) Name() string { return GonumName }

// NewPlan 创建计划
func (Gonum) NewPlan(buf []complex128, nx, ny int, dir Direction) (Plan, error) {
	if err := checkShape(buf, nx, ny); err != nil {
		return nil, err
	}
	return &gonumPlan{
		planBase: planBase{buf: buf, nx: nx, ny: ny, dir: dir},
		rows:     fourier.NewCmplxFFT(ny),
		cols:     fourier.NewCmplxFFT(nx),
		column:   make([]complex128, nx),
	}, nil
}

type gonumPlan struct {
	planBase
	rows   *fourier.CmplxFFT // 行变换（长度 Ny）
	cols   *fourier.CmplxFFT // 列变换（长度 Nx）
	column []complex128      // 列缓存
}

// Execute 原地执行
func (p *gonumPlan) Execute() {
	p.mustOpen()
	transform := p.rows.Coefficients
	if p.dir == Backward {
		transform = p.rows.Sequence
	}
	for i := 0; i < p.nx; i++ {
		row := p.buf[i*p.ny : (i+1)*p.ny]
		transform(row, row)
	}
	transform = p.cols.Coefficients
	if p.dir == Backward {
		transform = p.cols.Sequence
	}
	for j := 0; j < p.ny; j++ {
		for i := 0; i < p.nx; i++ {
			p.column[i] = p.buf[i*p.ny+j]
		}
		transform(p.column, p.column)
		for i := 0; i < p.nx; i++ {
			p.buf[i*p.ny+j] = p.column[i]
		}
	}
}

// Close 释放
func (p *gonumPlan) Close() {
	p.closed = true
	p.rows, p.cols, p.column = nil, nil, nil
}
