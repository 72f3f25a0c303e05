package fft

import (
	"sync"

	dsp "github.com/mjibson/go-dsp/fft"
)

// GoDSPName go-dsp 后端名称
const GoDSPName = "godsp"

func init() { Register(&GoDSP{}) }

var workersMu sync.Mutex

// GoDSP 基于 mjibson/go-dsp 的后端
// go-dsp 内部可用工作池并行计算单次变换，对调用方不可见。
type GoDSP struct {
	Workers int // 工作池大小，0 表示使用库默认值
}

// Name 后端名称
func (*GoDSP) Name() string { return GoDSPName }

// SetWorkers 设置 go-dsp 全局工作池大小
func (b *GoDSP) SetWorkers(n int) {
	workersMu.Lock()
	defer workersMu.Unlock()
	b.Workers = n
	if n > 0 {
		dsp.SetWorkerPoolSize(n)
	}
}

// NewPlan 创建计划
func (b *GoDSP) NewPlan(buf []complex128, nx, ny int, dir Direction) (Plan, error) {
	if err := checkShape(buf, nx, ny); err != nil {
		return nil, err
	}
	rows := make([][]complex128, nx)
	for i := range rows {
		rows[i] = make([]complex128, ny)
	}
	return &godspPlan{
		planBase: planBase{buf: buf, nx: nx, ny: ny, dir: dir},
		rows:     rows,
	}, nil
}

type godspPlan struct {
	planBase
	rows [][]complex128 // 二维视图缓存
}

// Execute 原地执行
// go-dsp 的 IFFT2 已经归一化，这里乘回 Nx*Ny 保持未归一化约定。
func (p *godspPlan) Execute() {
	p.mustOpen()
	for i, row := range p.rows {
		copy(row, p.buf[i*p.ny:(i+1)*p.ny])
	}
	var out [][]complex128
	if p.dir == Forward {
		out = dsp.FFT2(p.rows)
	} else {
		out = dsp.IFFT2(p.rows)
	}
	n := complex(float64(p.nx*p.ny), 0)
	for i, row := range out {
		dst := p.buf[i*p.ny : (i+1)*p.ny]
		if p.dir == Forward {
			copy(dst, row)
			continue
		}
		for j, v := range row {
			dst[j] = v * n
		}
	}
}

// Close 释放
func (p *godspPlan) Close() {
	p.closed = true
	p.rows = nil
}
