package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"phasefield/model"
)

// SummaryFile 模拟摘要文件名
const SummaryFile = "simulation_data"

// WriteSummary 按 "名称 = 值" 格式写出参数与初始平均值
func (cfg Config) WriteSummary(w io.Writer, average float64) error {
	p := cfg.Params
	prefix, avgName := "phi", "average_phi"
	if cfg.Dynamics == model.Conserved {
		prefix, avgName = "c", "average_comp"
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "kappa = %e\nA = %e\n", p.Kappa, p.A)
	fmt.Fprintf(bw, "time_step = %d\ndt = %e\n", p.TimeStep, p.Dt)
	fmt.Fprintf(bw, "Nx = %d\nNy = %d\n", p.Nx, p.Ny)
	fmt.Fprintf(bw, "dx = %e\ndy = %e\n", p.Dx, p.Dy)
	fmt.Fprintf(bw, "%s_zero = %e\n%s_noise = %e\n", prefix, cfg.Profile.Nominal, prefix, cfg.Profile.Noise)
	fmt.Fprintf(bw, "%s = %e\n", avgName, average)
	return bw.Flush()
}

// SaveSummary 写出 dir/simulation_data
func (cfg Config) SaveSummary(dir string, average float64) error {
	path := filepath.Join(dir, SummaryFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("无法创建 %s: %w", path, err)
	}
	if err := cfg.WriteSummary(f, average); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
