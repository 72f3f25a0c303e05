// Package phasefield 在二维周期网格上演化序参量场。
//
// 支持非守恒（Allen-Cahn）与守恒（Cahn-Hilliard）两种动力学，
// 采用半隐式傅里叶谱格式，按固定间隔输出快照。
package phasefield

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"phasefield/debug"
	"phasefield/fft"
	"phasefield/initial"
	"phasefield/input"
	"phasefield/maths"
	"phasefield/model"
	"phasefield/snapshot"
	"phasefield/solver"
)

// Evolve 原地演化 field，在第 0 步和每 opts.Interval 步把快照交给 sink
// 只有致命错误才会返回，此时场停留在最后完成的时间步。
func Evolve(p model.Params, field *maths.Field, sink snapshot.Sink, opts solver.Options) error {
	s, err := solver.New(p, field, opts)
	if err != nil {
		return err
	}
	return s.Run(sink)
}

// EvolveNonConserved 非守恒演化（Allen-Cahn）
func EvolveNonConserved(p model.Params, field *maths.Field, sink snapshot.Sink) error {
	return Evolve(p, field, sink, solver.Options{Dynamics: model.NonConserved})
}

// EvolveConserved 守恒演化（Cahn-Hilliard）
func EvolveConserved(p model.Params, field *maths.Field, sink snapshot.Sink) error {
	return Evolve(p, field, sink, solver.Options{Dynamics: model.Conserved})
}

// Simulation 完整的一次模拟：读取输入、初始化、演化、输出
type Simulation struct {
	input.Config
	InputDir  string        // 输入目录
	OutputDir string        // 输出目录，运行前清空
	Report    string        // echarts 报告路径，空表示不生成
	Record    *debug.Record // 运行后的统计记录
}

// NewSimulation 初始化
func NewSimulation(dynamics model.Dynamics, inputDir, outputDir string) *Simulation {
	return &Simulation{
		Config:    input.Default(dynamics),
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// Load 读取输入目录
func (sim *Simulation) Load() (err error) {
	sim.Config, err = input.Load(sim.InputDir, sim.Dynamics)
	return err
}

// Run 执行模拟
func (sim *Simulation) Run() error {
	if err := sim.Validate(); err != nil {
		return err
	}
	log.Printf("phasefield: %s, %s", sim.Dynamics, sim.Params)
	if err := ResetDir(sim.OutputDir, sim.InputDir); err != nil {
		return err
	}
	field, average := initial.Noisy(sim.Params.Nx, sim.Params.Ny, sim.Profile)
	log.Printf("phasefield: 初始平均值 %e", average)
	if err := sim.SaveSummary(sim.OutputDir, average); err != nil {
		return err
	}
	backend, err := sim.backend()
	if err != nil {
		return err
	}
	sim.Record = debug.NewRecord(sim.Params, sim.Dynamics)
	writer := &snapshot.Writer{Dir: sim.OutputDir, Renderer: sim.renderer(), Ext: sim.Render, Verbose: true}
	err = Evolve(sim.Params, field, snapshot.Multi(writer, sim.Record), solver.Options{
		Dynamics: sim.Dynamics,
		Backend:  backend,
		Interval: sim.Interval,
	})
	if err != nil {
		return err
	}
	if err := sim.writeStatistics(); err != nil {
		return err
	}
	if sim.Report != "" {
		return sim.writeReport()
	}
	return nil
}

func (sim *Simulation) backend() (fft.Backend, error) {
	backend, err := fft.Lookup(sim.Backend)
	if err != nil {
		return nil, err
	}
	if b, ok := backend.(*fft.GoDSP); ok && sim.Workers > 0 {
		b.SetWorkers(sim.Workers)
	}
	return backend, nil
}

func (sim *Simulation) renderer() snapshot.Renderer {
	if sim.Render == input.RenderNone {
		return nil
	}
	return snapshot.Heatmap{}
}

// StatisticsFile 快照统计量 JSON 文件名
const StatisticsFile = "statistics.json"

func (sim *Simulation) writeStatistics() error {
	path := filepath.Join(sim.OutputDir, StatisticsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("无法创建 %s: %w", path, err)
	}
	if err := sim.Record.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("写出 %s 失败: %w", path, err)
	}
	return f.Close()
}

func (sim *Simulation) writeReport() error {
	f, err := os.Create(sim.Report)
	if err != nil {
		return fmt.Errorf("无法创建报告: %w", err)
	}
	if err := debug.NewCharts(sim.Record).Render(f); err != nil {
		f.Close()
		return fmt.Errorf("报告渲染失败: %w", err)
	}
	return f.Close()
}

// ErrUnsafeDir 拒绝清空的输出目录
var ErrUnsafeDir = errors.New("phasefield: 拒绝清空该输出目录")

// ResetDir 清空目录内容，目录不存在时创建
// 根目录以及包含当前工作目录或 keep 中任一路径的目录不会被清空。
func ResetDir(dir string, keep ...string) error {
	if err := checkResetDir(dir, keep); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return fmt.Errorf("无法读取输出目录: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("无法清空输出目录: %w", err)
		}
	}
	return nil
}

func checkResetDir(dir string, keep []string) error {
	if dir == "" {
		return fmt.Errorf("%w: 路径为空", ErrUnsafeDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeDir, err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeDir, err)
	}
	if abs == filepath.Dir(abs) {
		return fmt.Errorf("%w: %s", ErrUnsafeDir, dir)
	}
	for _, k := range append(keep, cwd) {
		kabs, err := filepath.Abs(k)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsafeDir, err)
		}
		if rel, err := filepath.Rel(abs, kabs); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("%w: %s 包含 %s", ErrUnsafeDir, dir, k)
		}
	}
	return nil
}
