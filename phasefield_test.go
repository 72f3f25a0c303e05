package phasefield

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phasefield/initial"
	"phasefield/input"
	"phasefield/maths"
	"phasefield/model"
	"phasefield/snapshot"
	"phasefield/solver"
)

// TestEvolveEntryPoints 两个入口原地修改场并按间隔输出
func TestEvolveEntryPoints(t *testing.T) {
	p := model.Params{Kappa: 1, A: 1, TimeStep: 2000, Dt: 0.01, Nx: 8, Ny: 8, Dx: 1, Dy: 1}
	for name, evolve := range map[string]func(model.Params, *maths.Field, snapshot.Sink) error{
		"nonconserved": EvolveNonConserved,
		"conserved":    EvolveConserved,
	} {
		field, avg := initial.Noisy(p.Nx, p.Ny, initial.Profile{Nominal: 0.3, Noise: 0.05, Seed: 2})
		before := field.Real(nil)
		var steps []int
		err := evolve(p, field, snapshot.SinkFunc(func(s snapshot.Snapshot) error {
			steps = append(steps, s.Step)
			return nil
		}))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(steps) != 3 || steps[0] != 0 || steps[2] != 2000 {
			t.Errorf("%s: unexpected snapshot steps %v", name, steps)
		}
		if field.Real(nil)[0] == before[0] {
			t.Errorf("%s: field was not evolved in place", name)
		}
		if name == "conserved" && abs(field.Mean()-avg) > 1e-11 {
			t.Errorf("conserved mean drifted from %g to %g", avg, field.Mean())
		}
	}
}

// TestEvolveShapeError 尺寸错误在第一次快照前返回
func TestEvolveShapeError(t *testing.T) {
	p := model.Params{Kappa: 1, A: 1, TimeStep: 10, Dt: 0.01, Nx: 8, Ny: 8, Dx: 1, Dy: 1}
	called := false
	err := EvolveConserved(p, maths.NewField(8, 4), snapshot.SinkFunc(func(snapshot.Snapshot) error {
		called = true
		return nil
	}))
	if !errors.Is(err, solver.ErrShape) || called {
		t.Errorf("Expected ErrShape before any snapshot, got %v (called=%v)", err, called)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// TestSimulation 完整运行：清空输出目录、摘要、原始数据、图像与报告
func TestSimulation(t *testing.T) {
	root := t.TempDir()
	in, out := filepath.Join(root, "input"), filepath.Join(root, "output")
	writeFiles(t, in, map[string]string{
		input.ConstantsFile:  "1.0 1.0",
		input.TimeInfoFile:   "20 0.01",
		input.SystemInfoFile: "8 6 1.0 1.0",
		input.OrderProfile:   "0.5 0.01",
		input.OptionsFile:    "interval 10\nbackend godsp\nworkers 2\nrender .png\nseed 5\n",
	})
	writeFiles(t, out, map[string]string{"stale.dat": "old"})

	sim := NewSimulation(model.NonConserved, in, out)
	sim.Report = filepath.Join(root, "report.html")
	if err := sim.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := sim.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "stale.dat")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Output directory was not reset")
	}
	summary, err := os.ReadFile(filepath.Join(out, input.SummaryFile))
	if err != nil || !strings.Contains(string(summary), "average_phi = ") {
		t.Errorf("Missing summary: %v\n%s", err, summary)
	}
	for _, step := range []int{0, 10, 20} {
		values, err := snapshot.ReadFile(filepath.Join(out, snapshot.DataName(step)), 8, 6)
		if err != nil || len(values) != 48 {
			t.Errorf("step %d: raw snapshot unreadable: %v", step, err)
		}
		if _, err := os.Stat(filepath.Join(out, snapshot.ImageName(step, ".png"))); err != nil {
			t.Errorf("step %d: image missing: %v", step, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, StatisticsFile)); err != nil {
		t.Errorf("Statistics not written: %v", err)
	}
	if sim.Record.Len() != 3 {
		t.Errorf("Expected 3 records, got %d", sim.Record.Len())
	}
	report, err := os.ReadFile(sim.Report)
	if err != nil || !strings.Contains(string(report), "echarts") {
		t.Errorf("Report not rendered: %v", err)
	}
}

// TestSimulationInvalid 越界参数不启动求解器
func TestSimulationInvalid(t *testing.T) {
	root := t.TempDir()
	in, out := filepath.Join(root, "input"), filepath.Join(root, "output")
	writeFiles(t, in, map[string]string{
		input.ConstantsFile:   "-1.0 1.0",
		input.TimeInfoFile:    "20 0.01",
		input.SystemInfoFile:  "8 8 1.0 1.0",
		input.CompositionFile: "0.5 0.01",
	})
	sim := NewSimulation(model.Conserved, in, out)
	if err := sim.Load(); err != nil {
		t.Fatal(err)
	}
	if err := sim.Run(); !errors.Is(err, input.ErrOutOfRange) {
		t.Fatalf("Expected ErrOutOfRange, got %v", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Output directory should not be touched on invalid input")
	}
}

// TestResetDirRefusesUnsafe 不清空根目录、工作目录及包含输入目录的路径
func TestResetDirRefusesUnsafe(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "input")
	writeFiles(t, in, map[string]string{input.ConstantsFile: "1 1"})
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{"", ".", cwd, filepath.Dir(cwd), "/", root, in} {
		if err := ResetDir(dir, in); !errors.Is(err, ErrUnsafeDir) {
			t.Errorf("ResetDir(%q): expected ErrUnsafeDir, got %v", dir, err)
		}
	}
	if _, err := os.Stat(filepath.Join(in, input.ConstantsFile)); err != nil {
		t.Fatalf("Input was removed: %v", err)
	}
	out := filepath.Join(root, "output")
	writeFiles(t, out, map[string]string{"old.dat": "x"})
	if err := ResetDir(out, in); err != nil {
		t.Fatalf("ResetDir(output): %v", err)
	}
	if entries, _ := os.ReadDir(out); len(entries) != 0 {
		t.Errorf("Expected empty output, got %d entries", len(entries))
	}
}
