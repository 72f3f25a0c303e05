// Package input 读取输入目录中的模拟参数。
//
// 目录结构：
//
//	constants                  kappa A
//	time_info                  time_step dt
//	system_info                Nx Ny dx dy
//	order_parameter_profile    phi0 noise   （非守恒）
//	composition_profile        c0 noise     （守恒）
//	options                    可选，每行 "键 值"：interval seed backend render workers
package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"phasefield/fft"
	"phasefield/initial"
	"phasefield/model"
	"phasefield/snapshot"
	"phasefield/solver"
	"phasefield/utils"
)

// 输入文件名
const (
	ConstantsFile   = "constants"
	TimeInfoFile    = "time_info"
	SystemInfoFile  = "system_info"
	OrderProfile    = "order_parameter_profile"
	CompositionFile = "composition_profile"
	OptionsFile     = "options"
)

// RenderNone 关闭图像渲染
const RenderNone = "none"

// 错误定义
var (
	ErrOutOfRange = errors.New("input: 参数超出允许范围")
	ErrOption     = errors.New("input: 未知选项")
)

// Config 一次模拟的全部配置
type Config struct {
	Dynamics model.Dynamics  // 演化类型
	Params   model.Params    // 模拟参数
	Profile  initial.Profile // 初始分布
	Interval int             // 快照间隔
	Backend  string          // 变换后端名称
	Render   string          // 图像扩展名，"none" 表示不渲染
	Workers  int             // go-dsp 工作池大小
}

// Default 默认选项
func Default(dynamics model.Dynamics) Config {
	return Config{
		Dynamics: dynamics,
		Interval: solver.DefaultInterval,
		Backend:  fft.GonumName,
		Render:   ".ps",
	}
}

// ProfileFile 演化类型对应的初始分布文件
func ProfileFile(dynamics model.Dynamics) string {
	if dynamics == model.Conserved {
		return CompositionFile
	}
	return OrderProfile
}

// Load 从目录读取配置
func Load(dir string, dynamics model.Dynamics) (Config, error) {
	cfg := Default(dynamics)
	p := &cfg.Params
	if err := readFile(dir, ConstantsFile, func(f utils.Fields) (err error) {
		if p.Kappa, err = f.Float64(0); err != nil {
			return err
		}
		p.A, err = f.Float64(1)
		return err
	}); err != nil {
		return cfg, err
	}
	if err := readFile(dir, TimeInfoFile, func(f utils.Fields) (err error) {
		if p.TimeStep, err = f.Int(0); err != nil {
			return err
		}
		p.Dt, err = f.Float64(1)
		return err
	}); err != nil {
		return cfg, err
	}
	if err := readFile(dir, SystemInfoFile, func(f utils.Fields) (err error) {
		if p.Nx, err = f.Int(0); err != nil {
			return err
		}
		if p.Ny, err = f.Int(1); err != nil {
			return err
		}
		if p.Dx, err = f.Float64(2); err != nil {
			return err
		}
		p.Dy, err = f.Float64(3)
		return err
	}); err != nil {
		return cfg, err
	}
	if err := readFile(dir, ProfileFile(dynamics), func(f utils.Fields) (err error) {
		if cfg.Profile.Nominal, err = f.Float64(0); err != nil {
			return err
		}
		cfg.Profile.Noise, err = f.Float64(1)
		return err
	}); err != nil {
		return cfg, err
	}
	if err := cfg.loadOptions(filepath.Join(dir, OptionsFile)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFile(dir, name string, parse func(utils.Fields) error) error {
	path := filepath.Join(dir, name)
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("无法打开 %s: %w", path, err)
	}
	defer file.Close()
	fields, err := utils.ReadFields(file)
	if err != nil {
		return fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	if err := parse(fields); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// loadOptions 读取可选的 options 文件，不存在时保持默认值
func (cfg *Config) loadOptions(path string) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("无法打开 %s: %w", path, err)
	}
	defer file.Close()
	lines, err := utils.ReadLines(file)
	if err != nil {
		return fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	for _, line := range lines {
		if err := cfg.SetOption(line); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// SetOption 设置一项 "键 值" 选项
func (cfg *Config) SetOption(line utils.Fields) (err error) {
	switch key := line.ParseString(0, ""); key {
	case "interval":
		cfg.Interval, err = line.Int(1)
	case "seed":
		cfg.Profile.Seed, err = line.Uint64(1)
	case "backend":
		cfg.Backend = line.ParseString(1, cfg.Backend)
	case "render":
		cfg.Render = line.ParseString(1, cfg.Render)
	case "workers":
		cfg.Workers, err = line.Int(1)
	default:
		err = fmt.Errorf("%w: %q", ErrOption, key)
	}
	return err
}

// Validate 检查参数范围
func (cfg Config) Validate() error {
	p := cfg.Params
	check := func(ok bool, format string, args ...any) error {
		if ok {
			return nil
		}
		return fmt.Errorf("%w: "+format, append([]any{ErrOutOfRange}, args...)...)
	}
	for _, err := range []error{
		check(p.Kappa > 0, "kappa = %g 必须大于 0", p.Kappa),
		check(p.A > 0, "A = %g 必须大于 0", p.A),
		check(p.TimeStep > 0, "time_step = %d 必须大于 0", p.TimeStep),
		check(p.Dt > 0, "dt = %g 必须大于 0", p.Dt),
		check(p.Nx > 0 && p.Ny > 0, "网格 %dx%d 必须为正", p.Nx, p.Ny),
		check(p.Dx > 0 && p.Dy > 0, "网格间距 %gx%g 必须为正", p.Dx, p.Dy),
		check(cfg.Profile.Noise >= 0, "噪声幅度 %g 不能为负", cfg.Profile.Noise),
		check(cfg.Interval > 0, "快照间隔 %d 必须大于 0", cfg.Interval),
		check(cfg.Workers >= 0, "工作池大小 %d 不能为负", cfg.Workers),
	} {
		if err != nil {
			return err
		}
	}
	if cfg.Render != RenderNone && !snapshot.SupportedExt(cfg.Render) {
		return fmt.Errorf("%w: 不支持的图像格式 %q", ErrOutOfRange, cfg.Render)
	}
	if _, err := fft.Lookup(cfg.Backend); err != nil {
		return err
	}
	return nil
}
