// Package solver 驱动半隐式傅里叶谱时间步进。
//
// 每一步依次执行：计算非线性项 → 正变换场与非线性项 → 谱更新 →
// 逆变换场 → 除以 Nx*Ny 归一化。第 0 步和每 Interval 步输出一次快照。
package solver

import (
	"errors"
	"fmt"
	"log"

	"phasefield/fft"
	"phasefield/maths"
	"phasefield/model"
	"phasefield/snapshot"
)

// DefaultInterval 默认快照间隔
const DefaultInterval = 1000

// State 求解器状态
type State int

const (
	Initialized State = iota // 已创建
	Running                  // 运行中
	Terminated               // 已结束，资源已释放
)

// String 状态名称
func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// 错误定义
var (
	ErrShape = errors.New("solver: 场尺寸与参数不符")
	ErrState = errors.New("solver: 求解器不在初始状态")
)

// Options 求解选项
type Options struct {
	Dynamics model.Dynamics // 演化类型
	Backend  fft.Backend    // 变换后端，nil 使用 gonum
	Interval int            // 快照间隔，0 使用 DefaultInterval
}

// Solver 时间步进器
// 场缓冲区由求解器独占并原地修改，非线性项缓冲区和变换计划与运行同生命周期。
type Solver struct {
	params     model.Params
	interval   int
	field      *maths.Field      // 序参量场
	term       *maths.Field      // 非线性项缓冲区
	well       model.DoubleWell  // 局部自由能
	integrator *model.Integrator // 谱积分器
	engine     *fft.Engine       // 变换引擎
	state      State
	step       int
}

// New 创建求解器并预计算全部变换计划
func New(p model.Params, field *maths.Field, opts Options) (*Solver, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: 场为空", ErrShape)
	}
	if nx, ny := field.Dims(); nx != p.Nx || ny != p.Ny {
		return nil, fmt.Errorf("%w: 场 %dx%d, 参数 %dx%d", ErrShape, nx, ny, p.Nx, p.Ny)
	}
	backend := opts.Backend
	if backend == nil {
		backend = fft.Gonum{}
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	term := maths.NewField(p.Nx, p.Ny)
	engine, err := fft.NewEngine(backend, field.DataPtr(), term.DataPtr(), p.Nx, p.Ny)
	if err != nil {
		return nil, fmt.Errorf("变换引擎初始化失败: %w", err)
	}
	return &Solver{
		params:     p,
		interval:   interval,
		field:      field,
		term:       term,
		well:       model.DoubleWell{A: p.A},
		integrator: model.NewIntegrator(p, opts.Dynamics),
		engine:     engine,
		state:      Initialized,
	}, nil
}

// State 当前状态
func (s *Solver) State() State { return s.state }

// CurrentStep 已完成的时间步数
func (s *Solver) CurrentStep() int { return s.step }

// Field 序参量场
func (s *Solver) Field() *maths.Field { return s.field }

// Dynamics 演化类型
func (s *Solver) Dynamics() model.Dynamics { return s.integrator.Dynamics() }

// Step 推进一个时间步
// 单独调用 Step 后求解器进入运行状态，不能再 Run。
func (s *Solver) Step() {
	if s.state == Terminated {
		panic("solver: step on terminated solver")
	}
	s.state = Running
	phi, g := s.field.DataPtr(), s.term.DataPtr()
	// 非线性项每步从当前场重新计算
	s.well.Evaluate(g, phi)
	s.engine.Forward(phi)
	s.engine.Forward(g)
	s.integrator.Apply(phi, g)
	s.engine.Backward(phi)
	s.field.Normalize()
	s.step++
}

// Run 执行全部时间步，第 0 步和每 interval 步输出快照
// 任何快照错误立即终止运行，返回时资源均已释放。
func (s *Solver) Run(sink snapshot.Sink) error {
	if s.state != Initialized {
		return ErrState
	}
	defer s.Close()
	if sink == nil {
		sink = snapshot.Discard
	}
	s.state = Running
	waves := maths.NewWaveGrid(s.params.Nx, s.params.Ny, s.params.Dx, s.params.Dy)
	log.Printf("solver: %s 开始, %s, 快照间隔 %d, 2κk²max·dt = %.3g",
		s.Dynamics(), s.params, s.interval, 2*s.params.Kappa*waves.K2Max()*s.params.Dt)
	if err := s.emit(sink); err != nil {
		return err
	}
	for s.step < s.params.TimeStep {
		s.Step()
		if s.step%s.interval == 0 {
			if err := s.emit(sink); err != nil {
				return err
			}
		}
	}
	log.Printf("solver: %s 完成 %d 步, 平均值 %.6f, 虚部残差 %.3g", s.Dynamics(), s.step, s.field.Mean(), s.field.MaxImag())
	return nil
}

func (s *Solver) emit(sink snapshot.Sink) error {
	if err := sink.Emit(snapshot.Extract(s.field, s.step)); err != nil {
		return fmt.Errorf("第 %d 步快照输出失败: %w", s.step, err)
	}
	return nil
}

// Close 释放变换计划与非线性项缓冲区，可重复调用
func (s *Solver) Close() {
	if s.state == Terminated {
		return
	}
	s.engine.Close()
	s.term = nil
	s.state = Terminated
}
