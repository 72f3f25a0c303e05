package fft

import (
	"fmt"
	"log"
)

// Engine 时间步进使用的变换引擎
// 持有场与非线性项两个缓冲区上的三个计划：场正变换、非线性项正变换、场逆变换。
type Engine struct {
	backend Backend
	plans   []Plan
}

// NewEngine 在给定缓冲区上创建全部计划
// 任一计划创建失败时已创建的计划会被释放。
func NewEngine(backend Backend, field, term []complex128, nx, ny int) (*Engine, error) {
	engine := &Engine{backend: backend}
	for _, bind := range []struct {
		buf []complex128
		dir Direction
	}{
		{field, Forward},
		{term, Forward},
		{field, Backward},
	} {
		plan, err := backend.NewPlan(bind.buf, nx, ny, bind.dir)
		if err != nil {
			engine.Close()
			return nil, fmt.Errorf("创建%s计划失败: %w", bind.dir, err)
		}
		engine.plans = append(engine.plans, plan)
	}
	return engine, nil
}

// Forward 对缓冲区执行正变换
func (e *Engine) Forward(buf []complex128) { e.plan(buf, Forward).Execute() }

// Backward 对缓冲区执行逆变换（未归一化）
func (e *Engine) Backward(buf []complex128) { e.plan(buf, Backward).Execute() }

// plan 查找绑定到该缓冲区内存的计划
// 未绑定的缓冲区属于编程错误。
func (e *Engine) plan(buf []complex128, dir Direction) Plan {
	for _, p := range e.plans {
		bound := p.Buffer()
		if p.Direction() == dir && len(bound) == len(buf) && len(buf) > 0 && &bound[0] == &buf[0] {
			return p
		}
	}
	panic(fmt.Sprintf("fft: no %s plan bound to buffer", dir))
}

// Close 释放全部计划，可重复调用
func (e *Engine) Close() {
	if e == nil {
		return
	}
	for _, p := range e.plans {
		p.Close()
	}
	if len(e.plans) > 0 {
		log.Printf("fft: 释放 %d 个 %s 计划", len(e.plans), e.backend.Name())
	}
	e.plans = nil
}
