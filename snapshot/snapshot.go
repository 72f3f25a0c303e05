// Package snapshot 负责把序参量场的实部输出为原始二进制文件与可视化图像。
package snapshot

import (
	"errors"
	"fmt"

	"phasefield/maths"
)

// Snapshot 某一时间步的场实部（行优先）
type Snapshot struct {
	Step   int       // 时间步
	Nx, Ny int       // 网格尺寸
	Values []float64 // 实部采样
}

// Extract 从场中提取实部快照
func Extract(field *maths.Field, step int) Snapshot {
	nx, ny := field.Dims()
	return Snapshot{Step: step, Nx: nx, Ny: ny, Values: field.Real(nil)}
}

// Sink 快照接收者，返回错误时运行终止
type Sink interface {
	Emit(s Snapshot) error
}

// SinkFunc 函数适配器
type SinkFunc func(s Snapshot) error

// Emit 调用函数
func (f SinkFunc) Emit(s Snapshot) error { return f(s) }

// Discard 丢弃所有快照
var Discard Sink = SinkFunc(func(Snapshot) error { return nil })

// multi 按顺序分发到多个接收者
type multi []Sink

// Multi 组合多个接收者，遇到第一个错误即返回
func Multi(sinks ...Sink) Sink {
	list := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			list = append(list, s)
		}
	}
	return list
}

// Emit 分发
func (m multi) Emit(s Snapshot) error {
	for _, sink := range m {
		if err := sink.Emit(s); err != nil {
			return err
		}
	}
	return nil
}

// ErrSize 快照数据长度与尺寸不符
var ErrSize = errors.New("snapshot: 数据长度与网格尺寸不符")

func (s Snapshot) check() error {
	if s.Nx <= 0 || s.Ny <= 0 || len(s.Values) != s.Nx*s.Ny {
		return fmt.Errorf("%w: step=%d len=%d nx=%d ny=%d", ErrSize, s.Step, len(s.Values), s.Nx, s.Ny)
	}
	return nil
}
