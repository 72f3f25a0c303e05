// Package fft 提供二维周期网格上的原地傅里叶变换引擎。
// 计划在运行开始前按缓冲区和网格尺寸预计算，整个运行期间复用，结束时释放。
// 正变换与逆变换都不归一化：逆变换后数值放大 Nx*Ny 倍，由调用方除去。
package fft

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Direction 变换方向
type Direction int

const (
	Forward  Direction = -1 // 正变换 e^{-i k x}
	Backward Direction = 1  // 逆变换 e^{+i k x}（未归一化）
)

// String 方向名称
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// 错误定义
var (
	ErrShape   = errors.New("fft: 缓冲区长度与网格尺寸不符")
	ErrBackend = errors.New("fft: 未知的变换后端")
)

// Plan 绑定到缓冲区内存与网格尺寸的预计算变换计划
type Plan interface {
	Execute()             // 在绑定缓冲区上原地执行变换
	Direction() Direction // 变换方向
	Dims() (nx, ny int)   // 网格尺寸
	Buffer() []complex128 // 绑定的缓冲区
	Close()               // 释放计划资源，之后不可再执行
}

// Backend 变换后端（计划工厂）
type Backend interface {
	Name() string
	NewPlan(buf []complex128, nx, ny int, dir Direction) (Plan, error)
}

var (
	backendsMu sync.RWMutex
	backends   = map[string]Backend{}
)

// Register 注册变换后端
func Register(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b.Name()] = b
}

// Lookup 按名称查找变换后端
func Lookup(name string) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackend, name)
	}
	return b, nil
}

// Backends 已注册后端名称列表
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkShape 校验缓冲区与网格尺寸
func checkShape(buf []complex128, nx, ny int) error {
	if nx <= 0 || ny <= 0 || len(buf) != nx*ny {
		return fmt.Errorf("%w: len=%d nx=%d ny=%d", ErrShape, len(buf), nx, ny)
	}
	return nil
}

// planBase 计划公共字段
type planBase struct {
	buf    []complex128
	nx, ny int
	dir    Direction
	closed bool
}

func (p *planBase) Direction() Direction { return p.dir }
func (p *planBase) Dims() (nx, ny int)   { return p.nx, p.ny }
func (p *planBase) Buffer() []complex128 { return p.buf }

func (p *planBase) mustOpen() {
	if p.closed {
		panic("fft: execute on closed plan")
	}
}
