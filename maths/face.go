package maths

// Number 是一个约束，允许任何浮点或复数类型
type Number interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}
