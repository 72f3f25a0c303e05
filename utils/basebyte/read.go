// Package basebyte 按指定字节序读写定长数值。
package basebyte

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	ErrOutOfBounds = errors.New("read offset out of bounds")
	ErrInvalidData = errors.New("invalid data length")
)

// Read 读
type Read struct {
	Byte   []byte
	Offset int
	Order  binary.ByteOrder
	Error  error
}

// CheckBounds 检查边界
func (r *Read) CheckBounds(required int) error {
	switch {
	case r.Offset < 0:
		return ErrOutOfBounds
	case r.Offset+required > len(r.Byte):
		return ErrOutOfBounds
	}
	return nil
}

// Uint64 八字节正整数
func (r *Read) Uint64() (v uint64) {
	if err := r.CheckBounds(8); err != nil {
		r.Error = err
		return 0
	}
	v = r.Order.Uint64(r.Byte[r.Offset:])
	r.Offset += 8
	return v
}

// Float64 浮点数
func (r *Read) Float64() (v float64) {
	bits := r.Uint64()
	return math.Float64frombits(bits)
}

// Float64s 读取 n 个浮点数，剩余字节不足时返回 ErrInvalidData
func (r *Read) Float64s(n int) ([]float64, error) {
	if n < 0 || r.CheckBounds(8*n) != nil {
		return nil, ErrInvalidData
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = r.Float64()
	}
	return v, r.Error
}
