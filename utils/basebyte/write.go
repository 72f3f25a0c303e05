package basebyte

import (
	"encoding/binary"
	"math"
	"slices"
)

// Write 写
type Write struct {
	Byte  []byte
	Order binary.AppendByteOrder
}

// Uint64 八字节正整数
func (w *Write) Uint64(v uint64) { w.Byte = w.Order.AppendUint64(w.Byte, v) }

// Float64 浮点数
func (w *Write) Float64(v float64) { w.Uint64(math.Float64bits(v)) }

// Float64s 依次写出浮点数
func (w *Write) Float64s(v []float64) {
	w.Byte = slices.Grow(w.Byte, 8*len(v))
	for _, f := range v {
		w.Float64(f)
	}
}
