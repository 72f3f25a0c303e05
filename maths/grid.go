package maths

// denseGrid 二维稠密网格实现
// 数据按行优先存储，索引 = 行*Ny + 列，在整个运行期间尺寸不变
type denseGrid[T Number] struct {
	nx, ny int
	data   []T
}

func newDenseGrid[T Number](nx, ny int) *denseGrid[T] {
	if nx <= 0 || ny <= 0 {
		panic("grid dimensions must be positive")
	}
	return &denseGrid[T]{nx: nx, ny: ny, data: make([]T, nx*ny)}
}

// Dims 返回网格尺寸
func (g *denseGrid[T]) Dims() (nx, ny int) { return g.nx, g.ny }

// DataCopy 返回数据切片的副本
func (g *denseGrid[T]) DataCopy() []T {
	cpy := make([]T, len(g.data))
	copy(cpy, g.data)
	return cpy
}

// DataPtr 返回底层数据切片
// 注意：直接修改返回的切片会影响原始数据。
func (g *denseGrid[T]) DataPtr() []T { return g.data }
