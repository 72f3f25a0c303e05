// Package initial 生成带噪声的初始序参量分布。
package initial

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"phasefield/maths"
)

// Profile 初始分布描述：名义值加均匀噪声
type Profile struct {
	Nominal float64 // 名义序参量 φ0
	Noise   float64 // 噪声幅度
	Seed    uint64  // 随机种子
}

// Noisy 生成 φ = φ0 + noise·(0.5 − u)，u 在 (0,1) 上均匀分布，虚部为零
// 返回场与实部平均值。
func Noisy(nx, ny int, pr Profile) (*maths.Field, float64) {
	u := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewPCG(pr.Seed, pr.Seed^0x9e3779b97f4a7c15)}
	field := maths.NewField(nx, ny)
	data := field.DataPtr()
	for i := range data {
		v := u.Rand()
		for v == 0 {
			v = u.Rand()
		}
		data[i] = complex(pr.Nominal+pr.Noise*(0.5-v), 0)
	}
	return field, field.Mean()
}
