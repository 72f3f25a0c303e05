package debug

import (
	"encoding/json"
	"io"

	"phasefield/maths"
	"phasefield/model"
	"phasefield/snapshot"
)

// Record 记录每个快照时刻的场统计量
type Record struct {
	Dynamics string       // 演化类型
	Params   model.Params // 模拟参数
	Step     []int        // 时间步列
	Time     []float64    // 物理时间列
	Mean     []float64    // 平均值列
	Min      []float64    // 最小值列
	Max      []float64    // 最大值列
	Variance []float64    // 方差列
	Energy   []float64    // 自由能列
}

// NewRecord 创建记录
func NewRecord(p model.Params, dynamics model.Dynamics) *Record {
	return &Record{Dynamics: dynamics.String(), Params: p}
}

// Emit 记录数据（实现 snapshot.Sink）
func (list *Record) Emit(s snapshot.Snapshot) error {
	st := maths.NewFieldFromReal(s.Nx, s.Ny, s.Values).Stats()
	list.Step = append(list.Step, s.Step)
	list.Time = append(list.Time, float64(s.Step)*list.Params.Dt)
	list.Mean = append(list.Mean, st.Mean)
	list.Min = append(list.Min, st.Min)
	list.Max = append(list.Max, st.Max)
	list.Variance = append(list.Variance, st.Variance)
	list.Energy = append(list.Energy, model.FreeEnergy(list.Params, s.Values))
	return nil
}

// Len 记录条数
func (list *Record) Len() int { return len(list.Step) }

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(list) }

var _ snapshot.Sink = (*Record)(nil)
