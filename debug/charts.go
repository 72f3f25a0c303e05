// Package debug 记录运行过程中的场统计量，并输出 JSON 或 echarts 网页报告。
package debug

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 曲线绘制
type Charts struct {
	*Record
}

// NewCharts 包装记录
func NewCharts(record *Record) *Charts { return &Charts{Record: record} }

// lineChart 统一的折线图样式
func lineChart(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithAnimation(true),
	)
	return line
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		items[i].Value = v
	}
	return items
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	steps := make([]string, len(c.Step))
	for i, s := range c.Step {
		steps[i] = fmt.Sprint(s)
	}
	// 序参量范围
	lineR := lineChart("序参量", fmt.Sprintf("%s 序参量统计随时间步变化", c.Dynamics))
	lineR.SetXAxis(steps).
		AddSeries("mean", lineData(c.Mean)).
		AddSeries("min", lineData(c.Min)).
		AddSeries("max", lineData(c.Max))
	// 方差
	lineV := lineChart("方差", "序参量空间方差")
	lineV.SetXAxis(steps).AddSeries("variance", lineData(c.Variance))
	// 自由能
	lineE := lineChart("自由能", "双阱体积能与梯度能之和")
	lineE.SetXAxis(steps).AddSeries("energy", lineData(c.Energy))

	// 构建界面
	page := components.NewPage()
	page.PageTitle = "phasefield " + c.Dynamics
	page.AddCharts(
		lineR,
		lineV,
		lineE,
	)
	return page.Render(w)
}
