package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
)

// Renderer 可视化渲染接口，核心不解析其产物
type Renderer interface {
	Render(values []float64, nx, ny int, path string) error
}

// imageExts Heatmap 支持的图像扩展名
var imageExts = []string{".ps", ".eps", ".png", ".jpg", ".jpeg", ".pdf", ".svg", ".tif", ".tiff"}

// SupportedExt 扩展名是否可由 Heatmap 渲染（区分大小写，需带点）
func SupportedExt(ext string) bool {
	return slices.Contains(imageExts, ext)
}

// Heatmap 基于 gonum/plot 的热图渲染器
// .ps/.eps 输出 PostScript，.png 输出位图，其它扩展名交给 plot.Save。
type Heatmap struct {
	Title string  // 标题，空时使用文件名
	Size  float64 // 边长（英寸），默认 5
	Min   float64 // 色标下限
	Max   float64 // 色标上限，Min==Max 时自动
}

// grid 以 mat.Dense 实现 plotter.GridXYZ，列方向为 x（行号 i），行方向为 y（列号 j）
type grid struct {
	m *mat.Dense
}

func (g grid) Dims() (c, r int) {
	nx, ny := g.m.Dims()
	return nx, ny
}

func (g grid) Z(c, r int) float64 { return g.m.At(c, r) }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

// Render 渲染到文件
func (h Heatmap) Render(values []float64, nx, ny int, path string) error {
	if len(values) != nx*ny {
		return fmt.Errorf("%w: len=%d nx=%d ny=%d", ErrSize, len(values), nx, ny)
	}
	p := plot.New()
	p.Title.Text = h.Title
	if p.Title.Text == "" {
		p.Title.Text = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(grid{m: mat.NewDense(nx, ny, values)}, moreland.Kindlmann().Palette(255))
	switch lo, hi := floats.Min(values), floats.Max(values); {
	case h.Max > h.Min:
		hm.Min, hm.Max = h.Min, h.Max
	case lo == hi:
		// 均匀场没有色标跨度
		hm.Min, hm.Max = lo-0.5, hi+0.5
	}
	p.Add(hm)

	size := vg.Length(h.Size) * vg.Inch
	if h.Size <= 0 {
		size = 5 * vg.Inch
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ps", ".eps":
		c := vgeps.New(size, size)
		p.Draw(draw.New(c))
		return writeCanvas(path, psCanvas{c})
	case ".png":
		c := vgimg.New(size, size)
		p.Draw(draw.New(c))
		return writeCanvas(path, vgimg.PngCanvas{Canvas: c})
	default:
		return p.Save(size, size, path)
	}
}

type canvasWriter interface {
	WriteTo(w io.Writer) (int64, error)
}

// psCanvas 修正 vgeps 首行 "%%!PS" 为 PostScript 魔数 "%!PS"
type psCanvas struct {
	c canvasWriter
}

func (p psCanvas) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if _, err := p.c.WriteTo(&buf); err != nil {
		return 0, err
	}
	data := bytes.TrimPrefix(buf.Bytes(), []byte("%"))
	if !bytes.HasPrefix(data, []byte("%!PS")) {
		data = buf.Bytes()
	}
	n, err := w.Write(data)
	return int64(n), err
}

func writeCanvas(path string, c canvasWriter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
