package snapshot

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"phasefield/maths"
)

// TestExtract 提取实部并保持行优先顺序
func TestExtract(t *testing.T) {
	f := maths.NewField(2, 3)
	f.DataPtr()[1*3+2] = 4 + 5i
	s := Extract(f, 7)
	if s.Step != 7 || s.Nx != 2 || s.Ny != 3 {
		t.Fatalf("Unexpected header %+v", s)
	}
	if s.Values[5] != 4 {
		t.Errorf("Expected Values[5] = 4, got %v", s.Values)
	}
}

// TestWriterRawRoundTrip 原始文件按小端 float64 逐位还原
func TestWriterRawRoundTrip(t *testing.T) {
	dir := t.TempDir()
	values := []float64{0, 1, -2.5, 3.25, 1e-300, 0.1}
	w := &Writer{Dir: dir}
	if err := w.Emit(Snapshot{Step: 1000, Nx: 2, Ny: 3, Values: values}); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	path := filepath.Join(dir, "time1000.dat")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected %s to exist: %v", path, err)
	}
	if info.Size() != int64(8*len(values)) {
		t.Errorf("Expected %d bytes, got %d", 8*len(values), info.Size())
	}
	got, err := ReadFile(path, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("value %d: expected %g, got %g", i, values[i], got[i])
		}
	}
}

// TestWriteRawLayout 第一个样本占据前 8 字节（小端）
func TestWriteRawLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRaw(&buf, []float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if len(b) != 16 || b[7] != 0x3f || b[6] != 0xf0 || b[15] != 0x40 {
		t.Errorf("Unexpected byte layout % x", b)
	}
}

// TestWriterSizeError 长度不符立即报错
func TestWriterSizeError(t *testing.T) {
	w := &Writer{Dir: t.TempDir()}
	err := w.Emit(Snapshot{Step: 0, Nx: 2, Ny: 2, Values: []float64{1}})
	if !errors.Is(err, ErrSize) {
		t.Errorf("Expected ErrSize, got %v", err)
	}
}

// TestMulti 依次分发，首个错误终止
func TestMulti(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	m := Multi(
		SinkFunc(func(Snapshot) error { calls = append(calls, "a"); return nil }),
		nil,
		SinkFunc(func(Snapshot) error { calls = append(calls, "b"); return boom }),
		SinkFunc(func(Snapshot) error { calls = append(calls, "c"); return nil }),
	)
	if err := m.Emit(Snapshot{}); !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Errorf("Unexpected call order %v", calls)
	}
}

// TestHeatmapRender 渲染 PostScript 与 PNG 文件
func TestHeatmapRender(t *testing.T) {
	dir := t.TempDir()
	nx, ny := 6, 4
	values := make([]float64, nx*ny)
	for i := range values {
		values[i] = float64(i) / float64(len(values))
	}
	w := &Writer{Dir: dir, Renderer: Heatmap{Size: 2}}
	if err := w.Emit(Snapshot{Step: 0, Nx: nx, Ny: ny, Values: values}); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	ps, err := os.ReadFile(filepath.Join(dir, "time0.ps"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(ps, []byte("%!PS")) {
		t.Errorf("Expected PostScript header, got %q", ps[:min(len(ps), 16)])
	}

	png := filepath.Join(dir, "flat.png")
	uniform := make([]float64, nx*ny)
	if err := (Heatmap{Size: 1}).Render(uniform, nx, ny, png); err != nil {
		t.Fatalf("Render png failed: %v", err)
	}
	if info, err := os.Stat(png); err != nil || info.Size() == 0 {
		t.Errorf("Expected non-empty png: %v", err)
	}
}

type rawCanvas string

func (c rawCanvas) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, string(c))
	return int64(n), err
}

// TestPSCanvasHeader 首行以 %!PS 开头，其余内容不变
func TestPSCanvasHeader(t *testing.T) {
	for in, want := range map[string]string{
		"%%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 0 0 1 1\n": "%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 0 0 1 1\n",
		"%!PS-Adobe-3.0\n":                                    "%!PS-Adobe-3.0\n",
		"%%Title: x\n":                                        "%%Title: x\n",
	} {
		var buf bytes.Buffer
		n, err := psCanvas{rawCanvas(in)}.WriteTo(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if buf.String() != want || n != int64(len(want)) {
			t.Errorf("header of %q: expected %q, got %q (%d bytes)", in, want, buf.String(), n)
		}
	}
}

// TestSupportedExt 扩展名需带点
func TestSupportedExt(t *testing.T) {
	for _, ext := range []string{".ps", ".eps", ".png", ".svg"} {
		if !SupportedExt(ext) {
			t.Errorf("Expected %q to be supported", ext)
		}
	}
	for _, ext := range []string{"png", "", ".gif", "ps"} {
		if SupportedExt(ext) {
			t.Errorf("Expected %q to be rejected", ext)
		}
	}
}

// TestReadRawShort 数据不足时返回 ErrSize
func TestReadRawShort(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRaw(&buf, []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRaw(&buf, 2, 2); !errors.Is(err, ErrSize) {
		t.Errorf("Expected ErrSize, got %v", err)
	}
}
