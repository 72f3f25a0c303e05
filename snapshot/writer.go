package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"phasefield/utils/basebyte"
)

// DataName 原始数据文件名 time<step>.dat
func DataName(step int) string { return fmt.Sprintf("time%d.dat", step) }

// ImageName 图像文件名 time<step><ext>
func ImageName(step int, ext string) string { return fmt.Sprintf("time%d%s", step, ext) }

// Writer 把每个快照写为 Nx*Ny 个小端 float64，并可选地交给渲染器
type Writer struct {
	Dir      string   // 输出目录
	Renderer Renderer // 可视化渲染器，nil 表示不渲染
	Ext      string   // 图像扩展名，默认 ".ps"
	Verbose  bool     // 是否记录每个输出文件
}

// Emit 写出快照
func (w *Writer) Emit(s Snapshot) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	dataPath := filepath.Join(w.Dir, DataName(s.Step))
	if err := writeRaw(dataPath, s.Values); err != nil {
		return err
	}
	if w.Verbose {
		log.Printf("snapshot: 写出 %s", dataPath)
	}
	if w.Renderer == nil {
		return nil
	}
	ext := w.Ext
	if ext == "" {
		ext = ".ps"
	}
	imagePath := filepath.Join(w.Dir, ImageName(s.Step, ext))
	if err := w.Renderer.Render(s.Values, s.Nx, s.Ny, imagePath); err != nil {
		return fmt.Errorf("渲染 %s 失败: %w", imagePath, err)
	}
	return nil
}

func writeRaw(path string, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建数据文件失败: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := WriteRaw(bw, values); err != nil {
		f.Close()
		return fmt.Errorf("写数据文件 %s 失败: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("写数据文件 %s 失败: %w", path, err)
	}
	return f.Close()
}

// WriteRaw 按行优先写出小端 float64
func WriteRaw(w io.Writer, values []float64) error {
	bw := &basebyte.Write{Order: binary.LittleEndian}
	bw.Float64s(values)
	_, err := w.Write(bw.Byte)
	return err
}

// ReadRaw 读取 nx*ny 个小端 float64
func ReadRaw(r io.Reader, nx, ny int) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	br := &basebyte.Read{Byte: data, Order: binary.LittleEndian}
	values, err := br.Float64s(nx * ny)
	if err != nil {
		return nil, fmt.Errorf("%w: %d 字节, 需要 %dx%d 个样本", ErrSize, len(data), nx, ny)
	}
	return values, nil
}

// ReadFile 读取原始数据文件
func ReadFile(path string, nx, ny int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRaw(bufio.NewReader(f), nx, ny)
}
