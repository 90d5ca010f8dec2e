package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdin 作为路径时表示从标准输入读取。
const Stdin = "-"

// Open 打开日志输入。按扩展名识别轮转后的压缩日志：.gz 与 .zst。
func Open(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, fmt.Errorf("输入路径不能为空")
	}
	if path == Stdin {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开日志文件失败：%w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("打开 gzip 日志失败：%w", err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("打开 zstd 日志失败：%w", err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zstdCloser{zr}, f}}, nil
	default:
		return f, nil
	}
}

// stackedReader 关闭时按顺序释放解压器和底层文件。
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// zstd.Decoder.Close 没有返回值。
type zstdCloser struct {
	d *zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}
