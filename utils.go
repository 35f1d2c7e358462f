package crc

import (
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// CompressionType 输入文件的压缩格式
type CompressionType byte

const (
	NoCompression CompressionType = iota
	SnappyCompression
	ZSTDCompression
	GzipCompression
)

// compressionByExtension 根据文件扩展名识别压缩格式
func compressionByExtension(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return ZSTDCompression
	case ".snappy", ".sz":
		return SnappyCompression
	case ".gz":
		return GzipCompression
	default:
		return NoCompression
	}
}

// wrapDecompression 按压缩格式包装读取流，校验和在解压后的内容上计算
// 返回的cleanup负责释放解压器资源，必须在读取完成后调用
func wrapDecompression(r io.Reader, ct CompressionType) (io.Reader, func(), error) {
	switch ct {
	case NoCompression:
		return r, func() {}, nil
	case SnappyCompression:
		return snappy.NewReader(r), func() {}, nil
	case ZSTDCompression:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("创建zstd解压器失败: %w", err)
		}
		return dec.IOReadCloser(), func() { dec.Close() }, nil
	case GzipCompression:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("创建gzip解压器失败: %w", err)
		}
		return gz, func() { gz.Close() }, nil
	default:
		return r, func() {}, nil
	}
}

// formatSize 人类可读的字节数格式化
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
