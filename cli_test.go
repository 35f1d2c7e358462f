package crc

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCLI 创建输出重定向到内存缓冲的CLI
func newTestCLI(custom map[string]Configuration) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cli := NewCLI(custom, false, false)
	cli.out = out
	cli.errOut = errOut
	return cli, out, errOut
}

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestCLITable(t *testing.T) {
	cli, out, _ := newTestCLI(nil)
	code := cli.Run([]string{"table", "8", "0x07"})
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 32, "256项按8列排布应为32行")
	assert.Equal(t, "0x00 0x07 0x0E 0x09 0x1C 0x1B 0x12 0x15", lines[0])
}

func TestCLITableWide(t *testing.T) {
	// 32位表的十六进制格子宽度为8位
	cli, out, _ := newTestCLI(nil)
	code := cli.Run([]string{"table", "32", "0x04C11DB7"})
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "0x00000000 0x04C11DB7")
}

func TestCLITableBadArguments(t *testing.T) {
	for _, args := range [][]string{
		{"table"},
		{"table", "8"},
		{"table", "twelve", "0x07"},
		{"table", "8", "xyz"},
		{"table", "12", "0x07"},
	} {
		cli, _, errOut := newTestCLI(nil)
		assert.Equal(t, 1, cli.Run(args), "args=%v", args)
		assert.NotEmpty(t, errOut.String())
	}
}

func TestCLIChecksumFile(t *testing.T) {
	path := writeTestFile(t, "data.txt", []byte("123456789"))
	cli, out, _ := newTestCLI(nil)
	code := cli.Run([]string{"checksum", "crc8/ccitt", path})
	require.Equal(t, 0, code)
	assert.Equal(t, "0xF4\n", out.String())
}

func TestCLIChecksumStdin(t *testing.T) {
	cli, out, _ := newTestCLI(nil)
	cli.stdin = strings.NewReader("123456789")
	code := cli.Run([]string{"checksum", "crc16/modbus"})
	require.Equal(t, 0, code)
	assert.Equal(t, "0x4B37\n", out.String())
}

func TestCLIChecksumUnknownAlgorithm(t *testing.T) {
	cli, _, errOut := newTestCLI(nil)
	code := cli.Run([]string{"checksum", "crc99/nope"})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "未知算法")
}

func TestCLIChecksumCompressed(t *testing.T) {
	data := []byte("compressed payload 123456789")
	reference, out, _ := newTestCLI(nil)
	raw := writeTestFile(t, "data.bin", data)
	require.Equal(t, 0, reference.Run([]string{"checksum", "crc32/crc32", raw}))
	expected := out.String()

	// gzip
	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	_, err := gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	gzPath := writeTestFile(t, "data.bin.gz", gzBuf.Bytes())

	// zstd
	var zstdBuf bytes.Buffer
	enc, err := zstd.NewWriter(&zstdBuf)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	zstdPath := writeTestFile(t, "data.bin.zst", zstdBuf.Bytes())

	// snappy流式格式
	var snappyBuf bytes.Buffer
	sw := snappy.NewBufferedWriter(&snappyBuf)
	_, err = sw.Write(data)
	require.NoError(t, err)
	require.NoError(t, sw.Close())
	snappyPath := writeTestFile(t, "data.bin.sz", snappyBuf.Bytes())

	for _, path := range []string{gzPath, zstdPath, snappyPath} {
		cli, out, _ := newTestCLI(nil)
		code := cli.Run([]string{"checksum", "crc32/crc32", path})
		require.Equal(t, 0, code, "path=%s", path)
		assert.Equal(t, expected, out.String(), "解压后校验和应与原始数据一致 path=%s", path)
	}
}

func TestCLIVerify(t *testing.T) {
	path := writeTestFile(t, "data.txt", []byte("123456789"))

	cli, out, _ := newTestCLI(nil)
	code := cli.Run([]string{"verify", "crc8/ccitt", "0xF4", path})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "校验通过")

	cli, _, errOut := newTestCLI(nil)
	code = cli.Run([]string{"verify", "crc8/ccitt", "0xF5", path})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "校验失败")
}

func TestCLIList(t *testing.T) {
	custom := map[string]Configuration{
		"crc24/openpgp": {Width: 24, Polynomial: 0x864CFB, InitValue: 0xB704CE},
	}
	cli, out, _ := newTestCLI(custom)
	code := cli.Run([]string{"list"})
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "crc16/modbus")
	assert.Contains(t, out.String(), "crc24/openpgp (自定义)")
}

func TestCLICustomAlgorithm(t *testing.T) {
	custom := map[string]Configuration{
		"crc24/openpgp": {Width: 24, Polynomial: 0x864CFB, InitValue: 0xB704CE},
	}
	path := writeTestFile(t, "data.txt", []byte("123456789"))
	cli, out, _ := newTestCLI(custom)
	code := cli.Run([]string{"checksum", "crc24/openpgp", path})
	require.Equal(t, 0, code)
	assert.Equal(t, "0x21CF02\n", out.String())
}

func TestCLIUnknownCommand(t *testing.T) {
	cli, _, errOut := newTestCLI(nil)
	code := cli.Run([]string{"frobnicate"})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "未知命令")
}

func TestCLINoArguments(t *testing.T) {
	cli, out, _ := newTestCLI(nil)
	code := cli.Run(nil)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "命令:")
}

func TestCLIHelp(t *testing.T) {
	cli, out, _ := newTestCLI(nil)
	code := cli.Run([]string{"help"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "table <width> <polynomial>")
}

func TestCLIStats(t *testing.T) {
	path := writeTestFile(t, "data.txt", []byte("123456789"))
	cli, _, errOut := newTestCLI(nil)
	cli.showStats = true
	code := cli.Run([]string{"checksum", "crc8/ccitt", path})
	require.Equal(t, 0, code)
	assert.Contains(t, errOut.String(), "运行指标")
	assert.Contains(t, errOut.String(), "计算次数")
}
