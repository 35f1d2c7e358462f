package crc

import (
	"fmt"
	"io"
)

// Calculator CRC计算器，核心对外入口
// 把各种形态的输入归一化成字节块序列，驱动寄存器完成init/update/digest
// 单个实例持有可变寄存器状态，不支持并发调用
type Calculator struct {
	config   Configuration
	register Register
}

// NewCalculator 创建CRC计算器
// optimized为true时使用查表加速寄存器，否则使用逐位寄存器
func NewCalculator(config Configuration, optimized bool) (*Calculator, error) {
	var register Register
	var err error
	if optimized {
		register, err = NewTableRegister(config)
	} else {
		register, err = NewBitRegister(config)
	}
	if err != nil {
		return nil, err
	}
	return &Calculator{config: config, register: register}, nil
}

// Configuration 返回计算器使用的配置
func (c *Calculator) Configuration() Configuration {
	return c.config
}

// Checksum 计算输入数据的CRC校验和
//
// 支持的输入形态：
//   - 各种整数类型：视为单个字节，必须落在0~255范围内
//   - []byte / string：完整缓冲区
//   - [][]byte / []string：按顺序拼接的分块序列
//   - io.Reader：读取到EOF为止的数据流
//
// 同样的字节序列无论以哪种形态、按什么分块边界传入，结果都相同
func (c *Calculator) Checksum(data any) (uint64, error) {
	chunks, err := normalizeInput(data)
	if err != nil {
		return 0, err
	}
	defer chunks.Close()

	c.register.Init()
	var total int64
	for {
		chunk, err := chunks.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		c.register.Update(chunk)
		total += int64(len(chunk))
	}
	GlobalMetrics.recordChecksum(total)
	return c.register.Digest(), nil
}

// ChecksumBytes 计算字节切片的CRC校验和，面向Go调用方的便捷入口
func (c *Calculator) ChecksumBytes(data []byte) uint64 {
	c.register.Init()
	c.register.Update(data)
	GlobalMetrics.recordChecksum(int64(len(data)))
	return c.register.Digest()
}

// MustChecksum 计算校验和，输入非法时panic
// 仅适用于输入形态确定合法的场合
func (c *Calculator) MustChecksum(data any) uint64 {
	checksum, err := c.Checksum(data)
	if err != nil {
		panic(err)
	}
	return checksum
}

// Verify 校验数据的CRC是否等于期望值
func (c *Calculator) Verify(data any, expected uint64) (bool, error) {
	checksum, err := c.Checksum(data)
	if err != nil {
		return false, err
	}
	ok := checksum == expected
	GlobalMetrics.recordVerify(ok)
	return ok, nil
}

// chunkIterator 归一化后的单遍字节块序列
// Next在序列耗尽时返回io.EOF，返回的块仅在下一次Next调用前有效
type chunkIterator interface {
	Next() ([]byte, error)
	Close()
}

// normalizeInput 把异构输入收敛为统一的块序列抽象
// 形态判定在任何字节被折叠之前完成，非法输入不会留下部分计算状态
func normalizeInput(data any) (chunkIterator, error) {
	switch v := data.(type) {
	case []byte:
		return &singleChunk{chunk: v}, nil
	case string:
		return &singleChunk{chunk: []byte(v)}, nil
	case [][]byte:
		return &sliceChunks{chunks: v}, nil
	case []string:
		chunks := make([][]byte, len(v))
		for i, s := range v {
			chunks[i] = []byte(s)
		}
		return &sliceChunks{chunks: chunks}, nil
	case io.Reader:
		return newReaderChunks(v), nil
	}
	if b, isInteger, err := integerByte(data); isInteger {
		if err != nil {
			return nil, err
		}
		return &singleChunk{chunk: []byte{b}}, nil
	}
	return nil, fmt.Errorf("%w: 不支持的输入类型 %T", ErrInvalidInput, data)
}

// integerByte 把整数输入转换为单个字节
// 第二个返回值表示输入是否为整数类型，整数越界时返回ErrInvalidInput
func integerByte(data any) (byte, bool, error) {
	var value int64
	switch v := data.(type) {
	case int:
		value = int64(v)
	case int8:
		value = int64(v)
	case int16:
		value = int64(v)
	case int32:
		value = int64(v)
	case int64:
		value = v
	case uint8:
		return v, true, nil
	case uint16:
		value = int64(v)
	case uint32:
		value = int64(v)
	case uint:
		if v > 0xFF {
			return 0, true, errByteRange(data)
		}
		value = int64(v)
	case uint64:
		if v > 0xFF {
			return 0, true, errByteRange(data)
		}
		value = int64(v)
	default:
		return 0, false, nil
	}
	if value < 0 || value > 0xFF {
		return 0, true, errByteRange(data)
	}
	return byte(value), true, nil
}

func errByteRange(data any) error {
	return fmt.Errorf("%w: 整数%v超出单字节范围0~255", ErrInvalidInput, data)
}

// singleChunk 单块输入
type singleChunk struct {
	chunk []byte
	done  bool
}

func (s *singleChunk) Next() ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return s.chunk, nil
}

func (s *singleChunk) Close() {}

// sliceChunks 分块序列输入，按迭代顺序逐块产出
type sliceChunks struct {
	chunks [][]byte
	index  int
}

func (s *sliceChunks) Next() ([]byte, error) {
	if s.index >= len(s.chunks) {
		return nil, io.EOF
	}
	chunk := s.chunks[s.index]
	s.index++
	return chunk, nil
}

func (s *sliceChunks) Close() {}

// readerChunks 流式输入，使用全局缓冲池分块读取
type readerChunks struct {
	reader io.Reader
	buf    *[]byte
}

func newReaderChunks(r io.Reader) *readerChunks {
	return &readerChunks{
		reader: r,
		buf:    GlobalStreamPool.Get(),
	}
}

func (s *readerChunks) Next() ([]byte, error) {
	for {
		n, err := s.reader.Read(*s.buf)
		if n > 0 {
			return (*s.buf)[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (s *readerChunks) Close() {
	if s.buf != nil {
		GlobalStreamPool.Put(s.buf)
		s.buf = nil
	}
}
