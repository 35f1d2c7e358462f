package crc

import "errors"

// 公开错误类型，调用方可通过 errors.Is 进行判断
var (
	// ErrInvalidConfiguration 配置非法：宽度不是8的正整数倍，
	// 或多项式/初始值/最终异或值超出宽度可表示的范围
	ErrInvalidConfiguration = errors.New("crc: 无效的CRC配置")

	// ErrInvalidInput 输入数据无法归一化为字节序列，
	// 例如整数超出0~255范围或类型不受支持
	ErrInvalidInput = errors.New("crc: 无效的输入数据")
)
