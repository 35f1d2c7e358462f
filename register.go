package crc

import "fmt"

// Register CRC寄存器统一接口
// 工作流程：Init一次 → Update一到多次 → Digest
// Digest是只读投影，可重复调用且不改变寄存器状态
// 单个寄存器实例不支持并发调用，需要并发时请为每个计算创建独立实例
type Register interface {
	// Init 将寄存器重置为配置的初始值，开始一次新的计算
	Init()
	// Update 按顺序把data中的每个字节折叠进寄存器，返回更新后的寄存器值
	// 多次调用的累计效果等价于一次性传入拼接后的完整数据
	Update(data []byte) uint64
	// Digest 计算最终校验和：可选的整体位反转加最终异或
	Digest() uint64
}

// registerState 两种寄存器实现共享的状态与digest逻辑
type registerState struct {
	config Configuration
	topbit uint64
	mask   uint64
	value  uint64
}

func newRegisterState(config Configuration) registerState {
	return registerState{
		config: config,
		topbit: config.topbit(),
		mask:   config.bitmask(),
		value:  config.InitValue & config.bitmask(),
	}
}

// Init 重置寄存器为配置的初始值
func (r *registerState) Init() {
	r.value = r.config.InitValue & r.mask
}

// Digest 计算最终校验和，不修改寄存器状态
// 反转结果写入局部变量，保证反复调用digest得到相同结果
func (r *registerState) Digest() uint64 {
	out := r.value & r.mask
	if r.config.ReverseOutput {
		out = ReflectBits(out, r.config.Width)
	}
	return (out ^ r.config.FinalXorValue) & r.mask
}

// Value 返回当前寄存器值（按宽度掩码）
func (r *registerState) Value() uint64 {
	return r.value & r.mask
}

// Len 返回寄存器的字节数
func (r *registerState) Len() int {
	return int(r.config.Width / 8)
}

// ByteAt 返回寄存器第index个字节，index从最低字节0开始
func (r *registerState) ByteAt(index int) (byte, error) {
	if index < 0 || index >= r.Len() {
		return 0, fmt.Errorf("寄存器字节索引%d越界 [0, %d)", index, r.Len())
	}
	return byte(r.Value() >> (uint(index) * 8)), nil
}

// Configuration 返回寄存器使用的配置
func (r *registerState) Configuration() Configuration {
	return r.config
}

// BitRegister 逐位模拟的CRC移位寄存器
// 每个字节执行8次移位，基准实现，任何配置下都正确
type BitRegister struct {
	registerState
}

// NewBitRegister 创建逐位计算的CRC寄存器
func NewBitRegister(config Configuration) (*BitRegister, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &BitRegister{registerState: newRegisterState(config)}, nil
}

// Update 逐位折叠数据
func (r *BitRegister) Update(data []byte) uint64 {
	shift := r.config.Width - 8
	for _, b := range data {
		if r.config.ReverseInput {
			b = reflectByte(b)
		}
		r.value = (r.value ^ (uint64(b) << shift)) & r.mask
		for bit := 0; bit < 8; bit++ {
			if r.value&r.topbit != 0 {
				r.value = ((r.value << 1) ^ r.config.Polynomial) & r.mask
			} else {
				r.value = (r.value << 1) & r.mask
			}
		}
	}
	return r.value
}
