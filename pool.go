package crc

import "sync"

// BufferPool 流式读取用的缓冲区对象池
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool 创建指定块大小的缓冲区池
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Get 获取缓冲区
func (p *BufferPool) Get() *[]byte {
	return p.pool.Get().(*[]byte)
}

// Put 归还缓冲区
func (p *BufferPool) Put(buf *[]byte) {
	if len(*buf) == p.size {
		p.pool.Put(buf)
	}
}

// GlobalStreamPool 全局流式读取缓冲池，io.Reader输入按64KB分块消费
var GlobalStreamPool = NewBufferPool(64 * 1024)

// CalculatorPool 计算器对象池
// 同一配置反复计算时复用计算器实例，查表寄存器的建表开销只付一次
type CalculatorPool struct {
	pool sync.Pool
}

// NewCalculatorPool 为指定配置创建计算器池
func NewCalculatorPool(config Configuration, optimized bool) (*CalculatorPool, error) {
	// 提前校验一次，之后池内创建不会再失败
	if _, err := NewCalculator(config, optimized); err != nil {
		return nil, err
	}
	return &CalculatorPool{
		pool: sync.Pool{
			New: func() interface{} {
				calculator, _ := NewCalculator(config, optimized)
				return calculator
			},
		},
	}, nil
}

// Get 获取计算器
func (p *CalculatorPool) Get() *Calculator {
	return p.pool.Get().(*Calculator)
}

// Put 归还计算器
func (p *CalculatorPool) Put(calculator *Calculator) {
	p.pool.Put(calculator)
}
