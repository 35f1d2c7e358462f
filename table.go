package crc

import "sync"

// TableRegister 查表加速的CRC寄存器
// 构造时为配置的宽度和多项式生成256项查找表
// Update对每个字节只做一次查表，不再执行8次移位
// 配置了输入反转时同样走查表，运行期没有逐位循环
type TableRegister struct {
	registerState
	table []uint64
}

// NewTableRegister 创建查表加速的CRC寄存器
// 首次使用某个(宽度,多项式)组合时需要一次性的建表开销，之后全局复用
func NewTableRegister(config Configuration) (*TableRegister, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	table, err := CreateLookupTable(config.Width, config.Polynomial)
	if err != nil {
		return nil, err
	}
	return &TableRegister{
		registerState: newRegisterState(config),
		table:         table,
	}, nil
}

// Update 逐字节查表折叠数据
func (r *TableRegister) Update(data []byte) uint64 {
	shift := r.config.Width - 8
	for _, b := range data {
		if r.config.ReverseInput {
			b = reflectedByteTable[b]
		}
		index := (uint64(b) ^ (r.value >> shift)) & 0xFF
		r.value = (r.table[index] ^ (r.value << 8)) & r.mask
	}
	return r.value
}

// tableKey 查找表缓存键，表内容只取决于宽度和多项式
type tableKey struct {
	width      uint
	polynomial uint64
}

// tableCache 全局查找表缓存
// 同一(宽度,多项式)的表只生成一次，多个寄存器共享同一份只读数据
var tableCache = struct {
	sync.RWMutex
	tables map[tableKey][]uint64
}{
	tables: make(map[tableKey][]uint64),
}

// CreateLookupTable 为指定宽度和多项式生成256项CRC查找表
// 返回的切片是全局共享的缓存数据，调用方不得修改
func CreateLookupTable(width uint, polynomial uint64) ([]uint64, error) {
	config, err := NewConfiguration(width, polynomial, 0, 0, false, false)
	if err != nil {
		return nil, err
	}
	key := tableKey{width: width, polynomial: polynomial}

	tableCache.RLock()
	table, ok := tableCache.tables[key]
	tableCache.RUnlock()
	if ok {
		return table, nil
	}

	tableCache.Lock()
	defer tableCache.Unlock()
	if table, ok := tableCache.tables[key]; ok {
		return table, nil
	}

	// 用逐位寄存器模拟每个字节单独产生的部分校验值
	register := &BitRegister{registerState: newRegisterState(config)}
	table = make([]uint64, 256)
	for i := 0; i < 256; i++ {
		register.Init()
		register.Update([]byte{byte(i)})
		table[i] = register.Digest()
	}
	tableCache.tables[key] = table
	GlobalMetrics.recordTableBuild()
	return table, nil
}
