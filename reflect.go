package crc

// ReflectBits 反转value最低bitCount位的比特顺序
// 高于bitCount的位不参与运算，结果高位为0，调用方无需再屏蔽
func ReflectBits(value uint64, bitCount uint) uint64 {
	var reflected uint64
	for i := uint(0); i < bitCount; i++ {
		reflected = (reflected << 1) | (value & 1)
		value >>= 1
	}
	return reflected
}

// reflectedByteTable 单字节反转查找表，进程启动时构建一次
var reflectedByteTable = buildReflectedByteTable()

func buildReflectedByteTable() (table [256]byte) {
	for i := range table {
		table[i] = byte(ReflectBits(uint64(i), 8))
	}
	return table
}

// reflectByte 反转单个字节的比特顺序（查表实现）
func reflectByte(b byte) byte {
	return reflectedByteTable[b]
}
