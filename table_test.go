package crc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLookupTableKnownEntries(t *testing.T) {
	table, err := CreateLookupTable(8, 0x07)
	require.NoError(t, err)
	require.Len(t, table, 256)
	assert.Equal(t, uint64(0x00), table[0])
	assert.Equal(t, uint64(0x07), table[1])
	assert.Equal(t, uint64(0x0E), table[2])
	assert.Equal(t, uint64(0x09), table[3])
}

func TestCreateLookupTableMatchesBitRegister(t *testing.T) {
	// 表中每一项等于逐位寄存器单独处理该字节的结果
	for _, config := range []Configuration{CRC8["CCITT"], CRC16["XMODEM"], CRC32["BZIP2"], CRC64["CRC64"]} {
		table, err := CreateLookupTable(config.Width, config.Polynomial)
		require.NoError(t, err)

		reference, err := NewBitRegister(Configuration{Width: config.Width, Polynomial: config.Polynomial})
		require.NoError(t, err)
		for i := 0; i < 256; i++ {
			reference.Init()
			reference.Update([]byte{byte(i)})
			assert.Equal(t, reference.Digest(), table[i], "width=%d index=%d", config.Width, i)
		}
	}
}

func TestCreateLookupTableMemoized(t *testing.T) {
	// 同一(宽度,多项式)组合返回同一份缓存数据
	a, err := CreateLookupTable(16, 0x1021)
	require.NoError(t, err)
	b, err := CreateLookupTable(16, 0x1021)
	require.NoError(t, err)
	assert.True(t, &a[0] == &b[0], "查找表应当被缓存复用")
}

func TestCreateLookupTableInvalid(t *testing.T) {
	_, err := CreateLookupTable(0, 0x07)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = CreateLookupTable(8, 0x1FF)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestEngineEquivalence(t *testing.T) {
	// 查表引擎与逐位引擎对任意配置、任意数据必须逐位一致
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 4096)
	rng.Read(data)

	configs := make([]Configuration, 0, 32)
	for _, name := range AlgorithmNames() {
		config, ok := LookupAlgorithm(name)
		require.True(t, ok)
		configs = append(configs, config)
	}
	// 目录之外补一个24位配置
	openpgp, err := NewConfiguration(24, 0x864CFB, 0xB704CE, 0, false, false)
	require.NoError(t, err)
	configs = append(configs, openpgp)

	for _, config := range configs {
		bit, err := NewBitRegister(config)
		require.NoError(t, err)
		table, err := NewTableRegister(config)
		require.NoError(t, err)

		bit.Init()
		table.Init()
		for offset := 0; offset < len(data); offset += 1009 {
			end := offset + 1009
			if end > len(data) {
				end = len(data)
			}
			assert.Equal(t, bit.Update(data[offset:end]), table.Update(data[offset:end]),
				"width=%d poly=0x%X", config.Width, config.Polynomial)
		}
		assert.Equal(t, bit.Digest(), table.Digest(),
			"width=%d poly=0x%X", config.Width, config.Polynomial)
	}
}

func TestTableRegisterKnownVectors(t *testing.T) {
	cases := []struct {
		name     string
		expected uint64
	}{
		{"crc8/ccitt", 0xF4},
		{"crc16/kermit", 0x2189},
		{"crc16/modbus", 0x4B37},
		{"crc32/crc32", 0xCBF43926},
		{"crc64/crc64", 0x6C40DF5F0B497347},
	}
	for _, c := range cases {
		config, ok := LookupAlgorithm(c.name)
		require.True(t, ok)
		register, err := NewTableRegister(config)
		require.NoError(t, err)
		register.Init()
		register.Update([]byte("123456789"))
		assert.Equal(t, c.expected, register.Digest(), "algorithm=%s", c.name)
	}
}

func TestTableRegisterDigestIdempotent(t *testing.T) {
	register, err := NewTableRegister(CRC8["BLUETOOTH"])
	require.NoError(t, err)
	register.Init()
	register.Update([]byte("Hello World!"))
	for i := 0; i < 10; i++ {
		assert.Equal(t, uint64(0x51), register.Digest())
	}
}
