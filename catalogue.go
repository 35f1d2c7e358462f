package crc

import (
	"fmt"
	"sort"
	"strings"
)

// 预定义算法目录，按宽度分组
// 取值来自公开CRC目录（CCITT、AUTOSAR、MODBUS等），进程启动时构建一次
// 目录本身只是数据，核心对外部传入的Configuration一视同仁
var (
	// CRC8 8位算法家族
	CRC8 = map[string]Configuration{
		"CCITT":         {Width: 8, Polynomial: 0x07, InitValue: 0x00, FinalXorValue: 0x00},
		"SAEJ1850":      {Width: 8, Polynomial: 0x1D, InitValue: 0xFF, FinalXorValue: 0xFF},
		"SAEJ1850_ZERO": {Width: 8, Polynomial: 0x1D, InitValue: 0x00, FinalXorValue: 0x00},
		"AUTOSAR":       {Width: 8, Polynomial: 0x2F, InitValue: 0xFF, FinalXorValue: 0xFF},
		"BLUETOOTH":     {Width: 8, Polynomial: 0xA7, ReverseInput: true, ReverseOutput: true},
		"MAXIM_DOW":     {Width: 8, Polynomial: 0x31, ReverseInput: true, ReverseOutput: true},
		"ITU":           {Width: 8, Polynomial: 0x07, InitValue: 0x00, FinalXorValue: 0x55},
		"ROHC":          {Width: 8, Polynomial: 0x07, InitValue: 0xFF, ReverseInput: true, ReverseOutput: true},
	}

	// CRC16 16位算法家族
	CRC16 = map[string]Configuration{
		"XMODEM":   {Width: 16, Polynomial: 0x1021, InitValue: 0x0000, FinalXorValue: 0x0000},
		"GSM":      {Width: 16, Polynomial: 0x1021, InitValue: 0x0000, FinalXorValue: 0xFFFF},
		"PROFIBUS": {Width: 16, Polynomial: 0x1DCF, InitValue: 0xFFFF, FinalXorValue: 0xFFFF},
		"MODBUS":   {Width: 16, Polynomial: 0x8005, InitValue: 0xFFFF, ReverseInput: true, ReverseOutput: true},
		"IBM_3740": {Width: 16, Polynomial: 0x1021, InitValue: 0xFFFF, FinalXorValue: 0x0000},
		"KERMIT":   {Width: 16, Polynomial: 0x1021, ReverseInput: true, ReverseOutput: true},
		"IBM":      {Width: 16, Polynomial: 0x8005, ReverseInput: true, ReverseOutput: true},
		"MAXIM":    {Width: 16, Polynomial: 0x8005, FinalXorValue: 0xFFFF, ReverseInput: true, ReverseOutput: true},
		"USB":      {Width: 16, Polynomial: 0x8005, InitValue: 0xFFFF, FinalXorValue: 0xFFFF, ReverseInput: true, ReverseOutput: true},
		"X25":      {Width: 16, Polynomial: 0x1021, InitValue: 0xFFFF, FinalXorValue: 0xFFFF, ReverseInput: true, ReverseOutput: true},
		"DNP":      {Width: 16, Polynomial: 0x3D65, FinalXorValue: 0xFFFF, ReverseInput: true, ReverseOutput: true},
	}

	// CRC32 32位算法家族
	CRC32 = map[string]Configuration{
		"CRC32":   {Width: 32, Polynomial: 0x04C11DB7, InitValue: 0xFFFFFFFF, FinalXorValue: 0xFFFFFFFF, ReverseInput: true, ReverseOutput: true},
		"AUTOSAR": {Width: 32, Polynomial: 0xF4ACFB13, InitValue: 0xFFFFFFFF, FinalXorValue: 0xFFFFFFFF, ReverseInput: true, ReverseOutput: true},
		"BZIP2":   {Width: 32, Polynomial: 0x04C11DB7, InitValue: 0xFFFFFFFF, FinalXorValue: 0xFFFFFFFF},
		"POSIX":   {Width: 32, Polynomial: 0x04C11DB7, InitValue: 0x00000000, FinalXorValue: 0xFFFFFFFF},
	}

	// CRC64 64位算法家族
	CRC64 = map[string]Configuration{
		"CRC64": {Width: 64, Polynomial: 0x42F0E1EBA9EA3693},
	}
)

// families 家族名到目录的固定映射
var families = map[string]map[string]Configuration{
	"crc8":  CRC8,
	"crc16": CRC16,
	"crc32": CRC32,
	"crc64": CRC64,
}

// LookupAlgorithm 按名称查找预定义算法
// 支持家族限定名（如"crc16/modbus"）和无歧义的裸名（如"modbus"）
// 名称匹配不区分大小写
func LookupAlgorithm(name string) (Configuration, bool) {
	config, ok := algorithmRegistry[strings.ToLower(strings.TrimSpace(name))]
	return config, ok
}

// AlgorithmNames 返回所有预定义算法的家族限定名，按字典序排列
func AlgorithmNames() []string {
	names := make([]string, 0, len(CRC8)+len(CRC16)+len(CRC32)+len(CRC64))
	for family, catalogue := range families {
		for name := range catalogue {
			names = append(names, family+"/"+strings.ToLower(name))
		}
	}
	sort.Strings(names)
	return names
}

// algorithmRegistry 展平后的算法注册表，init时构建，之后只读
var algorithmRegistry = buildAlgorithmRegistry()

func buildAlgorithmRegistry() map[string]Configuration {
	registry := make(map[string]Configuration)
	ambiguous := make(map[string]bool)
	for family, catalogue := range families {
		for name, config := range catalogue {
			if err := config.Validate(); err != nil {
				panic(fmt.Sprintf("预定义算法%s/%s非法: %v", family, name, err))
			}
			lower := strings.ToLower(name)
			registry[family+"/"+lower] = config

			// 裸名只在全目录唯一时保留，重名的（如autosar）必须带家族前缀
			if ambiguous[lower] {
				continue
			}
			if _, exists := registry[lower]; exists {
				delete(registry, lower)
				ambiguous[lower] = true
				continue
			}
			registry[lower] = config
		}
	}
	return registry
}
