package crc

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration CRC算法配置，构造后不可变
// 同一配置可被任意数量的寄存器/计算器共享
type Configuration struct {
	Width         uint   // 校验和位宽，必须为8的正整数倍且不超过64
	Polynomial    uint64 // 生成多项式
	InitValue     uint64 // 寄存器初始值
	FinalXorValue uint64 // digest时施加的最终异或值
	ReverseInput  bool   // 输入字节逐个按位反转
	ReverseOutput bool   // 输出前对整个寄存器按位反转
}

// NewConfiguration 创建并校验CRC配置，所有整数字段按宽度掩码
func NewConfiguration(width uint, polynomial, initValue, finalXorValue uint64, reverseInput, reverseOutput bool) (Configuration, error) {
	config := Configuration{
		Width:         width,
		Polynomial:    polynomial,
		InitValue:     initValue,
		FinalXorValue: finalXorValue,
		ReverseInput:  reverseInput,
		ReverseOutput: reverseOutput,
	}
	if err := config.Validate(); err != nil {
		return Configuration{}, err
	}
	return config, nil
}

// Validate 校验配置是否合法
func (c Configuration) Validate() error {
	if c.Width == 0 || c.Width%8 != 0 {
		return fmt.Errorf("%w: 宽度%d不是8的正整数倍", ErrInvalidConfiguration, c.Width)
	}
	if c.Width > 64 {
		return fmt.Errorf("%w: 宽度%d超过64位上限", ErrInvalidConfiguration, c.Width)
	}
	mask := c.bitmask()
	if c.Polynomial&^mask != 0 {
		return fmt.Errorf("%w: 多项式0x%X超出%d位范围", ErrInvalidConfiguration, c.Polynomial, c.Width)
	}
	if c.InitValue&^mask != 0 {
		return fmt.Errorf("%w: 初始值0x%X超出%d位范围", ErrInvalidConfiguration, c.InitValue, c.Width)
	}
	if c.FinalXorValue&^mask != 0 {
		return fmt.Errorf("%w: 最终异或值0x%X超出%d位范围", ErrInvalidConfiguration, c.FinalXorValue, c.Width)
	}
	return nil
}

// bitmask 返回宽度对应的位掩码
func (c Configuration) bitmask() uint64 {
	return ^uint64(0) >> (64 - c.Width)
}

// topbit 返回宽度内最高位的掩码
func (c Configuration) topbit() uint64 {
	return 1 << (c.Width - 1)
}

// HexDigits 返回按宽度渲染一个值所需的十六进制位数
func (c Configuration) HexDigits() int {
	return int(c.Width+3) / 4
}

// algorithmSpec 自定义算法文件中的单个算法条目
// 数值字段使用字符串形式，支持0x前缀的十六进制写法
type algorithmSpec struct {
	Width         uint   `yaml:"width"`
	Polynomial    string `yaml:"polynomial"`
	InitValue     string `yaml:"init_value"`
	FinalXorValue string `yaml:"final_xor_value"`
	ReverseInput  bool   `yaml:"reverse_input"`
	ReverseOutput bool   `yaml:"reverse_output"`
}

// algorithmsFile 自定义算法配置文件的顶层结构
type algorithmsFile struct {
	Algorithms map[string]algorithmSpec `yaml:"algorithms"`
}

// LoadAlgorithms 从YAML文件加载自定义算法配置
// 每个条目都会经过NewConfiguration的完整校验
func LoadAlgorithms(path string) (map[string]Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取算法配置文件失败: %w", err)
	}

	var file algorithmsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析算法配置文件失败: %w", err)
	}

	algorithms := make(map[string]Configuration, len(file.Algorithms))
	for name, spec := range file.Algorithms {
		config, err := spec.toConfiguration()
		if err != nil {
			return nil, fmt.Errorf("算法%q配置非法: %w", name, err)
		}
		algorithms[strings.ToLower(name)] = config
	}
	return algorithms, nil
}

func (s algorithmSpec) toConfiguration() (Configuration, error) {
	polynomial, err := parseNumericValue(s.Polynomial)
	if err != nil {
		return Configuration{}, fmt.Errorf("多项式%q无法解析: %w", s.Polynomial, err)
	}
	initValue, err := parseNumericValue(s.InitValue)
	if err != nil {
		return Configuration{}, fmt.Errorf("初始值%q无法解析: %w", s.InitValue, err)
	}
	finalXor, err := parseNumericValue(s.FinalXorValue)
	if err != nil {
		return Configuration{}, fmt.Errorf("最终异或值%q无法解析: %w", s.FinalXorValue, err)
	}
	return NewConfiguration(s.Width, polynomial, initValue, finalXor, s.ReverseInput, s.ReverseOutput)
}

// parseNumericValue 解析配置文件中的数值，空串视为0，支持0x/0o/0b前缀
func parseNumericValue(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 0, 64)
}
