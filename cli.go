package crc

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CLI颜色定义
const (
	CliReset  = "\033[0m"
	CliBold   = "\033[1m"
	CliRed    = "\033[31m"
	CliGreen  = "\033[32m"
	CliYellow = "\033[33m"
	CliCyan   = "\033[36m"
)

// 表格边框字符
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
	BoxTeeDown     = "┬"
	BoxTeeUp       = "┴"
	BoxTeeLeft     = "┤"
	BoxTeeRight    = "├"
	BoxCross       = "┼"
)

// 命令处理器类型定义
type commandHandler func(*CLI, []string) error

// commandRegistry 全局命令注册表
var commandRegistry = map[string]commandHandler{
	"table":    (*CLI).handleTable,
	"checksum": (*CLI).handleChecksum,
	"sum":      (*CLI).handleChecksum,
	"verify":   (*CLI).handleVerify,
	"list":     (*CLI).handleList,
	"ls":       (*CLI).handleList,
	"help":     (*CLI).handleHelp,
	"h":        (*CLI).handleHelp,
	"?":        (*CLI).handleHelp,
}

// CLI crc命令行工具的状态与行为
type CLI struct {
	// custom 配置文件注册的自定义算法，查找时优先于预定义目录
	custom    map[string]Configuration
	optimized bool
	showStats bool
	out       io.Writer
	errOut    io.Writer
	stdin     io.Reader
}

// NewCLI 创建命令行处理器
func NewCLI(custom map[string]Configuration, optimized, showStats bool) *CLI {
	return &CLI{
		custom:    custom,
		optimized: optimized,
		showStats: showStats,
		out:       os.Stdout,
		errOut:    os.Stderr,
		stdin:     os.Stdin,
	}
}

// Run 分发并执行子命令，返回进程退出码
func (c *CLI) Run(args []string) int {
	if len(args) == 0 {
		_ = c.handleHelp(nil)
		return 1
	}

	handler, ok := commandRegistry[strings.ToLower(args[0])]
	if !ok {
		fmt.Fprintf(c.errOut, "%s未知命令: %s (输入 'help' 获取帮助)%s\n", CliRed, args[0], CliReset)
		return 1
	}
	if err := handler(c, args[1:]); err != nil {
		fmt.Fprintf(c.errOut, "%s错误: %v%s\n", CliRed, err, CliReset)
		return 1
	}
	if c.showStats {
		c.printStats()
	}
	return 0
}

// handleTable 生成并打印256项CRC查找表
func (c *CLI) handleTable(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("用法: table <width> <polynomial>")
	}
	width, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return fmt.Errorf("宽度%q无法解析: %w", args[0], err)
	}
	polynomial, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return fmt.Errorf("多项式%q无法解析: %w", args[1], err)
	}

	table, err := CreateLookupTable(uint(width), polynomial)
	if err != nil {
		return err
	}

	const columns = 8
	digits := int(width+3) / 4
	for row := 0; row < len(table); row += columns {
		cells := make([]string, 0, columns)
		for _, value := range table[row : row+columns] {
			cells = append(cells, fmt.Sprintf("0x%0*X", digits, value))
		}
		fmt.Fprintln(c.out, strings.Join(cells, " "))
	}
	return nil
}

// handleChecksum 计算文件或标准输入的校验和
func (c *CLI) handleChecksum(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("用法: checksum <algorithm> [file]")
	}
	config, err := c.resolveAlgorithm(args[0])
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 2 {
		path = args[1]
	}
	checksum, err := c.checksumInput(config, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "0x%0*X\n", config.HexDigits(), checksum)
	return nil
}

// handleVerify 校验文件或标准输入的校验和是否等于期望值
func (c *CLI) handleVerify(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("用法: verify <algorithm> <expected> [file]")
	}
	config, err := c.resolveAlgorithm(args[0])
	if err != nil {
		return err
	}
	expected, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return fmt.Errorf("期望值%q无法解析: %w", args[1], err)
	}

	path := ""
	if len(args) == 3 {
		path = args[2]
	}
	checksum, err := c.checksumInput(config, path)
	if err != nil {
		return err
	}
	GlobalMetrics.recordVerify(checksum == expected)
	if checksum != expected {
		return fmt.Errorf("校验失败: 期望0x%0*X, 实际0x%0*X",
			config.HexDigits(), expected, config.HexDigits(), checksum)
	}
	fmt.Fprintf(c.out, "%s✅ 校验通过 0x%0*X%s\n", CliGreen, config.HexDigits(), checksum, CliReset)
	return nil
}

// handleList 列出所有可用算法
func (c *CLI) handleList(args []string) error {
	type row struct {
		name   string
		config Configuration
	}
	rows := make([]row, 0, len(c.custom)+len(AlgorithmNames()))
	for _, name := range AlgorithmNames() {
		config, _ := LookupAlgorithm(name)
		rows = append(rows, row{name: name, config: config})
	}
	for name, config := range c.custom {
		rows = append(rows, row{name: name + " (自定义)", config: config})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	nameWidth := len("算法")
	for _, r := range rows {
		if len(r.name) > nameWidth {
			nameWidth = len(r.name)
		}
	}

	line := func(left, mid, right string) string {
		parts := []string{
			strings.Repeat(BoxHorizontal, nameWidth+2),
			strings.Repeat(BoxHorizontal, 6),
			strings.Repeat(BoxHorizontal, 20),
			strings.Repeat(BoxHorizontal, 20),
			strings.Repeat(BoxHorizontal, 20),
			strings.Repeat(BoxHorizontal, 10),
			strings.Repeat(BoxHorizontal, 10),
		}
		return left + strings.Join(parts, mid) + right
	}

	fmt.Fprintln(c.out, line(BoxTopLeft, BoxTeeDown, BoxTopRight))
	fmt.Fprintf(c.out, "%s %-*s %s %4s %s %18s %s %18s %s %18s %s %8s %s %8s %s\n",
		BoxVertical, nameWidth, "算法", BoxVertical, "宽度", BoxVertical, "多项式",
		BoxVertical, "初始值", BoxVertical, "异或值", BoxVertical, "反转入", BoxVertical, "反转出", BoxVertical)
	fmt.Fprintln(c.out, line(BoxTeeRight, BoxCross, BoxTeeLeft))
	for _, r := range rows {
		digits := r.config.HexDigits()
		fmt.Fprintf(c.out, "%s %-*s %s %4d %s %18s %s %18s %s %18s %s %8v %s %8v %s\n",
			BoxVertical, nameWidth, r.name,
			BoxVertical, r.config.Width,
			BoxVertical, fmt.Sprintf("0x%0*X", digits, r.config.Polynomial),
			BoxVertical, fmt.Sprintf("0x%0*X", digits, r.config.InitValue),
			BoxVertical, fmt.Sprintf("0x%0*X", digits, r.config.FinalXorValue),
			BoxVertical, r.config.ReverseInput,
			BoxVertical, r.config.ReverseOutput,
			BoxVertical)
	}
	fmt.Fprintln(c.out, line(BoxBottomLeft, BoxTeeUp, BoxBottomRight))
	return nil
}

// handleHelp 打印帮助信息
func (c *CLI) handleHelp(args []string) error {
	help := []string{
		CliBold + "crc - CRC校验和命令行工具集" + CliReset,
		"",
		CliCyan + "命令:" + CliReset,
		"  table <width> <polynomial>           生成并打印256项查找表",
		"  checksum <algorithm> [file]          计算文件或标准输入的校验和",
		"  verify <algorithm> <expected> [file] 校验数据的校验和是否等于期望值",
		"  list                                 列出所有可用算法",
		"  help                                 显示本帮助",
		"",
		CliCyan + "说明:" + CliReset,
		"  算法名不区分大小写，支持家族限定名（如 crc16/modbus）",
		"  .gz/.zst/.snappy 文件会先解压再计算校验和",
		"  数值参数支持0x前缀的十六进制写法",
	}
	fmt.Fprintln(c.out, strings.Join(help, "\n"))
	return nil
}

// resolveAlgorithm 解析算法名，自定义算法优先于预定义目录
func (c *CLI) resolveAlgorithm(name string) (Configuration, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if config, ok := c.custom[key]; ok {
		return config, nil
	}
	if config, ok := LookupAlgorithm(key); ok {
		return config, nil
	}
	return Configuration{}, fmt.Errorf("未知算法: %s (输入 'list' 查看可用算法)", name)
}

// checksumInput 对文件（可能带压缩）或标准输入计算校验和
func (c *CLI) checksumInput(config Configuration, path string) (uint64, error) {
	calculator, err := NewCalculator(config, c.optimized)
	if err != nil {
		return 0, err
	}

	var source io.Reader = c.stdin
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("打开输入文件失败: %w", err)
		}
		defer file.Close()

		reader, cleanup, err := wrapDecompression(file, compressionByExtension(path))
		if err != nil {
			return 0, err
		}
		defer cleanup()
		source = reader
	}
	return calculator.Checksum(source)
}

// printStats 打印运行指标面板
func (c *CLI) printStats() {
	snapshot := GlobalMetrics.Snapshot()
	fmt.Fprintf(c.errOut, "\n%s📊 运行指标%s\n", CliBold, CliReset)
	fmt.Fprintf(c.errOut, "  计算次数: %d\n", snapshot.TotalChecksums)
	fmt.Fprintf(c.errOut, "  处理数据: %s\n", formatSize(snapshot.TotalBytes))
	fmt.Fprintf(c.errOut, "  校验通过: %d  校验失败: %d\n", snapshot.VerifyHits, snapshot.VerifyMisses)
	fmt.Fprintf(c.errOut, "  建表次数: %d\n", snapshot.TableBuilds)
	fmt.Fprintf(c.errOut, "  运行时间: %v\n", snapshot.Uptime.Round(time.Millisecond))
}
