package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/Nicoretti/crc"
)

const version = "1.0.0"

func main() {
	// 命令行参数解析
	var (
		configFile = flag.String("config", "", "自定义算法配置文件路径(YAML)")
		optimized  = flag.Bool("optimized", false, "使用查表加速引擎")
		showStats  = flag.Bool("stats", false, "命令结束后打印运行指标")
		showVer    = flag.Bool("version", false, "显示版本信息")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "用法: crc [选项] <命令> [参数...]\n\n选项:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n输入 'crc help' 查看命令列表\n")
	}
	flag.Parse()

	// 显示版本信息
	if *showVer {
		fmt.Printf("crc v%s - CRC校验和命令行工具集\n", version)
		fmt.Printf("Go版本: %s\n", runtime.Version())
		return
	}

	// 加载自定义算法配置
	custom := map[string]crc.Configuration{}
	if *configFile != "" {
		loaded, err := crc.LoadAlgorithms(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(1)
		}
		custom = loaded
	}

	cli := crc.NewCLI(custom, *optimized, *showStats)
	os.Exit(cli.Run(flag.Args()))
}
