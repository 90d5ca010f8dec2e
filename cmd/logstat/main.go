package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"logstat/internal/analyzer/app"
	"logstat/internal/logging"
	"logstat/pkg/model"
)

func main() {
	var override app.Config
	configPath := flag.String("config", "", "YAML 配置文件路径（也可用 LOGSTAT_CONFIG）")
	flag.StringVar(&override.InputPath, "input", "", "访问日志路径，支持 .gz/.zst，- 表示标准输入（默认 access.log）")
	flag.StringVar(&override.Engine, "engine", "", "聚合引擎：memory、duckdb 或 sqlite（默认 memory）")
	flag.StringVar(&override.DBPath, "db", "", "duckdb/sqlite 数据库文件路径，留空使用内存库")
	flag.StringVar(&override.ChartsPath, "charts", "", "图表 HTML 输出路径（默认 charts.html）")
	flag.StringVar(&override.ReportPath, "report", "", "JSON 报告输出路径，留空不输出")
	flag.StringVar(&override.ListenAddr, "listen", "", "图表服务监听地址，如 :8080；留空不启动")
	flag.StringVar(&override.LogLevel, "log-level", "", "日志级别：debug/info/warn/error")
	flag.StringVar(&override.LogFormat, "log-format", "", "日志格式：console 或 json")
	flag.Parse()

	cfg := app.Default()
	if *configPath == "" {
		*configPath = os.Getenv("LOGSTAT_CONFIG")
	}
	if *configPath != "" {
		fileCfg, err := app.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = app.Merge(cfg, fileCfg)
	}
	cfg = app.FromEnv(cfg)
	cfg = app.Merge(cfg, override)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger, os.Stdout); err != nil {
		var mce *model.MissingColumnsError
		if errors.As(err, &mce) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			logger.Error("logstat 退出", zap.Error(err))
		}
		_ = logger.Sync()
		os.Exit(1)
	}
}
