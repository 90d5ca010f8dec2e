package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"logstat/internal/client/app"
	"logstat/internal/logging"
)

func main() {
	var cfg app.Config
	flag.StringVar(&cfg.Server, "server", "http://127.0.0.1:8080", "logstat 图表服务地址")
	flag.StringVar(&cfg.IP, "ip", "", "按客户端 IP 查询记录；留空打印汇总")
	flag.IntVar(&cfg.Limit, "limit", 0, "按 IP 查询时返回的最大条数")
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := logging.New("info", "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := app.Run(cfg); err != nil {
		logger.Error("client 失败", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
