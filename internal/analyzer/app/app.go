package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"logstat/internal/analyzer/aggregate"
	"logstat/internal/analyzer/cleaner"
	"logstat/internal/analyzer/parser"
	"logstat/internal/analyzer/render"
	"logstat/internal/analyzer/report"
	"logstat/internal/server/api"
	serverapp "logstat/internal/server/app"
	"logstat/internal/storage"
	"logstat/internal/storage/duckdb"
	"logstat/internal/storage/memory"
	"logstat/internal/storage/sqlite"
)

// Run 执行 解析 → 清洗 → 聚合 → 输出/绘图。配置了 ListenAddr 时继续提供图表服务，直到 ctx 结束。
func Run(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("读取并解析日志", zap.String("input", cfg.InputPath))
	table, pst, err := parser.ParseFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("解析日志失败：%w", err)
	}
	logger.Info("解析完成",
		zap.Int("lines", pst.Lines),
		zap.Int("matched", pst.Matched),
		zap.Int("skipped", pst.Skipped))

	logger.Info("清洗数据")
	cleaned, cst, err := cleaner.Clean(table)
	if err != nil {
		return fmt.Errorf("清洗数据失败：%w", err)
	}
	logger.Info("清洗完成",
		zap.Int("duplicates", cst.Duplicates),
		zap.Int("out_of_range", cst.OutOfRange),
		zap.Int("rows", cst.Output))

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("分析数据", zap.String("engine", cfg.Engine))
	if err := store.Load(ctx, cleaned.Rows); err != nil {
		return fmt.Errorf("加载数据失败：%w", err)
	}
	res, err := aggregate.Analyze(ctx, store)
	if err != nil {
		return err
	}
	summary := res.Summary

	report.PrintSummary(out, summary)

	if cfg.ReportPath != "" {
		rep := report.New(cfg.InputPath, cfg.Engine)
		rep.Parse = pst
		rep.Clean = cst
		rep.Summary = summary
		if err := rep.WriteJSON(cfg.ReportPath); err != nil {
			return err
		}
		logger.Info("报告已写入", zap.String("path", cfg.ReportPath), zap.String("run_id", rep.RunID))
	}

	logger.Info("生成图表", zap.String("path", cfg.ChartsPath))
	charts, err := render.HTML(summary.TopPages, summary.HourlyTraffic)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.ChartsPath, charts, 0o644); err != nil {
		return fmt.Errorf("写入图表文件失败：%w", err)
	}

	if cfg.ListenAddr == "" {
		return nil
	}
	return serve(ctx, cfg, api.NewHandlers(store, summary, charts), logger)
}

func openStore(cfg Config) (storage.Store, error) {
	switch strings.ToLower(cfg.Engine) {
	case EngineDuckDB:
		return duckdb.NewStore(cfg.DBPath)
	case EngineSQLite:
		return sqlite.NewStore(cfg.DBPath)
	case EngineMemory, "":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("engine 非法：%q", cfg.Engine)
	}
}

func serve(ctx context.Context, cfg Config, h *api.Handlers, logger *zap.Logger) error {
	srv := serverapp.NewServer(serverapp.Config{ListenAddr: cfg.ListenAddr}, h)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("图表服务已启动，Ctrl+C 退出", zap.String("listen", cfg.ListenAddr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("图表服务运行失败：%w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
