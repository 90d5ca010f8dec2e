package aggregate

import (
	"context"
	"fmt"

	"logstat/internal/storage"
	"logstat/pkg/model"
)

const (
	TopN           = 10
	NotFoundStatus = 404
)

// Result 是聚合阶段的全部产出。NotFound 保留完整的 404 子集，汇总里只用到数量。
type Result struct {
	Summary  model.Summary
	NotFound []model.AccessLog
}

// Analyze 在已 Load 的 store 上计算汇总。
func Analyze(ctx context.Context, store storage.Store) (*Result, error) {
	rows, err := store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计记录数失败：%w", err)
	}
	top, err := store.TopPages(ctx, TopN)
	if err != nil {
		return nil, fmt.Errorf("统计热门页面失败：%w", err)
	}
	notFound, err := store.ByStatus(ctx, NotFoundStatus)
	if err != nil {
		return nil, fmt.Errorf("查询 404 记录失败：%w", err)
	}
	hourly, err := store.HourlyTraffic(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计小时流量失败：%w", err)
	}
	mean, err := store.MeanSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("计算平均响应大小失败：%w", err)
	}

	return &Result{
		Summary: model.Summary{
			Rows:          rows,
			TopPages:      top,
			NotFound:      len(notFound),
			HourlyTraffic: hourly,
			MeanSize:      mean,
		},
		NotFound: notFound,
	}, nil
}
