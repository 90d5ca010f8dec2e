package storage

import (
	"context"

	"logstat/pkg/model"
)

// Store 保存清洗后的记录并提供聚合查询。三种实现（memory/duckdb/sqlite）结果必须一致：
// TopPages 同频次按首次出现顺序；HourlyTraffic 按小时升序且省略零值；
// MeanSize 在无记录时返回 NaN。
type Store interface {
	// Load 用 rows 替换已有内容，rows 的顺序即首次出现顺序。
	Load(ctx context.Context, rows []model.AccessLog) error
	Count(ctx context.Context) (int, error)
	TopPages(ctx context.Context, n int) ([]model.PageCount, error)
	ByStatus(ctx context.Context, status int) ([]model.AccessLog, error)
	HourlyTraffic(ctx context.Context) ([]model.HourCount, error)
	MeanSize(ctx context.Context) (float64, error)
	QueryByIP(ctx context.Context, ip string, limit int) ([]model.AccessLog, error)
	Close() error
}

// DefaultQueryLimit 是 QueryByIP 在 limit<=0 时使用的条数。
const DefaultQueryLimit = 200
