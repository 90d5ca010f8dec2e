package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"logstat/internal/storage"
	"logstat/pkg/model"
)

type Store struct {
	db  *sql.DB
	ins *sql.Stmt
}

// NewStore 打开 SQLite。path 为空时使用内存库，进程结束即丢弃。
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开 SQLite 失败：%w", err)
	}
	// 内存库每个连接各自独立，只能用单连接。
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	ddl := `
CREATE TABLE IF NOT EXISTS access_logs (
	seq    INTEGER,
	ip     TEXT,
	ts     TIMESTAMP,
	hour   INTEGER,
	method TEXT,
	url    TEXT,
	status INTEGER,
	size   INTEGER
);
CREATE INDEX IF NOT EXISTS idx_access_ip     ON access_logs(ip);
CREATE INDEX IF NOT EXISTS idx_access_url    ON access_logs(url);
CREATE INDEX IF NOT EXISTS idx_access_status ON access_logs(status);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("建表失败：%w", err)
	}
	stmt, err := s.db.Prepare(`
INSERT INTO access_logs (
	seq, ip, ts, hour, method, url, status, size
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`)
	if err != nil {
		return fmt.Errorf("准备插入语句失败：%w", err)
	}
	s.ins = stmt
	return nil
}

func (s *Store) Load(ctx context.Context, rows []model.AccessLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败：%w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM access_logs;`); err != nil {
		return fmt.Errorf("清空旧数据失败：%w", err)
	}
	stmt := tx.StmtContext(ctx, s.ins)
	defer stmt.Close()
	for i := range rows {
		r := &rows[i]
		if _, err := stmt.ExecContext(ctx,
			i,
			r.IP,
			r.Timestamp.UTC(),
			r.Timestamp.Hour(),
			r.Method,
			r.URL,
			r.Status,
			r.Size,
		); err != nil {
			return fmt.Errorf("插入失败：%w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败：%w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_logs;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("查询失败：%w", err)
	}
	return n, nil
}

func (s *Store) TopPages(ctx context.Context, n int) ([]model.PageCount, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT url, COUNT(*) AS cnt
FROM access_logs
GROUP BY url
ORDER BY cnt DESC, MIN(seq) ASC
LIMIT ?;
`, n)
	if err != nil {
		return nil, fmt.Errorf("查询失败：%w", err)
	}
	defer rows.Close()
	out := make([]model.PageCount, 0, n)
	for rows.Next() {
		var p model.PageCount
		if err := rows.Scan(&p.URL, &p.Count); err != nil {
			return nil, fmt.Errorf("读取行失败：%w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历结果失败：%w", err)
	}
	return out, nil
}

func (s *Store) ByStatus(ctx context.Context, status int) ([]model.AccessLog, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT ip, ts, method, url, status, size
FROM access_logs
WHERE status = ?
ORDER BY seq;
`, status)
	if err != nil {
		return nil, fmt.Errorf("查询失败：%w", err)
	}
	return scanLogs(rows)
}

func (s *Store) HourlyTraffic(ctx context.Context) ([]model.HourCount, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT hour, COUNT(*) AS cnt
FROM access_logs
GROUP BY hour
ORDER BY hour;
`)
	if err != nil {
		return nil, fmt.Errorf("查询失败：%w", err)
	}
	defer rows.Close()
	out := make([]model.HourCount, 0, 24)
	for rows.Next() {
		var h model.HourCount
		if err := rows.Scan(&h.Hour, &h.Count); err != nil {
			return nil, fmt.Errorf("读取行失败：%w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历结果失败：%w", err)
	}
	return out, nil
}

func (s *Store) MeanSize(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, `SELECT AVG(size) FROM access_logs;`).Scan(&avg); err != nil {
		return 0, fmt.Errorf("查询失败：%w", err)
	}
	if !avg.Valid {
		return math.NaN(), nil
	}
	return avg.Float64, nil
}

func (s *Store) QueryByIP(ctx context.Context, ip string, limit int) ([]model.AccessLog, error) {
	if limit <= 0 {
		limit = storage.DefaultQueryLimit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT ip, ts, method, url, status, size
FROM access_logs
WHERE ip = ?
ORDER BY ts DESC, seq ASC
LIMIT ?;
`, ip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询失败：%w", err)
	}
	return scanLogs(rows)
}

func scanLogs(rows *sql.Rows) ([]model.AccessLog, error) {
	defer rows.Close()
	out := make([]model.AccessLog, 0, 64)
	for rows.Next() {
		var r model.AccessLog
		if err := rows.Scan(
			&r.IP,
			&r.Timestamp,
			&r.Method,
			&r.URL,
			&r.Status,
			&r.Size,
		); err != nil {
			return nil, fmt.Errorf("读取行失败：%w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历结果失败：%w", err)
	}
	return out, nil
}

func (s *Store) Close() error {
	var firstErr error
	if s.ins != nil {
		if err := s.ins.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ storage.Store = (*Store)(nil)
