package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"logstat/internal/storage"
	"logstat/pkg/model"
)

// Store 直接在内存切片上做聚合，是默认引擎。
type Store struct {
	mu   sync.RWMutex
	rows []model.AccessLog
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context, rows []model.AccessLog) error {
	cp := make([]model.AccessLog, len(rows))
	copy(cp, rows)
	s.mu.Lock()
	s.rows = cp
	s.mu.Unlock()
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

func (s *Store) TopPages(ctx context.Context, n int) ([]model.PageCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range s.rows {
		if _, ok := counts[r.URL]; !ok {
			order = append(order, r.URL)
		}
		counts[r.URL]++
	}

	out := make([]model.PageCount, 0, len(order))
	for _, u := range order {
		out = append(out, model.PageCount{URL: u, Count: counts[u]})
	}
	// 稳定排序保证同频次按首次出现顺序。
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *Store) ByStatus(ctx context.Context, status int) ([]model.AccessLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.AccessLog, 0)
	for _, r := range s.rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) HourlyTraffic(ctx context.Context) ([]model.HourCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buckets := make(map[int]int)
	for _, r := range s.rows {
		buckets[r.Timestamp.Hour()]++
	}

	out := make([]model.HourCount, 0, len(buckets))
	for h, c := range buckets {
		out = append(out, model.HourCount{Hour: h, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Hour < out[j].Hour
	})
	return out, nil
}

func (s *Store) MeanSize(ctx context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rows) == 0 {
		return math.NaN(), nil
	}
	var sum float64
	for _, r := range s.rows {
		sum += float64(r.Size)
	}
	return sum / float64(len(s.rows)), nil
}

// QueryByIP 返回该 IP 的记录，按时间倒序。
func (s *Store) QueryByIP(ctx context.Context, ip string, limit int) ([]model.AccessLog, error) {
	if limit <= 0 {
		limit = storage.DefaultQueryLimit
	}
	s.mu.RLock()
	out := make([]model.AccessLog, 0, 64)
	for _, r := range s.rows {
		if r.IP == ip {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)
