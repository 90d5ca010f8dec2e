// Package storetest 是 storage.Store 各实现共用的一致性测试。
package storetest

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logstat/internal/storage"
	"logstat/pkg/model"
)

// Factory 为每个子测试返回一个全新的 Store。
type Factory func(t *testing.T) storage.Store

func at(hour, minute int, offsetHours int) time.Time {
	loc := time.FixedZone("", offsetHours*3600)
	return time.Date(2023, time.October, 10, hour, minute, 0, 0, loc)
}

// Fixture 返回测试记录：/b 与 /a 同频次，/b 先出现。
func Fixture() []model.AccessLog {
	return []model.AccessLog{
		{IP: "10.0.0.1", Timestamp: at(13, 0, -7), Method: "GET", URL: "/b", Status: 200, Size: 100},
		{IP: "10.0.0.2", Timestamp: at(13, 5, -7), Method: "GET", URL: "/a", Status: 200, Size: 300},
		{IP: "10.0.0.1", Timestamp: at(14, 0, -7), Method: "GET", URL: "/c", Status: 404, Size: 0},
		{IP: "10.0.0.3", Timestamp: at(14, 30, -7), Method: "GET", URL: "/c", Status: 404, Size: 0},
		{IP: "10.0.0.1", Timestamp: at(23, 59, 0), Method: "POST", URL: "/c", Status: 500, Size: 50},
		{IP: "10.0.0.2", Timestamp: at(1, 0, 2), Method: "GET", URL: "/a", Status: 200, Size: 250},
		{IP: "10.0.0.4", Timestamp: at(1, 15, 2), Method: "GET", URL: "/b", Status: 301, Size: 0},
	}
}

func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	load := func(t *testing.T, rows []model.AccessLog) storage.Store {
		t.Helper()
		s := newStore(t)
		t.Cleanup(func() { _ = s.Close() })
		require.NoError(t, s.Load(ctx, rows))
		return s
	}

	t.Run("Count", func(t *testing.T) {
		s := load(t, Fixture())
		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})

	t.Run("TopPagesOrderAndTies", func(t *testing.T) {
		s := load(t, Fixture())
		top, err := s.TopPages(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []model.PageCount{
			{URL: "/c", Count: 3},
			{URL: "/b", Count: 2},
			{URL: "/a", Count: 2},
		}, top)

		top, err = s.TopPages(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []model.PageCount{{URL: "/c", Count: 3}}, top)
	})

	t.Run("TopPagesCappedAtN", func(t *testing.T) {
		rows := make([]model.AccessLog, 0, 30)
		for i := 0; i < 15; i++ {
			for j := 0; j <= i%4; j++ {
				rows = append(rows, model.AccessLog{
					IP: "10.0.0.1", Timestamp: at(12, j, 0), Method: "GET",
					URL: fmt.Sprintf("/p%02d", i), Status: 200, Size: 1,
				})
			}
		}
		s := load(t, rows)
		top, err := s.TopPages(ctx, 10)
		require.NoError(t, err)
		require.Len(t, top, 10)
		for i := 1; i < len(top); i++ {
			assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
		}
	})

	t.Run("ByStatus", func(t *testing.T) {
		s := load(t, Fixture())
		nf, err := s.ByStatus(ctx, 404)
		require.NoError(t, err)
		require.Len(t, nf, 2)
		assert.Equal(t, "10.0.0.1", nf[0].IP)
		assert.Equal(t, "10.0.0.3", nf[1].IP)
		assert.True(t, nf[0].Timestamp.Equal(at(14, 0, -7)))

		none, err := s.ByStatus(ctx, 418)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("HourlyTrafficUsesRecordOffset", func(t *testing.T) {
		s := load(t, Fixture())
		hourly, err := s.HourlyTraffic(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.HourCount{
			{Hour: 1, Count: 2},
			{Hour: 13, Count: 2},
			{Hour: 14, Count: 2},
			{Hour: 23, Count: 1},
		}, hourly)

		sum := 0
		for _, h := range hourly {
			sum += h.Count
		}
		assert.Equal(t, len(Fixture()), sum)
	})

	t.Run("MeanSize", func(t *testing.T) {
		s := load(t, Fixture())
		mean, err := s.MeanSize(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 700.0/7.0, mean, 1e-9)
	})

	t.Run("EmptyStore", func(t *testing.T) {
		s := load(t, nil)
		mean, err := s.MeanSize(ctx)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(mean))

		top, err := s.TopPages(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, top)

		hourly, err := s.HourlyTraffic(ctx)
		require.NoError(t, err)
		assert.Empty(t, hourly)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("LoadReplaces", func(t *testing.T) {
		s := load(t, Fixture())
		require.NoError(t, s.Load(ctx, Fixture()[:2]))
		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("QueryByIP", func(t *testing.T) {
		s := load(t, Fixture())
		logs, err := s.QueryByIP(ctx, "10.0.0.1", 10)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		// 10.0.0.1 的记录按时间倒序：23:59Z、21:00Z、20:00Z
		assert.Equal(t, "POST", logs[0].Method)
		assert.Equal(t, "/c", logs[1].URL)
		assert.Equal(t, "/b", logs[2].URL)

		logs, err = s.QueryByIP(ctx, "10.0.0.1", 1)
		require.NoError(t, err)
		assert.Len(t, logs, 1)

		logs, err = s.QueryByIP(ctx, "192.168.9.9", 0)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}
