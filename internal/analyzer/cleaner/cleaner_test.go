package cleaner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logstat/pkg/model"
)

func raw(ip, ts, method, url string, status int, size int64) model.AccessLog {
	return model.AccessLog{IP: ip, RawTime: ts, Method: method, URL: url, Status: status, Size: size}
}

func sampleTable() *model.Table {
	return model.NewTable([]model.AccessLog{
		raw("127.0.0.1", "10/Oct/2023:13:55:36 -0700", "GET", "/index.html", 200, 1024),
		raw("127.0.0.1", "10/Oct/2023:13:55:36 -0700", "GET", "/index.html", 200, 1024),
		raw("10.0.0.2", "10/Oct/2023:14:01:00 -0700", "GET", "/missing", 404, 0),
		raw("10.0.0.3", "10/Oct/2023:14:02:00 -0700", "GET", "/switch", 101, 0),
		raw("10.0.0.4", "11/Oct/2023:02:00:00 +0000", "POST", "/api", 599, 10),
		raw("10.0.0.5", "11/Oct/2023:02:00:01 +0000", "POST", "/api", 600, 10),
	})
}

func TestCleanConvertsTimestamp(t *testing.T) {
	out, _, err := Clean(sampleTable())
	require.NoError(t, err)
	require.NotZero(t, out.Len())

	ts := out.Rows[0].Timestamp
	want := time.Date(2023, time.October, 10, 13, 55, 36, 0, time.FixedZone("", -7*3600))
	assert.True(t, ts.Equal(want), "got %s", ts)
	_, offset := ts.Zone()
	assert.Equal(t, -7*3600, offset)
	assert.Equal(t, 13, ts.Hour())
}

func TestCleanDropsDuplicatesAndOutOfRange(t *testing.T) {
	in := sampleTable()
	out, st, err := Clean(in)
	require.NoError(t, err)

	assert.Equal(t, Stats{Input: 6, Duplicates: 1, OutOfRange: 2, Output: 3}, st)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, "/index.html", out.Rows[0].URL)
	assert.Equal(t, "/missing", out.Rows[1].URL)
	assert.Equal(t, 599, out.Rows[2].Status)

	for _, r := range out.Rows {
		assert.GreaterOrEqual(t, r.Status, MinStatus)
		assert.LessOrEqual(t, r.Status, MaxStatus)
	}

	// 输入表保持原样
	assert.Equal(t, 6, in.Len())
	assert.True(t, in.Rows[0].Timestamp.IsZero())
}

func TestCleanIsIdempotent(t *testing.T) {
	once, _, err := Clean(sampleTable())
	require.NoError(t, err)
	twice, st, err := Clean(once)
	require.NoError(t, err)

	assert.Zero(t, st.Duplicates)
	assert.Zero(t, st.OutOfRange)
	require.Equal(t, once.Len(), twice.Len())
	for i := range once.Rows {
		a, b := once.Rows[i], twice.Rows[i]
		assert.True(t, a.Timestamp.Equal(b.Timestamp))
		a.Timestamp, b.Timestamp = time.Time{}, time.Time{}
		assert.Equal(t, a, b)
	}
}

func TestCleanSameInstantDifferentOffsetIsDuplicate(t *testing.T) {
	in := model.NewTable([]model.AccessLog{
		raw("10.0.0.1", "10/Oct/2023:13:00:00 +0000", "GET", "/", 200, 1),
		raw("10.0.0.1", "10/Oct/2023:15:00:00 +0200", "GET", "/", 200, 1),
	})
	out, st, err := Clean(in)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, 1, st.Duplicates)
}

func TestCleanRejectsBadTimestamp(t *testing.T) {
	in := model.NewTable([]model.AccessLog{
		raw("10.0.0.1", "10/Oct/2023:13:00:00 +0000", "GET", "/", 200, 1),
		raw("10.0.0.1", "2023-10-10T13:00:00Z", "GET", "/", 200, 1),
	})
	_, _, err := Clean(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2023-10-10T13:00:00Z")
}

func TestCleanEmptyTable(t *testing.T) {
	out, st, err := Clean(model.NewTable(nil))
	require.NoError(t, err)
	assert.Zero(t, out.Len())
	assert.Zero(t, st.Output)
}
