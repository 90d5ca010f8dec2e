package cleaner

import (
	"fmt"
	"time"

	"logstat/pkg/model"
)

// TimeLayout 对应访问日志中的 10/Oct/2023:13:55:36 -0700。
const TimeLayout = "02/Jan/2006:15:04:05 -0700"

const (
	MinStatus = 200
	MaxStatus = 599
)

type Stats struct {
	Input      int `json:"input"`
	Duplicates int `json:"duplicates"`
	OutOfRange int `json:"out_of_range"`
	Output     int `json:"output"`
}

// rowKey 用于整行去重；时间按瞬时值比较。
type rowKey struct {
	ip     string
	ts     int64
	method string
	url    string
	status int
	size   int64
}

// Clean 依次执行：时间转换、整行去重、状态码过滤。返回新表，不修改 t。
// 只要有一条时间无法按 TimeLayout 解析就整体失败。
func Clean(t *model.Table) (*model.Table, Stats, error) {
	st := Stats{Input: t.Len()}
	if t.Len() == 0 {
		return model.NewTable(nil), st, nil
	}

	converted := make([]model.AccessLog, len(t.Rows))
	for i, r := range t.Rows {
		ts, err := time.Parse(TimeLayout, r.RawTime)
		if err != nil {
			return nil, st, fmt.Errorf("时间格式非法 %q：%w", r.RawTime, err)
		}
		r.Timestamp = ts
		converted[i] = r
	}

	seen := make(map[rowKey]struct{}, len(converted))
	deduped := make([]model.AccessLog, 0, len(converted))
	for _, r := range converted {
		k := rowKey{
			ip:     r.IP,
			ts:     r.Timestamp.UnixNano(),
			method: r.Method,
			url:    r.URL,
			status: r.Status,
			size:   r.Size,
		}
		if _, dup := seen[k]; dup {
			st.Duplicates++
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, r)
	}

	out := make([]model.AccessLog, 0, len(deduped))
	for _, r := range deduped {
		if r.Status < MinStatus || r.Status > MaxStatus {
			st.OutOfRange++
			continue
		}
		out = append(out, r)
	}
	st.Output = len(out)

	return model.NewTable(out), st, nil
}
