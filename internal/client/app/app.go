package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"logstat/internal/analyzer/report"
	"logstat/pkg/model"
)

// Run 向 logstat 图表服务查询。指定 IP 时列出该 IP 的记录，否则打印汇总。
func Run(cfg Config) error {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	u, err := url.Parse(cfg.Server)
	if err != nil {
		return fmt.Errorf("server 参数非法：%w", err)
	}
	if cfg.IP != "" {
		u.Path = "/api/v1/query"
		q := u.Query()
		q.Set("ip", cfg.IP)
		if cfg.Limit > 0 {
			q.Set("limit", strconv.Itoa(cfg.Limit))
		}
		u.RawQuery = q.Encode()
	} else {
		u.Path = "/api/v1/summary"
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(u.String())
	if err != nil {
		return fmt.Errorf("请求失败：%w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("查询失败：status=%s body=%s", resp.Status, string(b))
	}

	if cfg.IP != "" {
		var rows []model.AccessLog
		if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
			return fmt.Errorf("解析响应 JSON 失败：%w", err)
		}
		renderTable(out, rows)
		return nil
	}

	var summary model.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return fmt.Errorf("解析响应 JSON 失败：%w", err)
	}
	report.PrintSummary(out, summary)
	fmt.Fprintln(out, "\nTraffic by hour:")
	report.PrintTraffic(out, summary.HourlyTraffic)
	return nil
}

func renderTable(w io.Writer, rows []model.AccessLog) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Time", "IP", "Method", "URL", "Status", "Size"})
	t.SetAutoWrapText(false)
	t.SetRowLine(false)

	for _, r := range rows {
		t.Append([]string{
			r.Timestamp.Format(time.RFC3339),
			r.IP,
			r.Method,
			r.URL,
			strconv.Itoa(r.Status),
			strconv.FormatInt(r.Size, 10),
		})
	}
	t.Render()
}
