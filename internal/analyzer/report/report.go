package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"logstat/internal/analyzer/cleaner"
	"logstat/internal/analyzer/parser"
	"logstat/pkg/model"
)

// Report 汇总一次运行：各阶段计数与最终统计。
type Report struct {
	RunID       string        `json:"run_id"`
	Input       string        `json:"input"`
	Engine      string        `json:"engine"`
	GeneratedAt time.Time     `json:"generated_at"`
	Parse       parser.Stats  `json:"parse"`
	Clean       cleaner.Stats `json:"clean"`
	Summary     model.Summary `json:"summary"`
}

func New(input, engine string) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Input:       input,
		Engine:      engine,
		GeneratedAt: time.Now().UTC(),
	}
}

// WriteJSON 把报告写到 path。
func (r *Report) WriteJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建报告文件失败：%w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("写入报告失败：%w", err)
	}
	return nil
}

// PrintSummary 以表格形式输出热门页面、404 数量与平均响应大小。
func PrintSummary(w io.Writer, s model.Summary) {
	fmt.Fprintln(w, "Top 10 pages:")
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"#", "URL", "Requests"})
	t.SetAutoWrapText(false)
	t.SetRowLine(false)
	for i, p := range s.TopPages {
		t.Append([]string{
			strconv.Itoa(i + 1),
			p.URL,
			strconv.Itoa(p.Count),
		})
	}
	t.Render()

	fmt.Fprintf(w, "\n404 errors: %d\n", s.NotFound)
	fmt.Fprintf(w, "\nAverage response size: %.2f bytes\n", s.MeanSize)
}

// PrintTraffic 输出按小时的请求数。
func PrintTraffic(w io.Writer, hourly []model.HourCount) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Hour", "Requests"})
	t.SetAutoWrapText(false)
	for _, h := range hourly {
		t.Append([]string{
			fmt.Sprintf("%02d", h.Hour),
			strconv.Itoa(h.Count),
		})
	}
	t.Render()
}
