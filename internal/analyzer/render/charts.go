package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"logstat/pkg/model"
)

const (
	TopPagesTitle = "Top 10 most requested pages"
	TrafficTitle  = "Traffic by hour"
)

// Render 把两张图写成一个 HTML 页面：热门页面横向柱状图、按小时流量折线图。
func Render(w io.Writer, top []model.PageCount, hourly []model.HourCount) error {
	page := components.NewPage()
	page.PageTitle = "logstat"
	page.AddCharts(topPagesChart(top), trafficChart(hourly))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("渲染图表失败：%w", err)
	}
	return nil
}

// HTML 返回渲染好的页面，供 HTTP 服务直接下发。
func HTML(top []model.PageCount, hourly []model.HourCount) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, top, hourly); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func topPagesChart(top []model.PageCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1000px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: TopPagesTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Requests"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "URL"}),
	)

	// 横向柱状图的类目轴自下而上绘制，倒序后访问最多的页面在最上方。
	urls := make([]string, len(top))
	data := make([]opts.BarData, len(top))
	for i, p := range top {
		j := len(top) - 1 - i
		urls[j] = p.URL
		data[j] = opts.BarData{Name: p.URL, Value: p.Count}
	}
	bar.SetXAxis(urls).AddSeries("requests", data)
	bar.XYReversal()
	return bar
}

func trafficChart(hourly []model.HourCount) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1000px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: TrafficTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Requests"}),
	)

	hours := make([]string, len(hourly))
	data := make([]opts.LineData, len(hourly))
	for i, h := range hourly {
		hours[i] = strconv.Itoa(h.Hour)
		data[i] = opts.LineData{Value: h.Count, Symbol: "circle"}
	}
	line.SetXAxis(hours).AddSeries("requests", data)
	return line
}
