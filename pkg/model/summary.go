package model

import (
	"encoding/json"
	"math"
)

type PageCount struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Summary 是一次分析的汇总结果。
type Summary struct {
	Rows          int         `json:"rows"`
	TopPages      []PageCount `json:"top_pages"`
	NotFound      int         `json:"not_found"`
	HourlyTraffic []HourCount `json:"hourly_traffic"`
	// MeanSize 在没有记录时为 NaN，JSON 中表示为 null。
	MeanSize float64 `json:"-"`
}

type summaryJSON struct {
	Rows          int         `json:"rows"`
	TopPages      []PageCount `json:"top_pages"`
	NotFound      int         `json:"not_found"`
	HourlyTraffic []HourCount `json:"hourly_traffic"`
	MeanSize      *float64    `json:"mean_size"`
}

func (s Summary) MarshalJSON() ([]byte, error) {
	out := summaryJSON{
		Rows:          s.Rows,
		TopPages:      s.TopPages,
		NotFound:      s.NotFound,
		HourlyTraffic: s.HourlyTraffic,
	}
	if !math.IsNaN(s.MeanSize) && !math.IsInf(s.MeanSize, 0) {
		v := s.MeanSize
		out.MeanSize = &v
	}
	return json.Marshal(out)
}

func (s *Summary) UnmarshalJSON(b []byte) error {
	var in summaryJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	s.Rows = in.Rows
	s.TopPages = in.TopPages
	s.NotFound = in.NotFound
	s.HourlyTraffic = in.HourlyTraffic
	s.MeanSize = math.NaN()
	if in.MeanSize != nil {
		s.MeanSize = *in.MeanSize
	}
	return nil
}
