package model

import "time"

// AccessLog 是访问日志中的一行请求记录。
type AccessLog struct {
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	Status    int       `json:"status"`
	Size      int64     `json:"size"`

	// RawTime 保留解析阶段得到的原始时间文本，清洗阶段据此生成 Timestamp。
	RawTime string `json:"-"`
}
