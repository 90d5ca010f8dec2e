package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"logstat/internal/analyzer/input"
	"logstat/pkg/model"
)

// 只锚定行首：combined 格式行尾的 referer/user-agent 不影响匹配。
var linePattern = regexp.MustCompile(`^(\S+)\s+-\s+-\s+\[(.*?)\]\s+"(.*?)"\s+(\d{3})\s+(\d+|-)`)

const maxLineSize = 1 << 20

type Stats struct {
	Lines   int `json:"lines"`
	Matched int `json:"matched"`
	Skipped int `json:"skipped"`
}

// ParseFile 打开 path（支持压缩格式与 "-"）并解析。
func ParseFile(path string) (*model.Table, Stats, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer rc.Close()
	return Parse(rc)
}

// Parse 逐行解析访问日志。不匹配的行直接跳过；请求字段不是恰好三段时返回错误。
// 解析结束后校验必需列，缺列时返回 *model.MissingColumnsError。
func Parse(r io.Reader) (*model.Table, Stats, error) {
	var st Stats
	rows := make([]model.AccessLog, 0, 1024)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		st.Lines++
		rec, ok, err := parseLine(sc.Text())
		if err != nil {
			return nil, st, fmt.Errorf("第 %d 行：%w", st.Lines, err)
		}
		if !ok {
			st.Skipped++
			continue
		}
		st.Matched++
		rows = append(rows, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, st, fmt.Errorf("读取日志失败：%w", err)
	}

	t := model.NewTable(rows)
	if err := model.Validate(t); err != nil {
		return nil, st, err
	}
	return t, st, nil
}

func parseLine(line string) (model.AccessLog, bool, error) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return model.AccessLog{}, false, nil
	}
	ip, rawTime, request, rawStatus, rawSize := m[1], m[2], m[3], m[4], m[5]

	method, url, err := splitRequest(request)
	if err != nil {
		return model.AccessLog{}, false, err
	}

	status, err := strconv.Atoi(rawStatus)
	if err != nil {
		return model.AccessLog{}, false, fmt.Errorf("状态码非法 %q：%w", rawStatus, err)
	}

	var size int64
	if rawSize != "-" {
		size, err = strconv.ParseInt(rawSize, 10, 64)
		if err != nil {
			return model.AccessLog{}, false, fmt.Errorf("响应大小非法 %q：%w", rawSize, err)
		}
	}

	return model.AccessLog{
		IP:      ip,
		RawTime: rawTime,
		Method:  method,
		URL:     url,
		Status:  status,
		Size:    size,
	}, true, nil
}

// splitRequest 把 "GET /path HTTP/1.1" 拆成 method 与 url，协议只参与校验。
func splitRequest(request string) (method string, url string, err error) {
	parts := strings.Fields(request)
	if len(parts) != 3 {
		return "", "", fmt.Errorf("请求行 %q 应为 3 段，实际 %d 段", request, len(parts))
	}
	return parts[0], parts[1], nil
}
