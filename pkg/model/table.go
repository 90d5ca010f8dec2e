package model

import (
	"fmt"
	"sort"
	"strings"
)

// 列名与 AccessLog 的 JSON 字段一致。
const (
	ColumnIP        = "ip"
	ColumnTimestamp = "timestamp"
	ColumnMethod    = "method"
	ColumnURL       = "url"
	ColumnStatus    = "status"
	ColumnSize      = "size"
)

// RequiredColumns 是解析结果必须具备的列。
var RequiredColumns = []string{
	ColumnIP,
	ColumnTimestamp,
	ColumnMethod,
	ColumnURL,
	ColumnStatus,
	ColumnSize,
}

// Table 是在解析、清洗、聚合各阶段之间传递的记录集合。
type Table struct {
	Rows []AccessLog
}

func NewTable(rows []AccessLog) *Table {
	return &Table{Rows: rows}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Columns 返回表中存在的列。空表没有任何列。
func (t *Table) Columns() []string {
	if t.Len() == 0 {
		return nil
	}
	out := make([]string, len(RequiredColumns))
	copy(out, RequiredColumns)
	return out
}

// MissingColumns 返回 t 缺少的必需列，按字母序排列。
func MissingColumns(t *Table) []string {
	present := make(map[string]struct{})
	for _, c := range t.Columns() {
		present[c] = struct{}{}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	sort.Strings(missing)
	return missing
}

// MissingColumnsError 表示解析结果缺少必需列，流水线应在清洗前终止。
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("缺少必需的列：%s", strings.Join(e.Columns, ", "))
}

// Validate 在缺少必需列时返回 *MissingColumnsError。
func Validate(t *Table) error {
	if missing := MissingColumns(t); len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}
