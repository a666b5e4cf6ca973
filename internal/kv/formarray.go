package kv

import (
	"errors"
	"strings"
)

// ErrBinaryContent is returned when imported content is not plain text.
var ErrBinaryContent = errors.New("binary content is not supported")

// FromMapping produces one row per entry in insertion order.
// An empty or nil mapping yields a single blank row so there is always something to edit.
func FromMapping(m *Mapping) Rows {
	if m.Len() == 0 {
		return Rows{{}}
	}
	rows := make(Rows, 0, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		rows = append(rows, Row{Key: k, Value: v})
	}
	return rows
}

// ToMapping drops rows with an empty key. Later rows win on duplicate keys.
func ToMapping(rows Rows) *Mapping {
	m := &Mapping{}
	for _, row := range rows {
		if row.Key == "" {
			continue
		}
		m.Set(row.Key, row.Value)
	}
	return m
}

// AddRow inserts a blank row at index. An out of range index appends.
func AddRow(rows Rows, index int) Rows {
	if index < 0 || index > len(rows) {
		index = len(rows)
	}
	out := make(Rows, 0, len(rows)+1)
	out = append(out, rows[:index]...)
	out = append(out, Row{})
	return append(out, rows[index:]...)
}

// RemoveRow deletes the row at index. An out of range index returns an unchanged copy.
func RemoveRow(rows Rows, index int) Rows {
	out := make(Rows, 0, len(rows))
	for i, row := range rows {
		if i != index {
			out = append(out, row)
		}
	}
	return out
}

// ImportEntry appends a row named after an uploaded file.
func ImportEntry(rows Rows, name, content string) (Rows, error) {
	if isBinary(content) {
		return rows, ErrBinaryContent
	}
	out := make(Rows, 0, len(rows)+1)
	out = append(out, rows...)
	return append(out, Row{Key: name, Value: content}), nil
}

// TextareaRows is the editor height for a value: its line count clamped to [3, 50].
func TextareaRows(content string) int {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	n := strings.Count(content, "\n") + 1
	return min(50, max(n, 3))
}

func isBinary(content string) bool {
	for i := 0; i < len(content); i++ {
		if content[i] > 127 {
			return true
		}
	}
	return false
}
