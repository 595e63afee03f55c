// Package corpus 提供问题语料的 CSV 读取
package corpus

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"q-menu-ai-api/internal/application/menu"
	"q-menu-ai-api/internal/config"
	"q-menu-ai-api/internal/infrastructure/textenc"
)

// 语料 CSV 的必备列名，与既有数据文件保持兼容
const (
	columnPromptKey   = "gpt_q"
	columnDisplay     = "user_q"
	columnSourceLabel = "files"
)

// CSVSource 基于 CSV 文件的语料来源
type CSVSource struct {
	path     string
	encoding string
}

// NewCSVSource 创建 CSV 语料来源
func NewCSVSource(cfg *config.CorpusConfig) *CSVSource {
	return &CSVSource{
		path:     cfg.Path,
		encoding: cfg.Encoding,
	}
}

// Path 返回语料文件路径
func (s *CSVSource) Path() string {
	return s.path
}

// Rows 读取全部语料行，保持文件中的顺序
func (s *CSVSource) Rows(ctx context.Context) ([]menu.CorpusRow, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file %s: %w", s.path, err)
	}
	decoded, err := textenc.Decode(raw, s.encoding)
	if err != nil {
		return nil, err
	}
	return parseRows(bytes.NewReader(decoded))
}

// parseRows 解析 CSV 内容
// 首行为表头，必须包含 gpt_q / user_q / files 三列；额外列被忽略
func parseRows(r io.Reader) ([]menu.CorpusRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[name] = i
	}
	for _, required := range []string{columnPromptKey, columnDisplay, columnSourceLabel} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("corpus is missing required column %q", required)
		}
	}

	var rows []menu.CorpusRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus record: %w", err)
		}
		row := menu.CorpusRow{}
		if idx := columns[columnPromptKey]; idx < len(record) {
			row.PromptKey = record[idx]
		}
		if idx := columns[columnDisplay]; idx < len(record) {
			row.DisplayQuestion = record[idx]
		}
		if idx := columns[columnSourceLabel]; idx < len(record) {
			row.SourceLabel = record[idx]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
