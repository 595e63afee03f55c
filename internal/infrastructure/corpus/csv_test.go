package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"

	"q-menu-ai-api/internal/config"
)

func writeCorpusFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "question.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRowsPreservesFileOrder(t *testing.T) {
	path := writeCorpusFile(t, "gpt_q,user_q,files\n"+
		"sales,Show sales,sales.xlsx\n"+
		"stock,Show stock,stock.xlsx\n"+
		"orders,Show orders,orders.xlsx\n")

	source := NewCSVSource(&config.CorpusConfig{Path: path})
	rows, err := source.Rows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "sales", rows[0].PromptKey)
	assert.Equal(t, "Show stock", rows[1].DisplayQuestion)
	assert.Equal(t, "orders.xlsx", rows[2].SourceLabel)
}

func TestRowsIgnoresExtraColumns(t *testing.T) {
	// 列顺序不固定，额外列不影响解析
	path := writeCorpusFile(t, "id,user_q,notes,gpt_q,files\n"+
		"1,Show sales,internal,sales,sales.xlsx\n")

	source := NewCSVSource(&config.CorpusConfig{Path: path})
	rows, err := source.Rows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "sales", rows[0].PromptKey)
	assert.Equal(t, "Show sales", rows[0].DisplayQuestion)
	assert.Equal(t, "sales.xlsx", rows[0].SourceLabel)
}

func TestRowsMissingRequiredColumn(t *testing.T) {
	path := writeCorpusFile(t, "gpt_q,user_q\nsales,Show sales\n")

	source := NewCSVSource(&config.CorpusConfig{Path: path})
	_, err := source.Rows(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "files")
}

func TestRowsMissingFile(t *testing.T) {
	source := NewCSVSource(&config.CorpusConfig{
		Path: filepath.Join(t.TempDir(), "absent.csv"),
	})
	_, err := source.Rows(context.Background())
	require.Error(t, err)
}

func TestRowsNonUTF8Encoding(t *testing.T) {
	// big5 编码的语料文件经声明编码解码后正常读出
	content := "gpt_q,user_q,files\n銷售,顯示銷售,sales.xlsx\n"
	encoded, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte(content))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "question.csv")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	source := NewCSVSource(&config.CorpusConfig{Path: path, Encoding: "big5"})
	rows, err := source.Rows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "銷售", rows[0].PromptKey)
	assert.Equal(t, "顯示銷售", rows[0].DisplayQuestion)
}
