package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q-menu-ai-api/internal/application/menu"
	"q-menu-ai-api/internal/config"
	"q-menu-ai-api/internal/interfaces/http/dto"
	"q-menu-ai-api/pkg/errors"
)

type stubEmbedder struct {
	vec []float64
	err error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return s.vec, s.err
}

type stubSource struct {
	rows []menu.CorpusRow
}

func (s *stubSource) Rows(ctx context.Context) ([]menu.CorpusRow, error) {
	return s.rows, nil
}

type stubStore struct {
	data []byte
}

func (s *stubStore) Read(ctx context.Context) ([]byte, error) {
	if s.data == nil {
		return nil, fmt.Errorf("vector cache not built")
	}
	return s.data, nil
}

func (s *stubStore) Write(ctx context.Context, data []byte) error {
	s.data = data
	return nil
}

func setupRouter(embedder menu.Embedder, store menu.CacheStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	source := &stubSource{rows: []menu.CorpusRow{
		{PromptKey: "sales", DisplayQuestion: "Show sales", SourceLabel: "sales.xlsx"},
		{PromptKey: "stock", DisplayQuestion: "Show stock", SourceLabel: "stock.xlsx"},
		{PromptKey: "orders", DisplayQuestion: "Show orders", SourceLabel: "orders.xlsx"},
	}}
	engine := menu.NewEngine(embedder, source, store, 1)
	h := NewMenuHandler(engine, &config.MenuConfig{
		DefaultCount:     3,
		DefaultThreshold: 0.8,
	})

	r := gin.New()
	r.POST("/v1/menu", h.Questions)
	return r
}

func postMenu(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/menu", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuestionsEmptyInputReturnsMenu(t *testing.T) {
	r := setupRouter(&stubEmbedder{}, &stubStore{})

	w := postMenu(t, r, `{"input":""}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response[dto.MenuResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.Len(t, resp.Data.Menu, 3)
	assert.Empty(t, resp.Data.Question)
	assert.Nil(t, resp.Data.Error)
}

func TestQuestionsMatchPath(t *testing.T) {
	store := &stubStore{}
	cache := &menu.VectorCache{Entries: []menu.VectorEntry{
		{Question: "sales", Vector: []float64{1, 0}},
		{Question: "stock", Vector: []float64{0, 1}},
		{Question: "orders", Vector: []float64{0, -1}},
	}}
	data, err := cache.Encode()
	require.NoError(t, err)
	store.data = data

	// 输入向量与 sales 完全一致
	r := setupRouter(&stubEmbedder{vec: []float64{1, 0}}, store)

	w := postMenu(t, r, `{"input":"show my sales","threshold":0.5}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response[dto.MenuResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Question, 1)
	assert.Equal(t, "Show sales", resp.Data.Question[0].UserQ)
	assert.InDelta(t, 1.0, resp.Data.Question[0].Similarity, 1e-9)
	assert.Empty(t, resp.Data.Menu)
}

func TestQuestionsInvalidBody(t *testing.T) {
	r := setupRouter(&stubEmbedder{}, &stubStore{})

	w := postMenu(t, r, `{"input":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 400, resp.Code)
}

func TestQuestionsEmbeddingFailureMapsToBadGateway(t *testing.T) {
	store := &stubStore{}
	cache := &menu.VectorCache{Entries: []menu.VectorEntry{
		{Question: "sales", Vector: []float64{1, 0}},
		{Question: "stock", Vector: []float64{0, 1}},
		{Question: "orders", Vector: []float64{0, -1}},
	}}
	data, err := cache.Encode()
	require.NoError(t, err)
	store.data = data

	r := setupRouter(&stubEmbedder{err: fmt.Errorf("ollama unreachable")}, store)

	w := postMenu(t, r, `{"input":"show my sales"}`)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.CodeEmbeddingFailed), resp.Error.ErrorCode)
}

func TestQuestionsMissingCacheMapsToInternalError(t *testing.T) {
	r := setupRouter(&stubEmbedder{vec: []float64{1, 0}}, &stubStore{})

	w := postMenu(t, r, `{"input":"show my sales"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.CodeCacheStore), resp.Error.ErrorCode)
}
