package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q-menu-ai-api/internal/config"
)

func TestEmbedSuccess(t *testing.T) {
	var gotPath string
	var gotReq embedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float64{{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{
		Endpoint: server.URL,
		Model:    "all-minilm",
	})

	vec, err := client.Embed(context.Background(), "show sales")

	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
	// 端点未带路径时补上默认路径
	assert.Equal(t, "/api/embed", gotPath)
	assert.Equal(t, "all-minilm", gotReq.Model)
	assert.Equal(t, []string{"show sales"}, gotReq.Input)
}

func TestEmbedCustomPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float64{{1}},
		})
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{
		Endpoint: server.URL + "/v1/embeddings",
	})

	_, err := client.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "/v1/embeddings", gotPath)
}

func TestEmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{Endpoint: server.URL})
	_, err := client.Embed(context.Background(), "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
}

func TestEmbedEmptyEmbeddings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{})
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{Endpoint: server.URL})
	_, err := client.Embed(context.Background(), "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no embeddings")
}

func TestEmbedEmptyEndpoint(t *testing.T) {
	client := NewClient(&config.EmbeddingConfig{})
	_, err := client.Embed(context.Background(), "text")
	require.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(&config.EmbeddingConfig{Endpoint: "http://localhost:11434"})
	assert.Equal(t, "all-minilm", client.model)
	assert.NotNil(t, client.httpClient)
}
