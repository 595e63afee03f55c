package menu

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"q-menu-ai-api/pkg/errors"
	"q-menu-ai-api/pkg/logger"
	"q-menu-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("menu.engine")

// AdvisoryMessage 无匹配时附带的提示文字
const AdvisoryMessage = "input not understood, please try again."

// Engine 语义匹配选单引擎
// 单次请求为一条同步管线，重建缓存经 singleflight 串行化
type Engine struct {
	embedder Embedder
	source   Source
	store    CacheStore

	rebuildConcurrency int
	rebuildGroup       singleflight.Group
}

// NewEngine 创建选单引擎
func NewEngine(embedder Embedder, source Source, store CacheStore, rebuildConcurrency int) *Engine {
	if rebuildConcurrency <= 0 {
		rebuildConcurrency = 4
	}
	return &Engine{
		embedder:           embedder,
		source:             source,
		store:              store,
		rebuildConcurrency: rebuildConcurrency,
	}
}

// Questions 取得选单问题
// 空输入 => 随机选单；否则按相似度筛选，无匹配时退回随机选单并附带提示
func (e *Engine) Questions(ctx context.Context, q Query) (*MenuResult, error) {
	ctx, span := tracer.Start(ctx, "menu.Questions",
		trace.WithAttributes(
			attribute.Bool("menu.refresh", q.Refresh),
			attribute.Int("menu.count", q.Count),
			attribute.Float64("menu.threshold", q.Threshold),
		))
	defer span.End()

	rows, err := e.source.Rows(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCorpusRead, "failed to read corpus")
	}

	if q.Input == "" {
		metrics.MenuRequestsTotal.WithLabelValues("menu").Inc()
		return &MenuResult{
			Menu: Compose(Sample(rows, q.Count), nil),
		}, nil
	}

	if q.Refresh {
		if err := e.Refresh(ctx, rows); err != nil {
			return nil, err
		}
	}

	cache, err := e.loadCache(ctx)
	if err != nil {
		return nil, err
	}
	if cache.Len() != len(rows) {
		return nil, errors.New(errors.CodeCacheCorrupt, "vector cache out of sync with corpus").
			WithDetail(fmt.Sprintf("cache has %d entries, corpus has %d rows; request isRefresh=true to rebuild", cache.Len(), len(rows)))
	}

	inputVec, err := e.embedder.Embed(ctx, q.Input)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEmbeddingFailed, "failed to embed input")
	}

	candidates, err := Match(inputVec, cache, q.Threshold)
	if err != nil {
		return nil, err
	}
	metrics.MatchCandidates.Observe(float64(len(candidates)))

	matched := make([]CorpusRow, 0, len(candidates))
	for _, cand := range candidates {
		matched = append(matched, rows[cand.Index])
	}
	questions := Compose(matched, candidates)

	// 打分后先打乱再截断：返回的是通过基准值的随机子集，而非得分最高者
	Shuffle(questions)
	limit := q.Count
	if limit < 0 {
		limit = 0
	}
	if len(questions) > limit {
		questions = questions[:limit]
	}

	result := &MenuResult{Matches: questions}
	if len(candidates) == 0 {
		result.Menu = Compose(Sample(rows, q.Count), nil)
		result.ErrorMessage = AdvisoryMessage
		metrics.MenuRequestsTotal.WithLabelValues("fallback").Inc()
		logger.Debug(ctx, "no corpus entry passed threshold", "threshold", q.Threshold)
	} else {
		metrics.MenuRequestsTotal.WithLabelValues("match").Inc()
	}
	return result, nil
}

// Refresh 重建向量缓存并整体落盘
// 并发的刷新请求经 singleflight 合并为一次重建，避免交错写入
func (e *Engine) Refresh(ctx context.Context, rows []CorpusRow) error {
	_, err, _ := e.rebuildGroup.Do("rebuild", func() (interface{}, error) {
		return nil, e.rebuildAndSave(ctx, rows)
	})
	return err
}

func (e *Engine) rebuildAndSave(ctx context.Context, rows []CorpusRow) error {
	ctx, span := tracer.Start(ctx, "menu.Rebuild",
		trace.WithAttributes(attribute.Int("menu.corpus_rows", len(rows))))
	defer span.End()

	start := time.Now()
	cache, err := e.Rebuild(ctx, rows)
	if err != nil {
		span.RecordError(err)
		return err
	}

	data, err := cache.Encode()
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheStore, "failed to encode vector cache")
	}
	if err := e.store.Write(ctx, data); err != nil {
		return errors.Wrap(err, errors.CodeCacheStore, "failed to persist vector cache")
	}

	metrics.CacheRebuildDuration.Observe(time.Since(start).Seconds())
	metrics.CacheEntries.Set(float64(cache.Len()))
	logger.Info(ctx, "vector cache rebuilt",
		"entries", cache.Len(),
		"dimension", cache.Dimension(),
		"elapsed", time.Since(start).String(),
	)
	return nil
}

// Rebuild 按语料顺序为每一行生成向量
// 各行之间并发调用 embed，结果按原始顺序归位；任一失败即整体失败，不产出半截缓存
func (e *Engine) Rebuild(ctx context.Context, rows []CorpusRow) (*VectorCache, error) {
	entries := make([]VectorEntry, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.rebuildConcurrency)
	for i, row := range rows {
		g.Go(func() error {
			vec, err := e.embedder.Embed(gctx, row.PromptKey)
			if err != nil {
				return errors.Wrap(err, errors.CodeEmbeddingFailed,
					fmt.Sprintf("failed to embed corpus row %d", i))
			}
			entries[i] = VectorEntry{Question: row.PromptKey, Vector: vec}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &VectorCache{Entries: entries}, nil
}

func (e *Engine) loadCache(ctx context.Context) (*VectorCache, error) {
	data, err := e.store.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCacheStore, "failed to read vector cache").
			WithDetail("request isRefresh=true to build it")
	}
	cache, err := ParseVectorCache(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCacheCorrupt, "vector cache is corrupt")
	}
	return cache, nil
}
