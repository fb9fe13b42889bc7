package cli

import (
	"context"
	"sync"
	"time"

	ollamaembed "github.com/custodia-labs/medrag-cli/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/custodia-labs/medrag-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/medrag-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/medrag-cli/internal/adapters/driven/vector/qdrant"
	"github.com/custodia-labs/medrag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medrag-cli/internal/core/services"
	"github.com/custodia-labs/medrag-cli/internal/logger"
	"github.com/custodia-labs/medrag-cli/internal/pipeline"
	"github.com/custodia-labs/medrag-cli/internal/pipeline/chunker"
)

// resources lazily builds and caches the driven adapters. Each handle
// is created at most once per process; closeResources releases whatever
// was actually built.
type resources struct {
	embedOnce sync.Once
	embed     driven.EmbeddingService
	embedErr  error

	llmOnce sync.Once
	llm     driven.LLMService
	llmErr  error

	vectorOnce sync.Once
	vector     driven.VectorIndex
	vectorErr  error

	storeOnce sync.Once
	store     driven.EvaluationStore
	storeErr  error
}

var res = &resources{}

// pingTimeout bounds the health check run on first use of a service.
const pingTimeout = 5 * time.Second

func (r *resources) embedding() (driven.EmbeddingService, error) {
	r.embedOnce.Do(func() {
		r.embed, r.embedErr = ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.Ollama.BaseURL,
			Model:      cfg.Ollama.EmbeddingModel,
			Dimensions: cfg.Ollama.EmbeddingDimensions,
		})
		if r.embedErr == nil {
			r.embedErr = ping(r.embed.Ping)
		}
	})
	return r.embed, r.embedErr
}

func (r *resources) llmService() (driven.LLMService, error) {
	r.llmOnce.Do(func() {
		r.llm, r.llmErr = ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.ChatModel,
		})
		if r.llmErr == nil {
			r.llmErr = ping(r.llm.Ping)
		}
	})
	return r.llm, r.llmErr
}

// ping runs a health check with a bounded context.
func ping(check func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return check(ctx)
}

func (r *resources) vectorIndex() (driven.VectorIndex, error) {
	r.vectorOnce.Do(func() {
		r.vector, r.vectorErr = qdrant.NewVectorIndex(qdrant.Config{
			Address:    cfg.Qdrant.Address,
			Collection: cfg.Qdrant.Collection,
		})
	})
	return r.vector, r.vectorErr
}

func (r *resources) evaluationStore() (driven.EvaluationStore, error) {
	r.storeOnce.Do(func() {
		r.store, r.storeErr = sqlite.NewEvaluationStore(cfg.Storage.DataDir)
	})
	return r.store, r.storeErr
}

// closeResources closes every adapter that was built.
func closeResources() {
	if res.embed != nil {
		if err := res.embed.Close(); err != nil {
			logger.Warn("closing embedding service: %v", err)
		}
	}
	if res.llm != nil {
		if err := res.llm.Close(); err != nil {
			logger.Warn("closing llm service: %v", err)
		}
	}
	if res.vector != nil {
		if err := res.vector.Close(); err != nil {
			logger.Warn("closing vector index: %v", err)
		}
	}
	if res.store != nil {
		if err := res.store.Close(); err != nil {
			logger.Warn("closing evaluation store: %v", err)
		}
	}
}

// newAssembler builds the document pipeline from the loaded
// configuration.
func newAssembler() *pipeline.Assembler {
	return pipeline.New(pipeline.WithChunker(chunker.New(
		chunker.WithChunkSize(cfg.Processing.ChunkSize),
		chunker.WithOverlap(cfg.Processing.ChunkOverlap),
	)))
}

// newIngestService wires the ingestion path.
func newIngestService() (*services.IngestService, error) {
	embed, err := res.embedding()
	if err != nil {
		return nil, err
	}
	vector, err := res.vectorIndex()
	if err != nil {
		return nil, err
	}
	return services.NewIngestService(newAssembler(), embed, vector), nil
}

// newQueryService wires the query path.
func newQueryService() (*services.QueryService, error) {
	embed, err := res.embedding()
	if err != nil {
		return nil, err
	}
	vector, err := res.vectorIndex()
	if err != nil {
		return nil, err
	}
	llm, err := res.llmService()
	if err != nil {
		return nil, err
	}
	return services.NewQueryService(embed, vector, llm, driven.GenerateOptions{
		MaxTokens:   cfg.Ollama.MaxTokens,
		Temperature: cfg.Ollama.Temperature,
	}), nil
}

// newEvaluationService wires answer scoring with persistence.
func newEvaluationService() (*services.EvaluationService, error) {
	store, err := res.evaluationStore()
	if err != nil {
		return nil, err
	}
	return services.NewEvaluationService(store), nil
}
