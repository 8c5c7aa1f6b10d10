package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/berkdoc/docpipe/ai"
	"github.com/berkdoc/docpipe/chunker"
	"github.com/berkdoc/docpipe/core"
	"github.com/berkdoc/docpipe/lanes"
	"github.com/berkdoc/docpipe/storage"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
	defaultCallTimeout = 30 * time.Second
)

// Pipeline orchestrates document ingestion: chunking, embedding, metadata
// annotation, and vector persistence. All asynchronous work is admitted
// through the lane limiter so external services see bounded concurrency.
type Pipeline struct {
	chunks     storage.ChunkRepository
	documents  storage.DocumentRepository
	duplicates storage.DuplicateRepository
	embedder   ai.Embedder
	annotator  ai.Annotator
	limiter    *lanes.Limiter
	chunker    *chunker.Chunker

	ownsLimiter bool
	maxAttempts int
	baseDelay   time.Duration
	callTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithChunker sets a custom chunker.
func WithChunker(c *chunker.Chunker) Option {
	return func(p *Pipeline) error {
		if c != nil {
			p.chunker = c
		}
		return nil
	}
}

// WithLimiter shares an externally owned lane limiter. The pipeline will not
// release a shared limiter.
func WithLimiter(l *lanes.Limiter) Option {
	return func(p *Pipeline) error {
		if l == nil {
			return nil
		}
		if p.ownsLimiter {
			p.limiter.Release()
		}
		p.limiter = l
		p.ownsLimiter = false
		return nil
	}
}

// WithLaneConfig replaces the limiter with one built from cfg.
func WithLaneConfig(cfg lanes.Config) Option {
	return func(p *Pipeline) error {
		limiter, err := lanes.New(cfg, lanes.WithLogger(p.logger))
		if err != nil {
			return err
		}
		if p.ownsLimiter {
			p.limiter.Release()
		}
		p.limiter = limiter
		p.ownsLimiter = true
		return nil
	}
}

// WithRetry configures the retry policy for external calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// WithCallTimeout sets the per-call timeout for external calls.
func WithCallTimeout(d time.Duration) Option {
	return func(p *Pipeline) error {
		if d > 0 {
			p.callTimeout = d
		}
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	chunkRepository storage.ChunkRepository,
	documentRepository storage.DocumentRepository,
	duplicateRepository storage.DuplicateRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if documentRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if duplicateRepository == nil {
		return nil, ErrDuplicateRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	limiter, err := lanes.New(lanes.DefaultConfig())
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunks:      chunkRepository,
		documents:   documentRepository,
		duplicates:  duplicateRepository,
		embedder:    provider.Embedder(),
		annotator:   provider.Annotator(),
		limiter:     limiter,
		chunker:     chunker.New(),
		ownsLimiter: true,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		callTimeout: defaultCallTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Limiter exposes the lane limiter for observability.
func (p *Pipeline) Limiter() *lanes.Limiter {
	return p.limiter
}

// HandleEvent dispatches a document lifecycle event.
//
// Created and Updated events are processed asynchronously: HandleEvent
// returns as soon as the stage jobs are admitted to their lanes. Deleted
// events are processed synchronously before HandleEvent returns.
//
// The returned channel receives one value per stage (nil on success) and is
// closed once every stage has finished. Stage failures are logged and
// isolated from each other; callers that only care about submission may
// ignore the channel.
func (p *Pipeline) HandleEvent(ctx context.Context, event *core.Event) (<-chan error, error) {
	if err := core.ValidateEvent(event); err != nil {
		return nil, err
	}

	switch event.Kind {
	case core.DocumentCreated:
		return collect(p.submitCreate(ctx, event)), nil

	case core.DocumentUpdated:
		return collect(
			p.submitDeleteArtifacts(ctx, event),
			p.submitTags(ctx, event),
			p.submitSummary(ctx, event),
			p.submitCreate(ctx, event),
		), nil

	case core.DocumentDeleted:
		err := p.runDelete(ctx, event)
		out := make(chan error, 1)
		out <- err
		close(out)
		return out, err

	default:
		return nil, core.ValidateEventKind(event.Kind)
	}
}

// Release releases the lane limiter if the pipeline owns it.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.ownsLimiter && p.limiter != nil {
		p.limiter.Release()
	}
}

// submitCreate runs the full create pipeline as an extraction-lane job.
// Chunk embedding fans out to the embedding lane from inside the job; the
// outer job must not occupy an embedding slot itself, or enough concurrent
// documents would hold every slot while waiting on chunk embeds that can
// never be admitted.
func (p *Pipeline) submitCreate(ctx context.Context, event *core.Event) <-chan error {
	return p.limiter.Go(lanes.Extraction, func() error {
		if err := p.runCreate(ctx, event); err != nil {
			p.logger.Error("create pipeline failed",
				"documentId", event.DocumentID, "ownerId", event.OwnerID, "err", err)
			return err
		}
		return nil
	})
}

// submitDeleteArtifacts removes a document's stored chunks and vector ahead
// of re-ingestion.
func (p *Pipeline) submitDeleteArtifacts(ctx context.Context, event *core.Event) <-chan error {
	return p.limiter.Go(lanes.VectorStore, func() error {
		var errs []error
		if _, err := p.chunks.DeleteChunks(ctx, event.OwnerID, event.DocumentID); err != nil {
			errs = append(errs, err)
		}
		if err := p.documents.DeleteDocumentVector(ctx, event.OwnerID, event.DocumentID); err != nil {
			errs = append(errs, err)
		}
		if err := errors.Join(errs...); err != nil {
			p.logger.Error("stale artifact cleanup failed",
				"documentId", event.DocumentID, "ownerId", event.OwnerID, "err", err)
			return err
		}
		return nil
	})
}

func (p *Pipeline) submitTags(ctx context.Context, event *core.Event) <-chan error {
	return p.limiter.Go(lanes.LLM, func() error {
		if err := p.generateTags(ctx, event); err != nil {
			p.logger.Error("tag generation failed",
				"documentId", event.DocumentID, "ownerId", event.OwnerID, "err", err)
			return err
		}
		return nil
	})
}

func (p *Pipeline) submitSummary(ctx context.Context, event *core.Event) <-chan error {
	return p.limiter.Go(lanes.LLM, func() error {
		if err := p.generateSummary(ctx, event); err != nil {
			p.logger.Error("summary generation failed",
				"documentId", event.DocumentID, "ownerId", event.OwnerID, "err", err)
			return err
		}
		return nil
	})
}

// runDelete removes every stored artifact of a document: chunks, document
// vector, metadata, and any duplicate pairs referencing it.
func (p *Pipeline) runDelete(ctx context.Context, event *core.Event) error {
	var errs []error

	if _, err := p.chunks.DeleteChunks(ctx, event.OwnerID, event.DocumentID); err != nil {
		errs = append(errs, err)
	}
	if err := p.documents.DeleteDocumentVector(ctx, event.OwnerID, event.DocumentID); err != nil {
		errs = append(errs, err)
	}
	if err := p.documents.DeleteDocumentMetadata(ctx, event.OwnerID, event.DocumentID); err != nil {
		errs = append(errs, err)
	}
	removed, err := p.duplicates.DeleteDuplicatePairsForDocument(ctx, event.OwnerID, event.DocumentID)
	if err != nil {
		errs = append(errs, err)
	} else if removed > 0 {
		p.logger.Debug("removed duplicate pairs for deleted document",
			"documentId", event.DocumentID, "ownerId", event.OwnerID, "removed", removed)
	}

	if err := errors.Join(errs...); err != nil {
		p.logger.Error("document deletion incomplete",
			"documentId", event.DocumentID, "ownerId", event.OwnerID, "err", err)
		return err
	}
	return nil
}

// callWithRetry runs an external call with the configured per-call timeout
// and retry policy.
func (p *Pipeline) callWithRetry(ctx context.Context, op func(ctx context.Context) error) error {
	return RetryWithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
		defer cancel()
		return op(callCtx)
	}, p.maxAttempts, p.baseDelay)
}

// collect fans in per-stage error channels into one channel that is closed
// when all stages finish.
func collect(stages ...<-chan error) <-chan error {
	out := make(chan error, len(stages))
	var wg sync.WaitGroup
	for _, stage := range stages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out <- <-stage
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
