package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkdoc/docpipe/ai/mock"
	"github.com/berkdoc/docpipe/core"
	"github.com/berkdoc/docpipe/storage"
	"github.com/berkdoc/docpipe/storage/badger"
)

func setupTestRepos(t *testing.T) *badger.Repositories {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}

func newTestPipeline(t *testing.T, repos *badger.Repositories, provider *mock.MockProvider, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithRetry(1, time.Millisecond)}, opts...)
	p, err := NewPipeline(repos.Chunks, repos.Documents, repos.Duplicates, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func drain(t *testing.T, ch <-chan error) []error {
	t.Helper()
	var results []error
	timeout := time.After(10 * time.Second)
	for {
		select {
		case err, ok := <-ch:
			if !ok {
				return results
			}
			results = append(results, err)
		case <-timeout:
			t.Fatal("timed out waiting for stages to finish")
		}
	}
}

func mockProvider() *mock.MockProvider {
	return mock.NewMockProviderWithServices(mock.NewMockEmbedder(), mock.NewMockAnnotator()).(*mock.MockProvider)
}

func TestPipeline_Created(t *testing.T) {
	repos := setupTestRepos(t)
	p := newTestPipeline(t, repos, mockProvider())
	ctx := context.Background()

	event := &core.Event{
		Kind:       core.DocumentCreated,
		DocumentID: "doc-1",
		Title:      "Loading dock hours",
		Content:    "The loading dock closes at six. Deliveries after that wait until morning.",
		Source:     "memos/dock.md",
		OwnerID:    "owner-a",
	}

	ch, err := p.HandleEvent(ctx, event)
	require.NoError(t, err)
	for _, stageErr := range drain(t, ch) {
		assert.NoError(t, stageErr)
	}

	chunks, err := repos.Chunks.GetChunks(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.NotEmpty(t, chunks[0].Vector)
	assert.Equal(t, "Loading dock hours", chunks[0].Title)

	doc, err := repos.Documents.GetDocumentVector(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
	require.NotEmpty(t, doc.Vector)

	// Document vector is unit-normalized.
	var norm float64
	for _, v := range doc.Vector {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-4)
}

func TestPipeline_Created_EmptyContent(t *testing.T) {
	repos := setupTestRepos(t)
	p := newTestPipeline(t, repos, mockProvider())
	ctx := context.Background()

	event := &core.Event{
		Kind:       core.DocumentCreated,
		DocumentID: "doc-empty",
		Content:    "   \n\t  ",
		OwnerID:    "owner-a",
	}

	ch, err := p.HandleEvent(ctx, event)
	require.NoError(t, err)
	for _, stageErr := range drain(t, ch) {
		assert.NoError(t, stageErr)
	}

	chunks, err := repos.Chunks.GetChunks(ctx, "owner-a", "doc-empty")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = repos.Documents.GetDocumentVector(ctx, "owner-a", "doc-empty")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPipeline_Created_EmbedderFailure(t *testing.T) {
	repos := setupTestRepos(t)
	provider := mockProvider()
	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}
	p := newTestPipeline(t, repos, provider)
	ctx := context.Background()

	event := &core.Event{
		Kind:       core.DocumentCreated,
		DocumentID: "doc-1",
		Content:    "Some content that will not embed.",
		OwnerID:    "owner-a",
	}

	ch, err := p.HandleEvent(ctx, event)
	require.NoError(t, err)
	// Zero embedded chunks is a warning condition, not a stage failure.
	for _, stageErr := range drain(t, ch) {
		assert.NoError(t, stageErr)
	}

	chunks, err := repos.Chunks.GetChunks(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = repos.Documents.GetDocumentVector(ctx, "owner-a", "doc-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// gatedDocumentRepository signals when the stale document vector has been
// deleted, letting tests order the cleanup stage ahead of re-ingestion.
type gatedDocumentRepository struct {
	storage.DocumentRepository
	cleanupDone chan struct{}
}

func (g *gatedDocumentRepository) DeleteDocumentVector(ctx context.Context, ownerID, documentID string) error {
	err := g.DocumentRepository.DeleteDocumentVector(ctx, ownerID, documentID)
	select {
	case <-g.cleanupDone:
	default:
		close(g.cleanupDone)
	}
	return err
}

func TestPipeline_Updated(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	// Pre-existing artifacts from a previous ingestion, one more chunk than
	// the updated content will produce.
	for i := 0; i < 3; i++ {
		require.NoError(t, repos.Chunks.AddChunks(ctx, &core.Chunk{
			DocumentID: "doc-1", ChunkIndex: i, Content: "old", OwnerID: "owner-a",
			Vector: []float32{1, 0},
		}))
	}
	require.NoError(t, repos.Documents.PutDocumentVector(ctx, &core.DocumentVector{
		DocumentID: "doc-1", OwnerID: "owner-a", Vector: []float32{1, 0},
	}))

	cleanupDone := make(chan struct{})
	gated := &gatedDocumentRepository{DocumentRepository: repos.Documents, cleanupDone: cleanupDone}

	provider := mockProvider()
	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		// Hold chunk embedding until cleanup has finished so the test
		// observes the deterministic cleanup-then-recreate interleaving.
		<-cleanupDone
		return []float32{0, 1}, nil
	}

	p, err := NewPipeline(repos.Chunks, gated, repos.Duplicates, provider, WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(p.Release)

	event := &core.Event{
		Kind:       core.DocumentUpdated,
		DocumentID: "doc-1",
		Title:      "Updated title",
		Content:    "Completely new content for the document.",
		OwnerID:    "owner-a",
	}

	ch, err := p.HandleEvent(ctx, event)
	require.NoError(t, err)
	results := drain(t, ch)
	require.Len(t, results, 4)
	for _, stageErr := range results {
		assert.NoError(t, stageErr)
	}

	// Old chunks replaced by the single new one.
	chunks, err := repos.Chunks.GetChunks(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Completely new content for the document.", chunks[0].Content)

	doc, err := repos.Documents.GetDocumentVector(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(doc.Vector[1]), 1e-4)

	// Tags and summary regenerated.
	meta, err := repos.Documents.GetDocumentMetadata(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
	assert.NotEmpty(t, meta.Tags)
	assert.NotEmpty(t, meta.Summary)
}

func TestPipeline_Updated_StageIsolation(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	cleanupDone := make(chan struct{})
	gated := &gatedDocumentRepository{DocumentRepository: repos.Documents, cleanupDone: cleanupDone}

	provider := mockProvider()
	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		<-cleanupDone
		return []float32{0, 1}, nil
	}
	provider.GetMockAnnotator().GenerateTagsFunc = func(ctx context.Context, text string) ([]string, error) {
		return nil, errors.New("llm unreachable")
	}

	p, err := NewPipeline(repos.Chunks, gated, repos.Duplicates, provider, WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(p.Release)

	event := &core.Event{
		Kind:       core.DocumentUpdated,
		DocumentID: "doc-1",
		Content:    "Content worth summarizing.",
		OwnerID:    "owner-a",
	}

	ch, err := p.HandleEvent(ctx, event)
	require.NoError(t, err)
	results := drain(t, ch)
	require.Len(t, results, 4)

	failures := 0
	for _, stageErr := range results {
		if stageErr != nil {
			failures++
		}
	}
	assert.Equal(t, 1, failures, "only the tag stage should fail")

	// The summary stage still wrote metadata.
	meta, err := repos.Documents.GetDocumentMetadata(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
	assert.NotEmpty(t, meta.Summary)
	assert.Empty(t, meta.Tags)

	// The create pipeline still produced a document vector.
	_, err = repos.Documents.GetDocumentVector(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
}

func TestPipeline_Deleted(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Chunks.AddChunks(ctx, &core.Chunk{
		DocumentID: "doc-1", ChunkIndex: 0, Content: "body", OwnerID: "owner-a", Vector: []float32{1},
	}))
	require.NoError(t, repos.Documents.PutDocumentVector(ctx, &core.DocumentVector{
		DocumentID: "doc-1", OwnerID: "owner-a", Vector: []float32{1},
	}))
	require.NoError(t, repos.Documents.UpdateDocumentMetadata(ctx, "owner-a", "doc-1", core.MetadataUpdate{
		Tags: []string{"x"}, HasTags: true,
	}))
	_, err := repos.Duplicates.AddDuplicatePair(ctx, core.NewDuplicatePair("owner-a", "doc-1", "doc-2", 0.9))
	require.NoError(t, err)
	_, err = repos.Duplicates.AddDuplicatePair(ctx, core.NewDuplicatePair("owner-a", "doc-2", "doc-3", 0.9))
	require.NoError(t, err)

	p := newTestPipeline(t, repos, mockProvider())

	event := &core.Event{Kind: core.DocumentDeleted, DocumentID: "doc-1", OwnerID: "owner-a"}
	ch, err := p.HandleEvent(ctx, event)
	require.NoError(t, err)
	for _, stageErr := range drain(t, ch) {
		assert.NoError(t, stageErr)
	}

	chunks, err := repos.Chunks.GetChunks(ctx, "owner-a", "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = repos.Documents.GetDocumentVector(ctx, "owner-a", "doc-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repos.Documents.GetDocumentMetadata(ctx, "owner-a", "doc-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Pairs referencing doc-1 cascade; unrelated pairs survive.
	pairs, err := repos.Duplicates.DuplicatePairsByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "doc-2", pairs[0].SourceDocumentID)
}

func TestPipeline_InvalidEvent(t *testing.T) {
	repos := setupTestRepos(t)
	p := newTestPipeline(t, repos, mockProvider())

	_, err := p.HandleEvent(context.Background(), &core.Event{
		Kind: core.DocumentCreated, DocumentID: "", OwnerID: "owner-a",
	})
	assert.ErrorIs(t, err, core.ErrInvalidEvent)

	_, err = p.HandleEvent(context.Background(), &core.Event{
		Kind: core.EventKind(99), DocumentID: "doc-1", OwnerID: "owner-a",
	})
	assert.ErrorIs(t, err, core.ErrInvalidEventKind)
}

func TestNewPipeline_Validation(t *testing.T) {
	repos := setupTestRepos(t)
	provider := mockProvider()

	_, err := NewPipeline(nil, repos.Documents, repos.Duplicates, provider)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewPipeline(repos.Chunks, nil, repos.Duplicates, provider)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)

	_, err = NewPipeline(repos.Chunks, repos.Documents, nil, provider)
	assert.ErrorIs(t, err, ErrDuplicateRepositoryRequired)

	_, err = NewPipeline(repos.Chunks, repos.Documents, repos.Duplicates, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}
