package ingestion

import (
	"context"

	"github.com/berkdoc/docpipe/core"
)

// generateTags regenerates a document's tags and writes them to metadata.
// An annotator that cannot produce usable tags returns an empty slice, which
// is written as-is; only transport failures surface as errors.
func (p *Pipeline) generateTags(ctx context.Context, event *core.Event) error {
	var tags []string
	err := p.callWithRetry(ctx, func(callCtx context.Context) error {
		var genErr error
		tags, genErr = p.annotator.GenerateTags(callCtx, event.Content)
		return genErr
	})
	if err != nil {
		return err
	}

	return p.documents.UpdateDocumentMetadata(ctx, event.OwnerID, event.DocumentID, core.MetadataUpdate{
		Tags:    tags,
		HasTags: true,
	})
}

// generateSummary regenerates a document's summary and writes it to metadata.
func (p *Pipeline) generateSummary(ctx context.Context, event *core.Event) error {
	var summary string
	err := p.callWithRetry(ctx, func(callCtx context.Context) error {
		var genErr error
		summary, genErr = p.annotator.Summarize(callCtx, event.Content)
		return genErr
	})
	if err != nil {
		return err
	}

	return p.documents.UpdateDocumentMetadata(ctx, event.OwnerID, event.DocumentID, core.MetadataUpdate{
		Summary:    summary,
		HasSummary: true,
	})
}
