package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/berkdoc/docpipe/core"
)

func TestDuplicatePairBasics(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	pair := core.NewDuplicatePair("owner-a", "doc-2", "doc-1", 0.91)

	created, err := repos.Duplicates.AddDuplicatePair(ctx, pair)
	if err != nil {
		t.Fatalf("Failed to add pair: %v", err)
	}
	if !created {
		t.Fatal("Expected pair to be created")
	}

	// Same pair again is a no-op regardless of argument order at build time.
	again := core.NewDuplicatePair("owner-a", "doc-1", "doc-2", 0.91)
	created, err = repos.Duplicates.AddDuplicatePair(ctx, again)
	if err != nil {
		t.Fatalf("Failed to re-add pair: %v", err)
	}
	if created {
		t.Fatal("Expected re-add to report created=false")
	}

	pairs, err := repos.Duplicates.DuplicatePairsByOwner(ctx, "owner-a")
	if err != nil {
		t.Fatalf("Failed to list pairs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].SourceDocumentID != "doc-1" || pairs[0].TargetDocumentID != "doc-2" {
		t.Fatalf("Pair not canonical: %+v", pairs[0])
	}
}

func TestHasDuplicatePair(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	pair := core.NewDuplicatePair("owner-a", "doc-1", "doc-2", 0.88)
	if _, err := repos.Duplicates.AddDuplicatePair(ctx, pair); err != nil {
		t.Fatalf("Failed to add pair: %v", err)
	}

	// Lookup works in either order.
	for _, docs := range [][2]string{{"doc-1", "doc-2"}, {"doc-2", "doc-1"}} {
		found, err := repos.Duplicates.HasDuplicatePair(ctx, "owner-a", docs[0], docs[1])
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if !found {
			t.Fatalf("Expected pair (%s, %s) to be found", docs[0], docs[1])
		}
	}

	found, err := repos.Duplicates.HasDuplicatePair(ctx, "owner-a", "doc-1", "doc-3")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if found {
		t.Fatal("Expected absent pair not to be found")
	}

	// Owner scoping: another owner's namespace is empty.
	found, err = repos.Duplicates.HasDuplicatePair(ctx, "owner-b", "doc-1", "doc-2")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if found {
		t.Fatal("Expected pair to be scoped to owner-a")
	}
}

func TestDeleteDuplicatePairsForDocument(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	pairs := []*core.DuplicatePair{
		core.NewDuplicatePair("owner-a", "doc-1", "doc-2", 0.9),
		core.NewDuplicatePair("owner-a", "doc-1", "doc-3", 0.9),
		core.NewDuplicatePair("owner-a", "doc-2", "doc-3", 0.9),
	}
	for _, pair := range pairs {
		if _, err := repos.Duplicates.AddDuplicatePair(ctx, pair); err != nil {
			t.Fatalf("Failed to add pair: %v", err)
		}
	}

	// doc-1 appears in two pairs; both must go, the third must stay.
	deleted, err := repos.Duplicates.DeleteDuplicatePairsForDocument(ctx, "owner-a", "doc-1")
	if err != nil {
		t.Fatalf("Failed to delete pairs: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("Expected 2 deleted, got %d", deleted)
	}

	remaining, err := repos.Duplicates.DuplicatePairsByOwner(ctx, "owner-a")
	if err != nil {
		t.Fatalf("Failed to list pairs: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 remaining pair, got %d", len(remaining))
	}
	if remaining[0].SourceDocumentID != "doc-2" || remaining[0].TargetDocumentID != "doc-3" {
		t.Fatalf("Wrong pair survived: %+v", remaining[0])
	}
}

func TestAddDuplicatePair_Invalid(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	// Non-canonical ordering is rejected outright.
	bad := &core.DuplicatePair{
		OwnerID:          "owner-a",
		SourceDocumentID: "doc-2",
		TargetDocumentID: "doc-1",
		Similarity:       0.9,
		DuplicateType:    core.DuplicateTypeDocument,
	}
	_, err := repos.Duplicates.AddDuplicatePair(ctx, bad)
	if !errors.Is(err, core.ErrPairOrder) {
		t.Fatalf("Expected ErrPairOrder, got %v", err)
	}
}
