package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/berkdoc/docpipe"
	"github.com/berkdoc/docpipe/core"
	"github.com/berkdoc/docpipe/ingestion"
)

const seedOwner = "seed-owner"

var documents = []string{
	`The lighthouse keeper kept a meticulous journal of every ship that passed
the headland. Storms were recorded in red ink, calm days in black, and on
the rare occasion a whale breached near the rocks he drew a small sketch
in the margin. When the light was automated in 1974 the journals were
boxed up and forgotten in the basement of the maritime museum.`,

	`The keeper of the lighthouse maintained a careful journal of each vessel
that rounded the headland. Storms went down in red ink, quiet days in
black, and whenever a whale surfaced near the rocks he added a small
sketch in the margin. After the light was automated in 1974 the journals
were packed into boxes and forgotten in the maritime museum's basement.`,

	`Sourdough begins with nothing more than flour, water, and patience. Wild
yeast settles into the mixture over several days, and the baker learns to
read the bubbles on the surface the way a sailor reads the sky. A mature
starter can live for decades, passed between kitchens like a family
heirloom.`,

	`The observatory on the ridge opened its dome only on the driest nights.
Humidity fogged the mirror and turned the stars into smudges, so the
astronomers watched the weather station more closely than the sky. On a
good night the Andromeda galaxy filled the eyepiece like spilled sugar.`,

	`Wild yeast turns flour and water into sourdough given enough patience.
Over several days the culture settles in, and the baker reads the bubbles
on the surface the way a sailor reads the sky. A healthy starter survives
for decades and gets handed between kitchens like an heirloom.`,

	`The municipal archive flooded twice in the same winter. Volunteers spent
weekends freeze-drying ledgers and interleaving blotting paper between
photographs, and by spring most of the collection was legible again. The
water stains remain, a faint tideline across a century of records.`,

	`Every autumn the valley's beekeepers compared notes at the grange hall.
Honey from the clover fields came out pale and mild, while hives near the
buckwheat produced something dark enough to pass for molasses. Arguments
about which was superior were traditional and never resolved.`,

	`Freight trains still use the old grade through the canyon, though the
passenger platforms were demolished years ago. Hikers follow the service
road beside the rails, counting tunnels, and the longest one stays cold
enough in August that breath turns visible halfway through.`,

	`The print shop's last linotype operator retired without an apprentice.
The machine sits under a canvas tarp, its matrices sorted into labeled
drawers, waiting for a museum with floor space and a freight elevator.
Until then the shop sets everything digitally and keeps the tarp dusted.`,

	`A community orchard took over the lot behind the fire station. Apples and
quinces went in the first year, then a row of plums donated by a retiring
nurseryman. The harvest is posted on a chalkboard by the gate and anyone
who helps prune in February gets first pick in September.`,
}

var seedFileName = flag.String("src", "", "file of seed documents, separated by blank lines")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// documentsFromFile returns an iterator over blank-line separated blocks in a file.
func documentsFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()

		var block strings.Builder
		flush := func() bool {
			text := strings.TrimSpace(block.String())
			block.Reset()
			if text == "" {
				return true
			}
			return yield(text)
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				if !flush() {
					return
				}
				continue
			}
			block.WriteString(line)
			block.WriteString("\n")
		}
		flush()
	}, nil
}

// documentsFromSlice returns an iterator over a slice of document texts.
func documentsFromSlice(docs []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, doc := range docs {
			if !yield(doc) {
				return
			}
		}
	}
}

// ingestAll emits a creation event per document and waits for each to settle.
func ingestAll(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq[string]) (int, error) {
	count := 0
	for text := range source {
		event := &core.Event{
			Kind:       core.DocumentCreated,
			DocumentID: uuid.NewString(),
			Title:      fmt.Sprintf("seed document %d", count+1),
			Content:    text,
			Source:     "seeder",
			OwnerID:    seedOwner,
		}

		done, err := pipeline.HandleEvent(ctx, event)
		if err != nil {
			return count, err
		}
		for stageErr := range done {
			if stageErr != nil {
				slog.Warn("seed stage failed", "document_id", event.DocumentID, "error", stageErr)
			}
		}
		count++
	}
	return count, nil
}

func main() {
	db, err := docpipe.NewDatabase("./docpipe_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = documentsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = documentsFromSlice(documents)
	}

	count, err := ingestAll(ctx, pipeline, source)
	if err != nil {
		panic(err)
	}
	slog.Info("seeding complete", "documents", count)

	detector, err := db.NewDuplicateDetector()
	if err != nil {
		panic(err)
	}
	created, err := detector.DetectDocumentDuplicates(ctx, seedOwner)
	if err != nil {
		panic(err)
	}
	slog.Info("duplicate detection complete", "pairs_created", created)
}
