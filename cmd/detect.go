package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/NickRemizov/face-review/internal/config"
	"github.com/NickRemizov/face-review/internal/persistence"
	"github.com/NickRemizov/face-review/internal/recognition"
)

var detectCmd = &cobra.Command{
	Use:   "detect <photo-id>...",
	Short: "Run face detection on photos and store the results",
	Long: `Run face detection on the given photos and persist the detected
faces through the gallery API. Photos with faces already stored are
overwritten with the fresh detection result.

Examples:
  # Detect faces on two photos
  face-review detect ph-001 ph-002

  # Use different concurrency
  face-review detect --concurrency 3 ph-001 ph-002 ph-003`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().Int("concurrency", 5, "Number of parallel workers")
}

func runDetect(cmd *cobra.Command, args []string) error {
	concurrency := mustGetInt(cmd, "concurrency")
	if concurrency < 1 {
		concurrency = 1
	}

	ctx := context.Background()
	cfg := config.Load()

	rec, err := recognition.New(cfg.Recognition.URL, cfg.Recognition.Token)
	if err != nil {
		return fmt.Errorf("creating recognition client: %w", err)
	}
	store, err := persistence.New(cfg.Gallery.URL, cfg.Gallery.Token)
	if err != nil {
		return fmt.Errorf("creating gallery client: %w", err)
	}

	fmt.Printf("Detecting faces on %d photos\n", len(args))
	bar := progressbar.NewOptions(len(args),
		progressbar.OptionSetDescription("Detecting faces"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var successCount, totalFaces int
	var failed []string
	var mu sync.Mutex

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, photoID := range args {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			detected, err := rec.DetectFaces(ctx, id)
			if err != nil {
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
				bar.Add(1)
				return
			}

			// Save even an empty result so the photo counts as processed.
			saved, err := store.SaveFaces(ctx, id, detected)
			if err != nil {
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
				bar.Add(1)
				return
			}

			mu.Lock()
			successCount++
			totalFaces += len(saved)
			mu.Unlock()
			bar.Add(1)
		}(photoID)
	}

	wg.Wait()
	fmt.Println()

	fmt.Printf("\nCompleted: %d photos processed, %d errors\n", successCount, len(failed))
	fmt.Printf("Faces detected: %d\n", totalFaces)

	if len(failed) > 0 {
		fmt.Println("\nFailed photos:")
		for _, id := range failed {
			fmt.Printf("  %s\n", photoRef(cfg.Gallery, id))
		}
	}
	return nil
}

// photoRef renders a photo id for terminal output, as a clickable gallery
// link when a public domain is configured.
func photoRef(cfg config.GalleryConfig, photoID string) string {
	if link := cfg.PhotoURL(photoID); link != "" {
		return link
	}
	return photoID
}
