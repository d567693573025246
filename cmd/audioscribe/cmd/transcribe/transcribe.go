package transcribe

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"audioscribe/internal/app"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/upload"
	"audioscribe/internal/cli"
)

var configPath string
var verbose bool
var audioDir string
var pending bool

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
	Cmd.Flags().StringVarP(&audioDir, "audioDir", "d", "",
		"audioDir specifies a directory of audio files to ingest and transcribe")
	Cmd.Flags().BoolVarP(&pending, "pending", "p", false,
		"process records already in the pending state instead of ingesting files")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Batch transcribe audio files without going through the HTTP API",
	Long: `Batch transcribe audio files without going through the HTTP API

- With --audioDir, every supported audio file in the directory is ingested
  into storage, recorded, and transcribed
- With --pending, records left in the pending state are processed`,
	Run: func(cmd *cobra.Command, args []string) {
		if audioDir == "" && !pending {
			log.Fatal("either --audioDir or --pending must be set")
		}

		application, cleanup, err := cli.Bootstrap(configPath, verbose)
		if err != nil {
			log.Fatalf("Failed to initialize: %v\n", err)
		}
		defer cleanup()

		ctx := context.Background()

		var records []model.Record
		if pending {
			records, err = application.DAO.ListByStatus(ctx, model.StatusPending, 500)
			if err != nil {
				log.Fatalf("Failed to list pending records: %v\n", err)
			}
		} else {
			records, err = ingestDirectory(ctx, application, audioDir)
			if err != nil {
				log.Fatalf("Failed to ingest %s: %v\n", audioDir, err)
			}
		}
		if len(records) == 0 {
			fmt.Println("nothing to transcribe")
			return
		}

		processAll(ctx, application, records)
	},
}

// ingestDirectory stores every supported audio file under dir and creates a
// pending record for each.
func ingestDirectory(ctx context.Context, application *app.App, dir string) ([]model.Record, error) {
	validator := upload.NewValidator(application.Config.MaxUploadBytes(), application.Config.Upload.AllowedFormats)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		accepted, err := validator.Validate(entry.Name(), info.Size())
		if err != nil {
			continue
		}

		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		key, err := application.Store.Save(ctx, accepted.Filename, f, accepted.Size)
		f.Close()
		if err != nil {
			return nil, err
		}

		now := time.Now()
		rec := model.Record{
			ID:               uuid.New().String(),
			OriginalFilename: accepted.Filename,
			FileSize:         accepted.Size,
			Format:           accepted.Format,
			StorageKey:       key,
			Status:           model.StatusPending,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := application.DAO.Create(ctx, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// processAll runs each record through the transcription runner with a
// progress bar on stderr.
func processAll(ctx context.Context, application *app.App, records []model.Record) {
	progress := mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := progress.AddBar(int64(len(records)),
		mpb.PrependDecorators(
			decor.Name("transcribing ", decor.WC{W: len("transcribing ")}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
		),
	)

	var failed int
	for i := range records {
		if err := application.Runner.Process(ctx, &records[i]); err != nil {
			failed++
		}
		bar.Increment()
	}
	progress.Wait()

	fmt.Printf("transcribed %d files, %d failed\n", len(records)-failed, failed)
}
