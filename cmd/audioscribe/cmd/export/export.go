package export

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"audioscribe/internal/app/export"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/cli"
)

var configPath string
var verbose bool
var outputFilePath string
var status string

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath (.xlsx or .csv)")
	Cmd.Flags().StringVarP(&status, "status", "s", "", "only export records with this status")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transcription records to excel or csv",
	Long: `Export transcription records to excel or csv

- The output format is chosen from the file extension
- Use --status to export only completed or failed records`,
	Run: func(cmd *cobra.Command, args []string) {
		application, cleanup, err := cli.Bootstrap(configPath, verbose)
		if err != nil {
			log.Fatalf("Failed to initialize: %v\n", err)
		}
		defer cleanup()

		ctx := context.Background()

		var records []model.Record
		page := 1
		for {
			batch, total, err := application.DAO.List(ctx, repository.ListQuery{
				Status:  model.Status(status),
				OrderBy: "created_at",
				Order:   "asc",
				Page:    page,
				Limit:   500,
			})
			if err != nil {
				log.Fatal(err)
			}
			records = append(records, batch...)
			if len(records) >= total || len(batch) == 0 {
				break
			}
			page++
		}

		if strings.HasSuffix(outputFilePath, ".csv") {
			err = export.ToCSV(records, outputFilePath)
		} else {
			err = export.ToExcel(records, outputFilePath)
		}
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("export finished, exported %d records to %v\n", len(records), outputFilePath)
	},
}
