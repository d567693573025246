package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/tealeg/xlsx"

	"audioscribe/internal/app/model"
)

var header = []string{
	"ID",
	"Original Filename",
	"Format",
	"File Size",
	"Status",
	"Processing Time",
	"Transcription",
	"Error Message",
	"Created At",
}

func recordRow(rec *model.Record) []string {
	processingTime := ""
	if rec.ProcessingTime != nil {
		processingTime = fmt.Sprintf("%.2f", *rec.ProcessingTime)
	}
	return []string{
		rec.ID,
		rec.OriginalFilename,
		rec.Format,
		fmt.Sprint(rec.FileSize),
		string(rec.Status),
		processingTime,
		rec.Text,
		rec.ErrorMessage,
		rec.CreatedAt.Format(time.RFC3339),
	}
}

// ToExcel writes records to an xlsx workbook at outputFilePath.
func ToExcel(records []model.Record, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, name := range header {
		headerRow.AddCell().Value = name
	}

	for i := range records {
		row := sheet.AddRow()
		for _, value := range recordRow(&records[i]) {
			row.AddCell().Value = value
		}
	}

	return file.Save(outputFilePath)
}

// ToCSV writes records as CSV to outputFilePath.
func ToCSV(records []model.Record, outputFilePath string) error {
	f, err := os.Create(outputFilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range records {
		if err := w.Write(recordRow(&records[i])); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
