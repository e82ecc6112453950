package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/hangbot/internal/database"
	"github.com/example/hangbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	WordColumn     string // Column with the word
	CategoryColumn string // Column with the category name
	SheetName      string // Name of the sheet to import
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:     "A",
		CategoryColumn: "B",
		SheetName:      "Sheet1",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed    int
	CategoriesCreated int
	Created           int
	Skipped           int
	Errors            []string
}

// ImportWords loads words and their categories into the catalog from an
// Excel or CSV file
func ImportWords(ctx context.Context, store *database.Store, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(ctx, store, config)
	}
	return importFromExcel(ctx, store, config)
}

// importFromExcel imports words from an Excel file
func importFromExcel(ctx context.Context, store *database.Store, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	wordCol, err := excelize.ColumnNameToNumber(config.WordColumn)
	if err != nil {
		return nil, fmt.Errorf("invalid word column: %v", err)
	}
	categoryCol, err := excelize.ColumnNameToNumber(config.CategoryColumn)
	if err != nil {
		return nil, fmt.Errorf("invalid category column: %v", err)
	}

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	importer := newImporter(store)
	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		word := cellAt(row, wordCol-1)
		category := cellAt(row, categoryCol-1)
		if err := importer.processRow(ctx, word, category, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

// importFromCSV imports words from a CSV file with word,category columns
func importFromCSV(ctx context.Context, store *database.Store, config ImportConfig) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	importer := newImporter(store)
	result := &ImportResult{Errors: make([]string, 0)}

	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
			continue
		}
		if line < config.StartRow {
			continue
		}
		result.TotalProcessed++

		word := cellAt(row, 0)
		category := cellAt(row, 1)
		if err := importer.processRow(ctx, word, category, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
		}
	}
	return result, nil
}

// importer carries the repositories and the category cache shared by
// all rows of one import run
type importer struct {
	words      *database.WordRepository
	categories map[string]int64
}

func newImporter(store *database.Store) *importer {
	return &importer{
		words:      database.NewWordRepository(store),
		categories: make(map[string]int64),
	}
}

func (im *importer) processRow(ctx context.Context, word, category string, result *ImportResult) error {
	word = strings.TrimSpace(word)
	category = strings.TrimSpace(category)
	if word == "" || category == "" {
		result.Skipped++
		return nil
	}

	categoryID, err := im.resolveCategory(ctx, category, result)
	if err != nil {
		return err
	}

	existing, err := im.words.GetByNameAndCategory(ctx, word, categoryID)
	if err != nil {
		return err
	}
	if existing != nil {
		result.Skipped++
		return nil
	}

	if _, err := im.words.Create(ctx, &models.Word{Name: word, CategoryID: categoryID}); err != nil {
		return err
	}
	result.Created++
	return nil
}

func (im *importer) resolveCategory(ctx context.Context, name string, result *ImportResult) (int64, error) {
	key := strings.ToLower(name)
	if id, ok := im.categories[key]; ok {
		return id, nil
	}

	existing, err := im.words.GetCategoryByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		im.categories[key] = existing.ID
		return existing.ID, nil
	}

	id, err := im.words.CreateCategory(ctx, name)
	if err != nil {
		return 0, err
	}
	im.categories[key] = id
	result.CategoriesCreated++
	return id, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
