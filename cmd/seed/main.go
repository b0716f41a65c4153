package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mlarina/foodgram-backend/config"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the ingredient catalog from a CSV or XLSX file with two
// columns: name, measurement unit. Existing (name, unit) pairs are kept.

type ingredientRow struct {
	Name            string
	MeasurementUnit string
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <ingredients.csv|ingredients.xlsx>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ingredientRepo := repository.NewIngredientRepository(db.GetDB())

	fmt.Printf("Reading ingredient file: %s\n", filePath)

	var rows []ingredientRow
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		rows, err = readIngredientsFromCSV(filePath)
	case ".xlsx":
		rows, err = readIngredientsFromXLSX(filePath)
	default:
		log.Fatal("Unsupported file type, expected .csv or .xlsx")
	}
	if err != nil {
		log.Fatal("Failed to read ingredient file:", err)
	}

	fmt.Printf("Total ingredient rows: %d\n", len(rows))

	imported := 0
	skipped := 0
	for _, row := range rows {
		_, created, err := ingredientRepo.GetOrCreate(row.Name, row.MeasurementUnit)
		if err != nil {
			log.Fatalf("Failed to import %q (%s): %v", row.Name, row.MeasurementUnit, err)
		}
		if created {
			imported++
		} else {
			skipped++
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Imported: %d, already present: %d\n", imported, skipped)
}

func readIngredientsFromCSV(filePath string) ([]ingredientRow, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return collectRows(records), nil
}

func readIngredientsFromXLSX(filePath string) ([]ingredientRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return collectRows(records), nil
}

func collectRows(records [][]string) []ingredientRow {
	var rows []ingredientRow
	seen := make(map[string]bool)

	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			continue
		}
		// A header row slips through as a regular record, so skip the
		// common column titles.
		if strings.EqualFold(name, "name") || strings.EqualFold(name, "ingredient") {
			continue
		}
		key := strings.ToLower(name) + "|" + strings.ToLower(unit)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, ingredientRow{Name: name, MeasurementUnit: unit})
	}
	return rows
}
