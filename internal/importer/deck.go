// Package importer reads card images and deck lists. Deck lists come from CSV
// or Excel files with automatic delimiter detection, flexible column mapping
// and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/ProxySheet/internal/model"
	"github.com/xuri/excelize/v2"
)

// DeckResult holds the results of a deck list import.
type DeckResult struct {
	Entries  []model.DeckEntry
	Errors   []string
	Warnings []string
}

// Paths expands the imported entries into one path per printed copy.
func (r DeckResult) Paths() []string {
	return model.ExpandDeck(r.Entries)
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	File   int
	Copies int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"file":   {"file", "path", "image", "filename", "file name", "card", "picture"},
	"copies": {"copies", "copy", "quantity", "qty", "count", "num", "amount", "x"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (file, copies) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{File: -1, Copies: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "file":
					if mapping.File == -1 {
						mapping.File = i
					}
				case "copies":
					if mapping.Copies == -1 {
						mapping.Copies = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{File: 0, Copies: 1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a DeckEntry from a row. A missing copies cell means one copy.
// Returns the entry and an error message, if any.
func parseRow(row []string, mapping ColumnMapping, rowLabel, baseDir string) (model.DeckEntry, string) {
	file := getCell(row, mapping.File)
	if file == "" {
		return model.DeckEntry{}, fmt.Sprintf("%s: Missing file value", rowLabel)
	}
	if baseDir != "" && !filepath.IsAbs(file) {
		file = filepath.Join(baseDir, file)
	}

	copies := 1
	if s := getCell(row, mapping.Copies); s != "" {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(s), "x"))
		if err != nil {
			return model.DeckEntry{}, fmt.Sprintf("%s: Invalid copies '%s'", rowLabel, s)
		}
		if n <= 0 {
			return model.DeckEntry{}, fmt.Sprintf("%s: Copies must be positive", rowLabel)
		}
		copies = n
	}

	return model.DeckEntry{Path: file, Copies: copies}, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportDeckCSV imports a deck list from a CSV file. Relative image paths
// resolve against the directory of the deck file.
func ImportDeckCSV(path string) DeckResult {
	result := DeckResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", filepath.Dir(path), result.Warnings)
}

// ImportDeckCSVFromReader imports a deck list from a CSV reader with a known
// delimiter. Relative paths resolve against baseDir when it is not empty.
func ImportDeckCSVFromReader(reader io.Reader, delimiter rune, baseDir string) DeckResult {
	result := DeckResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", baseDir, nil)
}

// ImportDeckExcel imports a deck list from the first sheet of an Excel file.
func ImportDeckExcel(path string) DeckResult {
	result := DeckResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", filepath.Dir(path), nil)
}

// ImportDeck picks the CSV or Excel importer from the file extension.
func ImportDeck(path string) DeckResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportDeckExcel(path)
	default:
		return ImportDeckCSV(path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix, baseDir string, initialWarnings []string) DeckResult {
	result := DeckResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.File == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: File")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		// Comment lines
		if strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		entry, errMsg := parseRow(row, mapping, rowLabel, baseDir)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	if len(result.Entries) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}

	return result
}
