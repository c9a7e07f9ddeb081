package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"tokples-api/models"
	"tokples-api/utils"

	"gorm.io/gorm"
)

// SentenceImportService bulk-loads source sentences from CSV corpora.
// Expected header: source_text[,difficulty][,priority_score][,target_redundancy].
type SentenceImportService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSentenceImportService creates a SentenceImportService backed by db.
func NewSentenceImportService(db *gorm.DB) *SentenceImportService {
	return &SentenceImportService{db: db, now: time.Now}
}

// ImportSummary reports the outcome of one import run.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportCSV reads the corpus and creates sentences in one transaction.
// Blank or duplicate-in-file rows are skipped and reported; a malformed
// numeric column fails that row, not the run.
func (s *SentenceImportService) ImportCSV(r io.Reader, batch string) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	textCol, ok := header["source_text"]
	if !ok {
		return nil, fmt.Errorf("missing source_text column")
	}

	now := s.now()
	summary := &ImportSummary{}
	seen := make(map[string]bool)
	var sentences []models.Sentence

	for idx, row := range rows[1:] {
		line := idx + 2

		text := ""
		if textCol < len(row) {
			text = utils.SanitizeInput(row[textCol])
		}
		if text == "" {
			summary.Skipped++
			continue
		}
		if seen[text] {
			summary.Skipped++
			continue
		}
		seen[text] = true

		sentence := models.Sentence{
			SourceText:       text,
			Status:           models.SentenceStatusOpen,
			Difficulty:       models.DifficultyMedium,
			TargetRedundancy: models.DefaultTargetRedundancy,
			CreateAt:         now,
		}
		if batch != "" {
			b := batch
			sentence.ImportBatch = &b
		}

		bad := false
		if col, ok := header["difficulty"]; ok && col < len(row) && strings.TrimSpace(row[col]) != "" {
			d, err := strconv.Atoi(strings.TrimSpace(row[col]))
			if err != nil || d < models.DifficultyEasy || d > models.DifficultyHard {
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: invalid difficulty", line))
				bad = true
			} else {
				sentence.Difficulty = d
			}
		}
		if col, ok := header["priority_score"]; ok && col < len(row) && strings.TrimSpace(row[col]) != "" {
			p, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: invalid priority_score", line))
				bad = true
			} else {
				sentence.PriorityScore = p
			}
		}
		if col, ok := header["target_redundancy"]; ok && col < len(row) && strings.TrimSpace(row[col]) != "" {
			t, err := strconv.Atoi(strings.TrimSpace(row[col]))
			if err != nil || t < 1 {
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: invalid target_redundancy", line))
				bad = true
			} else {
				sentence.TargetRedundancy = t
			}
		}
		if bad {
			summary.Skipped++
			continue
		}

		sentences = append(sentences, sentence)
	}

	if len(sentences) == 0 {
		return summary, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&sentences, 200).Error; err != nil {
			return fmt.Errorf("failed to insert sentences: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.Imported = len(sentences)
	return summary, nil
}
