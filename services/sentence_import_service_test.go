package services

import (
	"regexp"
	"strings"
	"testing"
)

func TestImportCSVRequiresSourceTextColumn(t *testing.T) {
	svc := NewSentenceImportService(nil)

	_, err := svc.ImportCSV(strings.NewReader("text,difficulty\nhello,1\n"), "")
	if err == nil || !strings.Contains(err.Error(), "source_text") {
		t.Fatalf("expected missing-column error, got %v", err)
	}
}

func TestImportCSVRejectsEmptyFile(t *testing.T) {
	svc := NewSentenceImportService(nil)

	_, err := svc.ImportCSV(strings.NewReader("source_text\n"), "")
	if err == nil {
		t.Fatal("expected error for file with no data rows")
	}
}

func TestImportCSVSkipsBlankDuplicateAndBadRows(t *testing.T) {
	// Every data row is unusable, so no SQL may run and a nil db is safe.
	svc := NewSentenceImportService(nil)

	input := strings.Join([]string{
		"source_text,difficulty",
		"   ,2",
		"Good morning,9",
		"",
	}, "\n")

	summary, err := svc.ImportCSV(strings.NewReader(input), "")
	if err != nil {
		t.Fatalf("ImportCSV returned error: %v", err)
	}
	if summary.Imported != 0 {
		t.Fatalf("expected 0 imported, got %d", summary.Imported)
	}
	if summary.Skipped != 2 {
		t.Fatalf("expected 2 skipped, got %d", summary.Skipped)
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0], "line 3") {
		t.Fatalf("expected one error for line 3, got %v", summary.Errors)
	}
}

func TestImportCSVInsertsValidRows(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .?sentences.?"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 2},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSentenceImportService(db)

	input := strings.Join([]string{
		"source_text,difficulty,priority_score,target_redundancy",
		"Good morning,1,10,3",
		"Good morning,1,10,3",
		"Where is the market?,3,5,",
	}, "\n")

	summary, err := svc.ImportCSV(strings.NewReader(input), "corpus-2025-06")
	if err != nil {
		t.Fatalf("ImportCSV returned error: %v", err)
	}
	if summary.Imported != 2 {
		t.Fatalf("expected 2 imported, got %d", summary.Imported)
	}
	if summary.Skipped != 1 {
		t.Fatalf("expected duplicate row skipped, got %d", summary.Skipped)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("expected no row errors, got %v", summary.Errors)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
