package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"
	"tokples-api/models"
)

func TestStatusForAction(t *testing.T) {
	cases := []struct {
		action string
		status string
		ok     bool
	}{
		{models.ReviewActionApproved, models.TranslationStatusApproved, true},
		{models.ReviewActionEdited, models.TranslationStatusApproved, true},
		{models.ReviewActionRejected, models.TranslationStatusRejected, true},
		{models.ReviewActionNeedsAttention, models.TranslationStatusNeedsAttention, true},
		{"promote", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		status, ok := statusForAction(tc.action)
		if ok != tc.ok || status != tc.status {
			t.Fatalf("statusForAction(%q) = (%q, %v), want (%q, %v)",
				tc.action, status, ok, tc.status, tc.ok)
		}
	}
}

func TestFeedbackRequired(t *testing.T) {
	if !feedbackRequired(models.ReviewActionRejected) {
		t.Fatal("reject must require feedback")
	}
	if !feedbackRequired(models.ReviewActionNeedsAttention) {
		t.Fatal("needs_attention must require feedback")
	}
	if feedbackRequired(models.ReviewActionApproved) {
		t.Fatal("approve must not require feedback")
	}
}

func TestRejectWithoutFeedbackWritesNothing(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewReviewService(db)

	for _, comment := range []string{"", "   ", "\t\n"} {
		_, err := svc.Apply("t-1", 7, ReviewInput{
			Action:  models.ReviewActionRejected,
			Comment: comment,
		})
		if !errors.Is(err, ErrFeedbackRequired) {
			t.Fatalf("comment %q: expected ErrFeedbackRequired, got %v", comment, err)
		}
	}

	// No SQL may run before validation passes.
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestEditedWithoutTextWritesNothing(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewReviewService(db)

	_, err := svc.Apply("t-1", 7, ReviewInput{Action: models.ReviewActionEdited})
	if !errors.Is(err, ErrNewTextRequired) {
		t.Fatalf("expected ErrNewTextRequired, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestUnknownActionRejected(t *testing.T) {
	svc := NewReviewService(nil)

	_, err := svc.Apply("t-1", 7, ReviewInput{Action: "escalate"})
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func translationRow(id string, status string) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("(?i)SELECT \\* FROM .?translations.? WHERE translation_id = \\?"),
		columns: []string{"translation_id", "sentence_id", "language_code", "translator_id", "text", "status", "votes", "review_count"},
		rows: [][]driver.Value{
			{id, int64(1), "tpi", int64(3), "Gude", status, int64(0), int64(0)},
		},
	}
}

func TestApproveWritesReviewHistoryAndAudit(t *testing.T) {
	steps := []*queryStep{
		translationRow("t-1", models.TranslationStatusPending),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .?translation_reviews.?"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)UPDATE .?translations.? SET .*review_count.*"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .?translation_history.?"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .?audit_logs.?"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db)
	svc.now = fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	translation, err := svc.Apply("t-1", 7, ReviewInput{
		Action:    models.ReviewActionApproved,
		IPAddress: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if translation.Status != models.TranslationStatusApproved {
		t.Fatalf("expected status approved, got %s", translation.Status)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestMinorFixReplacesTextAndApproves(t *testing.T) {
	steps := []*queryStep{
		translationRow("t-2", models.TranslationStatusApproved),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .?translation_reviews.?"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)UPDATE .?translations.? SET .*text.*"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .?translation_history.?"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .?audit_logs.?"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db)

	// An already-approved translation stays re-enterable.
	translation, err := svc.Apply("t-2", 7, ReviewInput{
		Action:  models.ReviewActionEdited,
		NewText: "Gutde",
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if translation.Status != models.TranslationStatusApproved {
		t.Fatalf("expected status approved, got %s", translation.Status)
	}
	if translation.Text != "Gutde" {
		t.Fatalf("expected corrected text, got %q", translation.Text)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestApplyMissingTranslation(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT \\* FROM .?translations.? WHERE translation_id = \\?"),
			columns: []string{"translation_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, _, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db)

	_, err := svc.Apply("gone", 7, ReviewInput{Action: models.ReviewActionApproved})
	if !errors.Is(err, ErrTranslationNotFound) {
		t.Fatalf("expected ErrTranslationNotFound, got %v", err)
	}
}
