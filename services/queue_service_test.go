package services

import (
	"database/sql/driver"
	"math/rand"
	"regexp"
	"testing"
	"time"
	"tokples-api/models"
)

func makeSentences(difficulties ...int) []models.Sentence {
	out := make([]models.Sentence, len(difficulties))
	for i, d := range difficulties {
		out[i] = models.Sentence{
			SentenceID: i + 1,
			Status:     models.SentenceStatusOpen,
			Difficulty: d,
		}
	}
	return out
}

func TestOrderCandidatesNewTranslatorGetsEasyFirst(t *testing.T) {
	window := makeSentences(3, 1, 2, 1, 3, 2)
	orderCandidates(window, false, rand.New(rand.NewSource(1)))

	for i := 1; i < len(window); i++ {
		if window[i-1].Difficulty > window[i].Difficulty {
			t.Fatalf("window not ascending by difficulty at %d: %v > %v",
				i, window[i-1].Difficulty, window[i].Difficulty)
		}
	}
}

func TestOrderCandidatesExperiencedGetsHardFirst(t *testing.T) {
	window := makeSentences(1, 3, 2, 2, 1, 3)
	orderCandidates(window, true, rand.New(rand.NewSource(1)))

	for i := 1; i < len(window); i++ {
		if window[i-1].Difficulty < window[i].Difficulty {
			t.Fatalf("window not descending by difficulty at %d: %v < %v",
				i, window[i-1].Difficulty, window[i].Difficulty)
		}
	}
}

func TestOrderCandidatesPreservesWindowMembers(t *testing.T) {
	window := makeSentences(2, 1, 3, 1, 2)
	before := make(map[int]bool, len(window))
	for _, s := range window {
		before[s.SentenceID] = true
	}

	orderCandidates(window, false, rand.New(rand.NewSource(42)))

	if len(window) != len(before) {
		t.Fatalf("window size changed: %d", len(window))
	}
	for _, s := range window {
		if !before[s.SentenceID] {
			t.Fatalf("unexpected sentence %d after ordering", s.SentenceID)
		}
	}
}

func TestPickCandidateFilters(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	otherUser := 99
	expired := now.Add(-time.Minute)
	active := now.Add(5 * time.Minute)

	window := []models.Sentence{
		{SentenceID: 1}, // excluded
		{SentenceID: 2}, // already translated
		{SentenceID: 3, LockedBy: &otherUser, LockedUntil: &active},  // held by other
		{SentenceID: 4, LockedBy: &otherUser, LockedUntil: &expired}, // expired lock: free
	}

	got := pickCandidate(window, 7,
		map[int]bool{1: true},
		map[int]bool{2: true},
		now)
	if got == nil {
		t.Fatal("expected a candidate")
	}
	if got.SentenceID != 4 {
		t.Fatalf("expected sentence 4 (expired lock), got %d", got.SentenceID)
	}
}

func TestPickCandidateAcceptsOwnLock(t *testing.T) {
	now := time.Now()
	me := 7
	active := now.Add(5 * time.Minute)

	window := []models.Sentence{
		{SentenceID: 1, LockedBy: &me, LockedUntil: &active},
	}

	got := pickCandidate(window, me, nil, nil, now)
	if got == nil || got.SentenceID != 1 {
		t.Fatalf("expected own-locked sentence to remain valid, got %v", got)
	}
}

func TestNextTaskReturnsNoTaskWhenLockRaceLost(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT .?sentence_id.? FROM .?user_translated_sentences.?"),
			columns: []string{"sentence_id"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT count.*FROM .?user_translated_sentences.?"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT \\* FROM .?sentences.? WHERE status = \\?.*ORDER BY priority_score DESC"),
			columns: []string{"sentence_id", "source_text", "status", "difficulty", "translation_count", "target_redundancy"},
			rows: [][]driver.Value{
				{int64(5), "Hello", "open", int64(1), int64(0), int64(2)},
			},
		},
		{
			// another allocator won the lock between query and acquire
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)UPDATE .?sentences.? SET .*locked_by.*"),
			result:  scriptedResult{rowsAffected: 0},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT count.*FROM .?sentences.?"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	locks := NewLockService(db)
	queue := NewQueueService(db, locks, rand.New(rand.NewSource(1)))

	sentence, err := queue.NextTask(7, nil)
	if err != nil {
		t.Fatalf("NextTask returned error: %v", err)
	}
	if sentence != nil {
		t.Fatalf("expected no task after losing the lock race, got %d", sentence.SentenceID)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestNextTaskExhaustedQueue(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT .?sentence_id.? FROM .?user_translated_sentences.?"),
			columns: []string{"sentence_id"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT count.*FROM .?user_translated_sentences.?"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT \\* FROM .?sentences.? WHERE status = \\?.*ORDER BY priority_score DESC"),
			columns: []string{"sentence_id"},
			rows:    [][]driver.Value{},
		},
		{
			// priority window empty, unordered fallback also empty
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT \\* FROM .?sentences.? WHERE status = \\?"),
			columns: []string{"sentence_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	locks := NewLockService(db)
	queue := NewQueueService(db, locks, rand.New(rand.NewSource(1)))

	sentence, err := queue.NextTask(7, nil)
	if err != nil {
		t.Fatalf("NextTask returned error: %v", err)
	}
	if sentence != nil {
		t.Fatalf("expected nil sentence on exhausted queue, got %d", sentence.SentenceID)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
