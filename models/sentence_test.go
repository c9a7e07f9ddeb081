package models

import (
	"testing"
	"time"
)

func TestLockedByOther(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	holder := 3
	future := now.Add(5 * time.Minute)
	past := now.Add(-time.Second)

	cases := []struct {
		name     string
		sentence Sentence
		userID   int
		want     bool
	}{
		{"unlocked", Sentence{}, 5, false},
		{"own active lock", Sentence{LockedBy: &holder, LockedUntil: &future}, 3, false},
		{"foreign active lock", Sentence{LockedBy: &holder, LockedUntil: &future}, 5, true},
		{"foreign expired lock", Sentence{LockedBy: &holder, LockedUntil: &past}, 5, false},
		{"lock expiring right now", Sentence{LockedBy: &holder, LockedUntil: &now}, 5, false},
		{"holder without expiry", Sentence{LockedBy: &holder}, 5, false},
	}

	for _, tc := range cases {
		if got := tc.sentence.LockedByOther(tc.userID, now); got != tc.want {
			t.Errorf("%s: LockedByOther(%d) = %v, want %v", tc.name, tc.userID, got, tc.want)
		}
	}
}
