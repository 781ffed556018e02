// Package view derives what the task list screen shows.
package view

import (
	"fmt"
	"strings"

	"taskboard/internal/service"
)

// Mode selects tasks by completion status.
type Mode string

const (
	ModeAll       Mode = "all"
	ModePending   Mode = "pending"
	ModeCompleted Mode = "completed"
)

// Empty-state messages.
const (
	MsgNoTasks       = "No tasks yet. Start by adding one!"
	MsgNoFilterMatch = "No tasks for this filter."
)

// ParseMode parses a mode name (case-insensitive). Empty means ModeAll.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAll, nil
	case ModeAll, ModePending, ModeCompleted:
		return m, nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// Filter returns the tasks matching mode whose title contains query,
// compared case-insensitively. An empty query matches every title.
// Input order is preserved and the input slice is not modified.
func Filter(tasks []service.Task, mode Mode, query string) []service.Task {
	q := strings.ToLower(query)
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if !Matches(t, mode, q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Matches reports whether t passes both the status and the text predicate.
// query must already be lower-cased.
func Matches(t service.Task, mode Mode, query string) bool {
	switch mode {
	case ModeCompleted:
		if !t.Completed {
			return false
		}
	case ModePending:
		if t.Completed {
			return false
		}
	}
	return strings.Contains(strings.ToLower(t.Title), query)
}

// EmptyMessage is shown when the filtered list is empty. total is the
// size of the unfiltered list.
func EmptyMessage(total int) string {
	if total == 0 {
		return MsgNoTasks
	}
	return MsgNoFilterMatch
}
