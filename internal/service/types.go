// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"
	"strings"
)

// Priority is the urgency label attached to a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultPriority is used when a task carries no priority.
const DefaultPriority = PriorityMedium

// ParsePriority parses a priority name (case-insensitive, trimmed).
// An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultPriority, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}

// Task represents a single task item.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Completed   bool     `json:"completed" yaml:"completed"`
	Priority    Priority `json:"priority" yaml:"priority"`
	DueDate     string   `json:"due_date,omitempty" yaml:"due_date,omitempty"` // empty when absent
	OwnerUserID string   `json:"user_id" yaml:"user_id"`
}

// NewTask holds the fields sent when creating a task.
type NewTask struct {
	Title    string
	UserID   string
	Priority Priority
	DueDate  string
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Completed *bool
}
