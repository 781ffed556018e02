// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"taskboard/internal/service"
)

// Format is a rendering of the task list.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. Empty means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s", s)
}

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TITLE}  ({PRIORITY}[, due {DATE}])\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	priority := task.Priority
	if priority == "" {
		priority = service.DefaultPriority
	}
	meta := string(priority)
	if task.DueDate != "" {
		meta += ", due " + task.DueDate
	}
	fmt.Fprintf(w, "%4d  [%s] %s  (%s)\n", num, mark, normalizeTitle(task.Title), meta)
}

// FormatSummary formats the count of open tasks.
func FormatSummary(w io.Writer, remaining int) {
	noun := "tasks"
	if remaining == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "%d %s remaining\n", remaining, noun)
}

// WriteJSON writes tasks as an indented JSON array.
func WriteJSON(w io.Writer, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

// WriteYAML writes tasks as a YAML sequence.
func WriteYAML(w io.Writer, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return err
	}
	return enc.Close()
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
