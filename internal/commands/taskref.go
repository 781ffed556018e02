package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskboard/internal/service"
	"taskboard/internal/tasklist"
)

// TaskRef identifies a task on the command line.
type TaskRef struct {
	Num int    // 1-based position in the unfiltered list, 0 if not numeric
	ID  string // the argument as given, tried as a task id
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// An all-digit argument is a list position (as printed by `list`) and,
// failing that, a task id. Anything else is a task id.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := strings.TrimSpace(args[0])
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	ref := TaskRef{ID: arg}
	if isAllDigits(arg) {
		// Too large for a position; still usable as an id.
		if num, err := strconv.Atoi(arg); err == nil {
			ref.Num = num
		}
	}
	return ref, nil
}

// String returns the reference as the user wrote it.
func (r TaskRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return strconv.Itoa(r.Num)
}

// ResolveTaskRef finds the referenced task in a loaded list. A position
// in range wins over a task whose id is the same digits.
func ResolveTaskRef(st *tasklist.State, ref TaskRef) (service.Task, error) {
	if ref.Num > 0 {
		if tasks := st.Tasks(); ref.Num <= len(tasks) {
			return tasks[ref.Num-1], nil
		}
	}
	if ref.ID != "" {
		if task, ok := st.Find(ref.ID); ok {
			return task, nil
		}
	}
	if ref.Num > 0 || isAllDigits(ref.ID) {
		return service.Task{}, fmt.Errorf("task number out of range: %s", ref)
	}
	return service.Task{}, fmt.Errorf("task not found: %s", ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
