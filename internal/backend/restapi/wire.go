package restapi

import "taskboard/internal/service"

// wireTask is a task as the API encodes it. The id field name differs by
// endpoint: listed tasks use "_id", freshly created ones "task_id".
type wireTask struct {
	ID        string  `json:"id"`
	MongoID   string  `json:"_id"`
	TaskID    string  `json:"task_id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"due_date"`
	UserID    string  `json:"user_id"`
}

func (w wireTask) toTask(defaultOwner string) service.Task {
	t := service.Task{
		ID:          firstNonEmpty(w.ID, w.MongoID, w.TaskID),
		Title:       w.Title,
		Completed:   w.Completed,
		Priority:    service.DefaultPriority,
		OwnerUserID: firstNonEmpty(w.UserID, defaultOwner),
	}
	if p, err := service.ParsePriority(w.Priority); err == nil {
		t.Priority = p
	}
	if w.DueDate != nil {
		t.DueDate = *w.DueDate
	}
	return t
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
