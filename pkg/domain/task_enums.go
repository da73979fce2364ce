package domain

import dErrors "taskdeck/pkg/domain-errors"

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

var validTaskStatuses = map[TaskStatus]bool{
	TaskStatusTodo:       true,
	TaskStatusInProgress: true,
	TaskStatusDone:       true,
}

// ParseTaskStatus constructs a TaskStatus from external input.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid task status")
	}
	return st, nil
}

func (s TaskStatus) IsValid() bool { return validTaskStatuses[s] }
func (s TaskStatus) String() string { return string(s) }

// TaskCategory is a coarse bucket for board grouping.
type TaskCategory string

const (
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
)

var validTaskCategories = map[TaskCategory]bool{
	TaskCategoryWork:     true,
	TaskCategoryPersonal: true,
}

// ParseTaskCategory constructs a TaskCategory from external input.
func ParseTaskCategory(s string) (TaskCategory, error) {
	c := TaskCategory(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid task category")
	}
	return c, nil
}

func (c TaskCategory) IsValid() bool { return validTaskCategories[c] }
func (c TaskCategory) String() string { return string(c) }
