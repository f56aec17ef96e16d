package statusutil

import (
	"fmt"
	"strings"

	"weekplan/internal/model"
)

// Normalize parses user or stored input into a task status.
// Common aliases from other planners are accepted so CLI input stays forgiving.
func Normalize(s string) (model.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "todo":
		return model.StatusPending, nil
	case "completed", "done":
		return model.StatusCompleted, nil
	case "overdue", "late":
		return model.StatusOverdue, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("invalid status: %q", strings.TrimSpace(s))
	}
}

// Label is the display form used in tooltips and CLI output.
func Label(st model.Status) string {
	if !st.Valid() {
		return string(model.StatusPending)
	}
	return string(st)
}

func IsEndState(st model.Status) bool {
	return st == model.StatusCompleted
}
