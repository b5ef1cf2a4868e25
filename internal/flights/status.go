package flights

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusCancelled  Status = "CANCELLED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusScheduled, StatusCancelled, StatusInProgress, StatusCompleted:
		return status, nil
	}
	return "", fmt.Errorf("unknown flight status %q", s)
}

// CanTransitionTo reports whether the status change is allowed. CANCELLED and
// COMPLETED are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
