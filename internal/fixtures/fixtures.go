// Package fixtures provides the sample tasks loaded on every start.
package fixtures

import (
	"time"

	"github.com/nhle/achievo/internal/model"
)

// Tasks returns the sample collection, stamped with createdAt.
func Tasks(createdAt time.Time) []model.Task {
	createdAt = createdAt.UTC()
	proposalDue := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	feedbackDue := time.Date(2024, 12, 22, 0, 0, 0, 0, time.UTC)

	return []model.Task{
		{
			ID:          "1",
			Title:       "Complete project proposal",
			Description: "Finalize the Q4 project proposal and submit to management",
			Priority:    model.PriorityHigh,
			DueDate:     &proposalDue,
			Completed:   false,
			CreatedAt:   createdAt,
		},
		{
			ID:          "2",
			Title:       "Review team feedback",
			Description: "Go through all team feedback from last sprint",
			Priority:    model.PriorityMedium,
			DueDate:     &feedbackDue,
			Completed:   true,
			CreatedAt:   createdAt,
		},
	}
}
