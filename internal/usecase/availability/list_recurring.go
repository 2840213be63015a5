package availability

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListRecurring struct {
	repo scheduling.Repository
}

func NewListRecurring(repo scheduling.Repository) *ListRecurring {
	return &ListRecurring{repo: repo}
}

func (uc *ListRecurring) Execute(
	ctx context.Context,
	doctorUserID string,
) ([]models.RecurringAvailability, error) {
	return uc.repo.ListTemplates(ctx, doctorUserID)
}
