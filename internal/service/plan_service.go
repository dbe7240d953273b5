package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/repository"
)

// PlanService handles growth plan business logic operations.
// An account carries at most one plan; saving replaces the existing one, and
// the plan's effective start date moves forward with each update.
type PlanService struct {
	planRepo *repository.PlanRepository
}

// NewPlanService creates a new PlanService with the provided repository.
func NewPlanService(planRepo *repository.PlanRepository) *PlanService {
	return &PlanService{
		planRepo: planRepo,
	}
}

// GetPlan retrieves the account's growth plan.
// Returns apperrors.ErrGrowthPlanNotFound when the account has none.
func (s *PlanService) GetPlan(accountID string) (model.GrowthPlan, error) {
	return s.planRepo.GetPlanOnAccountID(accountID)
}

// SavePlan creates or replaces the account's growth plan.
// The stored row keeps its original ID and creation time across updates; the
// updated_at column advances, which moves the projected series' start date.
func (s *PlanService) SavePlan(plan model.GrowthPlan) (model.GrowthPlan, error) {
	existing, err := s.planRepo.GetPlanOnAccountID(plan.AccountID)
	switch {
	case err == nil:
		plan.ID = existing.ID
	case errors.Is(err, apperrors.ErrGrowthPlanNotFound):
		plan.ID = uuid.New().String()
	default:
		return model.GrowthPlan{}, err
	}

	if err := s.planRepo.UpsertPlan(plan); err != nil {
		return model.GrowthPlan{}, err
	}
	return s.planRepo.GetPlanOnAccountID(plan.AccountID)
}
