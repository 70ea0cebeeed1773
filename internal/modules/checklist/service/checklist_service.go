package service

import (
	"fmt"
	"strings"

	"lofi/internal/modules/checklist/domain"
	"lofi/internal/platform/clock"
	apperrors "lofi/internal/platform/errors"
	"lofi/internal/platform/id"
)

type ChecklistService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewChecklistService(clock clock.Clock, idGen id.Generator) *ChecklistService {
	return &ChecklistService{clock: clock, idGen: idGen}
}

func (s *ChecklistService) Today() string {
	return clock.Today(s.clock)
}

// NewTask keeps the submitted text as typed; only blank input is rejected.
func (s *ChecklistService) NewTask(text string) (domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Task{}, fmt.Errorf("task text is required: %w", apperrors.ErrInvalidInput)
	}
	return domain.Task{
		ID:          s.idGen.New(),
		Text:        text,
		IsCompleted: false,
		Date:        s.Today(),
	}, nil
}

// DailyReset returns the list to keep for today and whether it was reset.
func (s *ChecklistService) DailyReset(tasks []domain.Task) ([]domain.Task, bool) {
	if domain.IsStale(tasks, s.Today()) {
		return []domain.Task{}, true
	}
	return tasks, false
}

func (s *ChecklistService) Streak(stats domain.Stats, tasks []domain.Task) (domain.Stats, bool) {
	return domain.ApplyStreak(stats, tasks, s.Today())
}
