package service

import (
	"context"
	"errors"

	"thesisdesk/internal/cache"
	"thesisdesk/internal/model"
	"thesisdesk/internal/repository"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleService handles defense schedule CRUD
type ScheduleService struct {
	scheduleRepo repository.ScheduleRepo
	feedbackRepo repository.FeedbackRepo
	scoreboard   cache.ScoreboardCache
}

// NewScheduleService creates a new schedule service
func NewScheduleService(scheduleRepo repository.ScheduleRepo, feedbackRepo repository.FeedbackRepo, scoreboard cache.ScoreboardCache) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo, feedbackRepo: feedbackRepo, scoreboard: scoreboard}
}

func (s *ScheduleService) Create(ctx context.Context, schedule *model.DefenseSchedule) (string, error) {
	return s.scheduleRepo.Create(ctx, schedule)
}

func (s *ScheduleService) Get(ctx context.Context, id string) (*model.DefenseSchedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	return schedule, nil
}

func (s *ScheduleService) List(ctx context.Context, status model.ScheduleStatus, groupID string) ([]*model.DefenseSchedule, error) {
	return s.scheduleRepo.List(ctx, status, groupID)
}

func (s *ScheduleService) Update(ctx context.Context, schedule *model.DefenseSchedule) error {
	existing, err := s.scheduleRepo.GetByID(ctx, schedule.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrScheduleNotFound
	}
	schedule.CreatedAt = existing.CreatedAt
	return s.scheduleRepo.Update(ctx, schedule)
}

// FeedbackProgress reports how many finalized feedback records exist for a
// schedule, for the admin list pages
func (s *ScheduleService) FeedbackProgress(ctx context.Context, scheduleID string) (int64, error) {
	return s.feedbackRepo.CountBySchedule(ctx, scheduleID)
}

// Scoreboard returns reviewers ranked by their submitted score percentage
func (s *ScheduleService) Scoreboard(ctx context.Context, scheduleID string, limit int) ([]cache.ScoreboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.scoreboard.GetTop(ctx, scheduleID, limit)
}
