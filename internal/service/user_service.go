package service

import (
	"context"

	"thesisdesk/internal/model"
	"thesisdesk/internal/repository"
)

// UserService handles user and group list/detail/count queries
type UserService struct {
	userRepo  repository.UserRepo
	groupRepo repository.GroupRepo
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepo, groupRepo repository.GroupRepo) *UserService {
	return &UserService{userRepo: userRepo, groupRepo: groupRepo}
}

func (s *UserService) ListUsers(ctx context.Context, role model.UserRole, groupID string) ([]*model.User, error) {
	return s.userRepo.List(ctx, role, groupID)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) CountUsers(ctx context.Context, role model.UserRole) (int64, error) {
	return s.userRepo.Count(ctx, role)
}

func (s *UserService) CreateUser(ctx context.Context, user *model.User) (string, error) {
	return s.userRepo.Create(ctx, user)
}

func (s *UserService) ListGroups(ctx context.Context, kind string) ([]*model.Group, error) {
	return s.groupRepo.List(ctx, kind)
}

func (s *UserService) GetGroup(ctx context.Context, id string) (*model.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

func (s *UserService) CountGroups(ctx context.Context, kind string) (int64, error) {
	return s.groupRepo.Count(ctx, kind)
}
