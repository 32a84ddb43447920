package service

import (
	"context"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/MateoL17/LinKage/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Discover returns every profile except the caller's own.
func (s *UserService) Discover(ctx context.Context, username string) ([]domain.ProfileSummary, error) {
	users, err := s.userRepo.ListExcept(ctx, username)
	if err != nil {
		return nil, err
	}

	profiles := []domain.ProfileSummary{}
	for _, u := range users {
		profiles = append(profiles, u.Summary())
	}
	return profiles, nil
}
