package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"home_climate/internal/models"
	"home_climate/internal/repository"
)

type CommandLogService struct {
	repo repository.CommandRepo
}

func NewCommandLogService(repo repository.CommandRepo) *CommandLogService {
	return &CommandLogService{repo: repo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func (s *CommandLogService) List(ctx context.Context, f CommandFilter) ([]models.ControlCommand, error) {
	from, to := normalizeToUTC(f.From), normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, fmt.Errorf("%w: from must be <= to", ErrInvalidInput)
	}
	return s.repo.List(ctx, from, to, strings.ToLower(strings.TrimSpace(f.Type)))
}
