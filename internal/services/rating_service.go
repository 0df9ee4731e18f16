package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"menuboard/internal/caching"
	"menuboard/internal/common"
	"menuboard/internal/models"
	"menuboard/internal/repositories"

	"github.com/google/uuid"
)

// Rating submissions are throttled per client key.
const (
	ratingSubmitLimit  = 5
	ratingSubmitWindow = time.Hour
)

type RatingService interface {
	Submit(ctx context.Context, input *models.RatingInput, userAgent, clientKey string) (uuid.UUID, error)
	List(ctx context.Context) ([]*models.Rating, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*models.RatingStats, error)
}

type ratingService struct {
	ratingRepo repositories.RatingRepository
	limiter    caching.RateLimiter
}

func NewRatingService(ratingRepo repositories.RatingRepository, limiter caching.RateLimiter) RatingService {
	return &ratingService{ratingRepo: ratingRepo, limiter: limiter}
}

func (s *ratingService) Submit(ctx context.Context, input *models.RatingInput, userAgent, clientKey string) (uuid.UUID, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return uuid.Nil, &common.ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	}

	if s.limiter != nil && clientKey != "" {
		limited, err := s.limiter.IsRateLimited(ctx, "rating:"+clientKey, ratingSubmitLimit, ratingSubmitWindow)
		if err == nil && limited {
			return uuid.Nil, common.ErrRateLimited
		}
		// A limiter failure never blocks the submission.
	}

	rating := &models.Rating{
		ID:       uuid.New(),
		Rating:   input.Rating,
		Feedback: strings.TrimSpace(input.Feedback),
	}
	if userAgent != "" {
		rating.UserAgent = &userAgent
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return uuid.Nil, common.RemoteErr("submit rating", err)
	}
	return rating.ID, nil
}

func (s *ratingService) List(ctx context.Context) ([]*models.Rating, error) {
	ratings, err := s.ratingRepo.List(ctx)
	if err != nil {
		return nil, common.RemoteErr("list ratings", err)
	}
	return ratings, nil
}

func (s *ratingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return common.RemoteErr("delete rating", err)
	}
	return nil
}

func (s *ratingService) Stats(ctx context.Context) (*models.RatingStats, error) {
	ratings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.RatingStats{
		Breakdown: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	total := 0
	for _, rating := range ratings {
		stats.Breakdown[rating.Rating]++
		total += rating.Rating
	}
	stats.Total = len(ratings)
	if stats.Total > 0 {
		stats.Average = float64(total) / float64(stats.Total)
	}
	return stats, nil
}
