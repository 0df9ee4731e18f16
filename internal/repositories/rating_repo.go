package repositories

import (
	"context"

	"menuboard/internal/common"
	"menuboard/internal/models"

	"github.com/google/uuid"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	List(ctx context.Context) ([]*models.Rating, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ratingRepo struct {
	db Database
}

func NewRatingRepo(db Database) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (id, rating, feedback, user_agent, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, rating.ID, rating.Rating, rating.Feedback, rating.UserAgent)
	return err
}

func (r *ratingRepo) List(ctx context.Context) ([]*models.Rating, error) {
	query := `
		SELECT id, rating, feedback, user_agent, created_at
		FROM ratings
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*models.Rating
	for rows.Next() {
		rating := &models.Rating{}
		if err := rows.Scan(&rating.ID, &rating.Rating, &rating.Feedback, &rating.UserAgent, &rating.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func (r *ratingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
