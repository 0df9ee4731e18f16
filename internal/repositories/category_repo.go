package repositories

import (
	"context"
	"errors"

	"menuboard/internal/common"
	"menuboard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories use. pgxmock's
// pool interface satisfies it too.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Category, error)
	MaxOrder(ctx context.Context) (int, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, "order", main_image, title_en, title_ar, description_en, description_ar, tagline_en, tagline_ar, extras_en, extras_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	taglineEn, taglineAr := localizedPtrs(category.Tagline)
	extrasEn, extrasAr := localizedPtrs(category.Extras)
	_, err := r.db.Exec(ctx, query, category.ID, category.Order, category.MainImage,
		category.Title.En, category.Title.Ar, category.Description.En, category.Description.Ar,
		taglineEn, taglineAr, extrasEn, extrasAr)
	return err
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
		SELECT id, "order", main_image, title_en, title_ar, description_en, description_ar, tagline_en, tagline_ar, extras_en, extras_ar, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	category, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate) error {
	// COALESCE keeps columns untouched for fields the caller did not set,
	// mirroring a document merge-update.
	query := `
		UPDATE categories
		SET "order" = COALESCE($1, "order"),
		    main_image = COALESCE($2, main_image),
		    title_en = COALESCE($3, title_en),
		    title_ar = COALESCE($4, title_ar),
		    description_en = COALESCE($5, description_en),
		    description_ar = COALESCE($6, description_ar),
		    tagline_en = COALESCE($7, tagline_en),
		    tagline_ar = COALESCE($8, tagline_ar),
		    extras_en = COALESCE($9, extras_en),
		    extras_ar = COALESCE($10, extras_ar),
		    updated_at = NOW()
		WHERE id = $11
	`
	titleEn, titleAr := localizedPtrs(update.Title)
	descriptionEn, descriptionAr := localizedPtrs(update.Description)
	taglineEn, taglineAr := localizedPtrs(update.Tagline)
	extrasEn, extrasAr := localizedPtrs(update.Extras)
	tag, err := r.db.Exec(ctx, query, update.Order, update.MainImage,
		titleEn, titleAr, descriptionEn, descriptionAr,
		taglineEn, taglineAr, extrasEn, extrasAr, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, "order", main_image, title_en, title_ar, description_en, description_ar, tagline_en, tagline_ar, extras_en, extras_ar, created_at, updated_at
		FROM categories
		ORDER BY "order" ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) MaxOrder(ctx context.Context) (int, error) {
	var max int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX("order"), 0) FROM categories`).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	category := &models.Category{}
	var taglineEn, taglineAr, extrasEn, extrasAr *string
	err := row.Scan(&category.ID, &category.Order, &category.MainImage,
		&category.Title.En, &category.Title.Ar,
		&category.Description.En, &category.Description.Ar,
		&taglineEn, &taglineAr, &extrasEn, &extrasAr,
		&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	category.Tagline = localizedFromPtrs(taglineEn, taglineAr)
	category.Extras = localizedFromPtrs(extrasEn, extrasAr)
	return category, nil
}

func localizedPtrs(text *models.LocalizedText) (en, ar *string) {
	if text == nil {
		return nil, nil
	}
	return &text.En, &text.Ar
}

func localizedFromPtrs(en, ar *string) *models.LocalizedText {
	if en == nil && ar == nil {
		return nil
	}
	text := &models.LocalizedText{}
	if en != nil {
		text.En = *en
	}
	if ar != nil {
		text.Ar = *ar
	}
	return text
}
