package repositories

import (
	"context"
	"errors"

	"menuboard/internal/common"
	"menuboard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ItemRepository manages menu items. Every operation is scoped by the owning
// category id, mirroring a per-category nested collection.
type ItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, categoryID, id uuid.UUID) (*models.MenuItem, error)
	Update(ctx context.Context, categoryID, id uuid.UUID, update *models.MenuItemUpdate) error
	Delete(ctx context.Context, categoryID, id uuid.UUID) error
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.MenuItem, error)
	MaxOrder(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type itemRepo struct {
	db Database
}

func NewItemRepo(db Database) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, category_id, "order", name_en, name_ar, image, price, price_m, price_l, price_liter, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.CategoryID, item.Order,
		item.Name.En, item.Name.Ar, item.Image,
		item.Price, item.PriceM, item.PriceL, item.PriceLiter)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, categoryID, id uuid.UUID) (*models.MenuItem, error) {
	query := `
		SELECT id, category_id, "order", name_en, name_ar, image, price, price_m, price_l, price_liter, created_at, updated_at
		FROM menu_items
		WHERE category_id = $1 AND id = $2
	`
	item, err := scanItem(r.db.QueryRow(ctx, query, categoryID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Update(ctx context.Context, categoryID, id uuid.UUID, update *models.MenuItemUpdate) error {
	query := `
		UPDATE menu_items
		SET "order" = COALESCE($1, "order"),
		    name_en = COALESCE($2, name_en),
		    name_ar = COALESCE($3, name_ar),
		    image = COALESCE($4, image),
		    price = COALESCE($5, price),
		    price_m = COALESCE($6, price_m),
		    price_l = COALESCE($7, price_l),
		    price_liter = COALESCE($8, price_liter),
		    updated_at = NOW()
		WHERE category_id = $9 AND id = $10
	`
	nameEn, nameAr := localizedPtrs(update.Name)
	tag, err := r.db.Exec(ctx, query, update.Order, nameEn, nameAr, update.Image,
		update.Price, update.PriceM, update.PriceL, update.PriceLiter, categoryID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, categoryID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE category_id = $1 AND id = $2`, categoryID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *itemRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.MenuItem, error) {
	query := `
		SELECT id, category_id, "order", name_en, name_ar, image, price, price_m, price_l, price_liter, created_at, updated_at
		FROM menu_items
		WHERE category_id = $1
		ORDER BY "order" ASC
	`
	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.MenuItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) MaxOrder(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var max int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX("order"), 0) FROM menu_items WHERE category_id = $1`, categoryID).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

func scanItem(row pgx.Row) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := row.Scan(&item.ID, &item.CategoryID, &item.Order,
		&item.Name.En, &item.Name.Ar, &item.Image,
		&item.Price, &item.PriceM, &item.PriceL, &item.PriceLiter,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}
