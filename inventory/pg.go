// Package inventory reads and maintains the kitchen ingredient table.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrIngredientExists   = errors.New("ingredient already exists")
)

const uniqueViolation = "23505"

type Pg struct {
	db *gorm.DB
}

func NewPg(db *gorm.DB) *Pg {
	return &Pg{db: db}
}

func (p *Pg) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := p.db.WithContext(ctx).Order("id").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	return ingredients, nil
}

func (p *Pg) CreateIngredient(ctx context.Context, in *models.Ingredient) error {
	if err := Validate(in); err != nil {
		return err
	}

	if err := p.db.WithContext(ctx).Create(in).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrIngredientExists, in.Name)
		}
		return fmt.Errorf("failed to create ingredient: %w", err)
	}

	return nil
}

func (p *Pg) DeleteIngredient(ctx context.Context, name string) error {
	res := p.db.WithContext(ctx).Where("ingredient_name = ?", name).Delete(&models.Ingredient{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrIngredientNotFound, name)
	}

	return nil
}

// UpdateIngredient overwrites every field of the ingredient called name,
// including renaming it.
func (p *Pg) UpdateIngredient(ctx context.Context, name string, in *models.Ingredient) error {
	if err := Validate(in); err != nil {
		return err
	}

	res := p.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Where("ingredient_name = ?", name).
		Select("ingredient_name", "ingredient_type", "ingredient_sub_type", "shelf_life_days", "quantity", "unit", "unitprice").
		Updates(in)

	return p.checkUpdate(res, name)
}

func (p *Pg) UpdateQuantity(ctx context.Context, name string, quantity float64) error {
	if quantity < 0 {
		return apperrors.Invalid("quantity", "must not be negative")
	}

	res := p.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Where("ingredient_name = ?", name).
		Update("quantity", quantity)

	return p.checkUpdate(res, name)
}

func (p *Pg) UpdateShelfLife(ctx context.Context, name string, days int) error {
	if days < 0 {
		return apperrors.Invalid("shelf_life_days", "must not be negative")
	}

	res := p.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Where("ingredient_name = ?", name).
		Update("shelf_life_days", days)

	return p.checkUpdate(res, name)
}

func (p *Pg) checkUpdate(res *gorm.DB, name string) error {
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return fmt.Errorf("%w: %s", ErrIngredientExists, name)
		}
		return fmt.Errorf("failed to update ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrIngredientNotFound, name)
	}

	return nil
}

// Validate rejects ingredients the table must never hold.
func Validate(in *models.Ingredient) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return apperrors.Invalid("ingredient_name", "is required")
	case in.Quantity < 0:
		return apperrors.Invalid("quantity", "must not be negative")
	case in.ShelfLifeDays < 0:
		return apperrors.Invalid("shelf_life_days", "must not be negative")
	case in.UnitPrice < 0:
		return apperrors.Invalid("unit_price", "must not be negative")
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}
