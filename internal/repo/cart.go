package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

type cartRow struct {
	ID          string
	ProductID   string
	Quantity    int
	AddedAt     time.Time
	JoinedID    *string
	JoinedTitle *string
	JoinedPrice *float64
	JoinedImage *string
}

func (row cartRow) line() models.CartLine {
	l := models.CartLine{
		ID:        row.ID,
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		AddedAt:   row.AddedAt,
	}
	if row.JoinedID != nil {
		l.Available = true
		l.Product = &models.ProductSnapshot{ID: *row.JoinedID}
		if row.JoinedTitle != nil {
			l.Product.Title = *row.JoinedTitle
		}
		if row.JoinedPrice != nil {
			l.Product.Price = *row.JoinedPrice
		}
		if row.JoinedImage != nil {
			l.Product.Image = *row.JoinedImage
		}
	}
	return l
}

// ListCart returns every line of the user in insertion order. Lines whose
// product has disappeared come back with Available false and no snapshot.
func (r *GormRepo) ListCart(ctx context.Context, userID string) ([]models.CartLine, error) {
	var rows []cartRow
	err := r.DB.WithContext(ctx).
		Table("cart_items AS ci").
		Select(`ci.id AS id, ci.product_id AS product_id, ci.quantity AS quantity, ci.added_at AS added_at,
			p.id AS joined_id, p.title AS joined_title, p.price AS joined_price, p.image AS joined_image`).
		Joins("LEFT JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Order("ci.added_at ASC, ci.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, classify("list cart", err)
	}

	lines := make([]models.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.line())
	}
	return lines, nil
}

// AddToCart merges quantity into the user's line for the product, creating it
// when absent. The merge is one INSERT .. ON CONFLICT statement so concurrent
// adds for the same pair never produce two rows.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}

	var (
		item    models.CartItem
		product models.Product
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			return err
		}

		insert := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(&insert).Error; err != nil {
			return err
		}

		// insert carries a fresh id even when the existing row was merged, so
		// the stored line is read into a zero value.
		return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	})
	if err != nil {
		return nil, classify("add to cart", err)
	}

	return &models.CartLine{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		AddedAt:   item.AddedAt,
		Available: true,
		Product: &models.ProductSnapshot{
			ID:    product.ID,
			Title: product.Title,
			Price: product.Price,
			Image: product.Image,
		},
	}, nil
}

func (r *GormRepo) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}

	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", itemID).First(&item).Error
	})
	if err != nil {
		return nil, classify("update cart item", err)
	}
	return &item, nil
}

// RemoveCartItem deletes the line and returns it as it was.
func (r *GormRepo) RemoveCartItem(ctx context.Context, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return nil, classify("remove cart item", err)
	}
	return &item, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, classify("clear cart", res.Error)
	}
	return res.RowsAffected, nil
}
