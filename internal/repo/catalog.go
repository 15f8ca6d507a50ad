package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

const upsertBatchSize = 200

func (r *GormRepo) SearchProducts(ctx context.Context, query string, page, size int) (*models.ProductPage, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("%w: page and page size must be positive", domain.ErrValidation)
	}

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&models.Product{})
		if query != "" {
			db = db.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, containsPattern(query))
		}
		return db
	}

	var total int64
	if err := r.DB.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, classify("count products", err)
	}

	pages := util.PageCount(total, size)
	items := make([]models.Product, 0)
	if page <= pages {
		offset, limit := util.Calculate(page, size)
		if err := r.DB.WithContext(ctx).Scopes(scope).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
			return nil, classify("list products", err)
		}
	}

	return &models.ProductPage{
		Items:     items,
		Total:     total,
		PageCount: pages,
		Page:      page,
		PageSize:  size,
	}, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, classify("get product", err)
	}
	return &product, nil
}

// UpsertProducts writes every product keyed by id in one transaction and
// returns the number of distinct records written. Repeated ids in one call
// keep the last occurrence.
func (r *GormRepo) UpsertProducts(ctx context.Context, products []models.Product) (int, error) {
	batch := dedupeByID(products)
	if len(batch) == 0 {
		return 0, nil
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).CreateInBatches(&batch, upsertBatchSize).Error
	})
	if err != nil {
		return 0, classify("upsert products", err)
	}
	return len(batch), nil
}

func dedupeByID(products []models.Product) []models.Product {
	pos := make(map[string]int, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if i, ok := pos[p.ID]; ok {
			out[i] = p
			continue
		}
		pos[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}
