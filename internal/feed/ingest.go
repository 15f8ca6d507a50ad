package feed

import (
	"context"
	"strings"
	"time"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Catalog interface {
	Upsert(ctx context.Context, products []models.Product) (int, error)
}

type Indexer interface {
	IndexProducts(ctx context.Context, products []models.Product) error
}

type Ingestor struct {
	Source  Source
	Catalog Catalog
	// Indexer is optional. Indexing failures are logged and never fail a refresh.
	Indexer Indexer
}

// RefreshCatalog pulls the full feed and upserts it. Nothing is written
// unless the whole feed was fetched and decoded. Products missing from the
// feed are left in place.
func (ing *Ingestor) RefreshCatalog(ctx context.Context) (int, error) {
	l := logging.FromContext(ctx).With("svc", "feed")
	start := time.Now()

	records, err := ing.Source.Fetch(ctx)
	if err != nil {
		l.Warn("feed_fetch_failed", "error", err)
		return 0, err
	}

	products := make([]models.Product, 0, len(records))
	skipped := 0
	for _, rec := range records {
		if strings.TrimSpace(rec.ID) == "" {
			skipped++
			continue
		}
		products = append(products, rec.Product())
	}
	if skipped > 0 {
		l.Warn("feed_records_skipped", "reason", "missing _id", "count", skipped)
	}

	n, err := ing.Catalog.Upsert(ctx, products)
	if err != nil {
		l.Error("catalog_upsert_failed", "error", err)
		return 0, err
	}

	if ing.Indexer != nil {
		if err := ing.Indexer.IndexProducts(ctx, products); err != nil {
			l.Warn("search_index_failed", "error", err)
		}
	}

	l.Info("catalog_refreshed", "count", n, "duration_ms", time.Since(start).Milliseconds())
	return n, nil
}
