package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

const maxFeedBytes = 32 << 20

type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// Record is one product as the upstream feed encodes it.
type Record struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       flexFloat `json:"price"`
	RentPrice   flexFloat `json:"rentprice"`
	Size        string    `json:"size"`
	Image       string    `json:"image"`
	Rating      struct {
		Rate  flexFloat `json:"rate"`
		Count int       `json:"count"`
	} `json:"rating"`
}

func (r Record) Product() models.Product {
	count := r.Rating.Count
	if count < 0 {
		count = 0
	}
	return models.Product{
		ID:          r.ID,
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
		Price:       float64(r.Price),
		RentPrice:   float64(r.RentPrice),
		Size:        r.Size,
		Image:       r.Image,
		Rating:      models.Rating{Rate: float64(r.Rating.Rate), Count: count},
	}
}

// flexFloat accepts both 12.5 and "12.5"; the feed has shipped both.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("feed: bad number %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Fetch downloads and decodes the whole feed. Every failure is reported as
// ErrFeedUnavailable.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: upstream status %d", domain.ErrFeedUnavailable, resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrFeedUnavailable, err)
	}
	return records, nil
}
