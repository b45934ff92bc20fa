package product

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

const maxCatalogBytes = 8 << 20

type httpSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource fetches the catalog with a GET returning a JSON array of products.
func NewHTTPSource(url string, timeout time.Duration) Source {
	return &httpSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *httpSource) List(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "source"),
		zap.String("method", "HTTPList"),
		zap.String("url", s.url),
	)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error("catalog request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("catalog responded with error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		log.Error("failed reading catalog body", zap.Error(err))
		return nil, err
	}

	products, rejected, err := DecodeCatalog(body)
	if err != nil {
		log.Error("failed decoding catalog", zap.Error(err))
		return nil, err
	}

	for _, r := range rejected {
		log.Warn("catalog entry rejected",
			zap.Int("index", r.Index),
			zap.String("product_id", r.ID),
			zap.String("reason", r.Reason),
		)
	}

	log.Info("catalog fetched",
		zap.Int("count", len(products)),
		zap.Int("rejected", len(rejected)),
		zap.Duration("duration", time.Since(start)),
	)
	return products, nil
}
