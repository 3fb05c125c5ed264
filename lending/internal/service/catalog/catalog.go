// Package catalog is the HTTP client for the external book catalog. The
// lifecycle engine consults it once, at request creation, to learn the owner
// and whether the book is currently borrowable.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	cb "github.com/Astemirdum/lending-service/pkg/circuit_breaker"

	"github.com/Astemirdum/lending-service/lending/config"
	"github.com/Astemirdum/lending-service/lending/internal/errs"
)

type Service struct {
	log     *zap.Logger
	client  *http.Client
	cfg     config.CatalogHTTPServer
	breaker cb.CircuitBreaker
}

func NewService(log *zap.Logger, cfg *config.Config) *Service {
	return &Service{
		log:     log.Named("catalog"),
		client:  &http.Client{Timeout: time.Minute},
		cfg:     cfg.CatalogHTTPServer,
		breaker: cb.New(20, 30*time.Second, 0.5, 3),
	}
}

type bookResponse struct {
	BookUid    string `json:"bookUid"`
	OwnerName  string `json:"ownerName"`
	Borrowable bool   `json:"borrowable"`
}

// BookBorrowable returns the owner of a borrowable book. Catalog outages
// surface as DependencyFailure so create fails loudly instead of guessing.
func (s *Service) BookBorrowable(ctx context.Context, bookUid string) (string, error) {
	var book bookResponse
	err := s.breaker.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("http://%s/api/v1/books/%s", net.JoinHostPort(s.cfg.Host, s.cfg.Port), bookUid), http.NoBody)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			return json.NewDecoder(resp.Body).Decode(&book)
		case http.StatusNotFound:
			return errs.ErrNotFound
		default:
			return fmt.Errorf("catalog status %d", resp.StatusCode)
		}
	})
	if err != nil {
		if err == errs.ErrNotFound {
			return "", errs.ErrNotFound
		}
		return "", &errs.DependencyFailure{Dependency: "catalog", Err: err}
	}
	if !book.Borrowable {
		return "", errs.ErrBookUnavailable
	}
	return book.OwnerName, nil
}
