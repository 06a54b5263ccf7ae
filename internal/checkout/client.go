package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avc/storefront/internal/domain"
)

// Client реализует domain.CheckoutGateway поверх POST /create-checkout-session.
// Запрос не повторяется: повтор мог бы создать вторую сессию оплаты.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type createSessionRequest struct {
	Items []domain.LineItemRef `json:"items"`
}

type createSessionResponse struct {
	URL string `json:"url"`
}

// NewClient создает новый Client
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			// Адрес страницы оплаты нужен из Location, переход не выполняем
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// CreateSession обменивает позиции корзины на адрес страницы оплаты
func (c *Client) CreateSession(ctx context.Context, items []domain.LineItemRef) (string, error) {
	body, err := json.Marshal(createSessionRequest{Items: items})
	if err != nil {
		return "", &domain.GatewayError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.GatewayError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.GatewayError{
			Timeout: isTimeout(err),
			Err:     fmt.Errorf("failed to execute request: %w", err),
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		location, err := resp.Location()
		if err != nil {
			return "", &domain.GatewayError{Err: fmt.Errorf("redirect without location: %w", err)}
		}
		return location.String(), nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var payload createSessionResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
			return "", &domain.GatewayError{Err: fmt.Errorf("failed to decode response: %w", err)}
		}
		if _, err := url.ParseRequestURI(payload.URL); err != nil {
			return "", &domain.GatewayError{Err: fmt.Errorf("invalid redirect url %q", payload.URL)}
		}
		return payload.URL, nil

	default:
		return "", &domain.GatewayError{Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
