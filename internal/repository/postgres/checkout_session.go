package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avc/storefront/internal/domain"
	"github.com/jackc/pgx/v5"
)

// CheckoutSessionRepository реализует domain.CheckoutSessionRepository
type CheckoutSessionRepository struct {
	db DBTX
}

// NewCheckoutSessionRepository создает новый CheckoutSessionRepository
func NewCheckoutSessionRepository(db DBTX) *CheckoutSessionRepository {
	return &CheckoutSessionRepository{db: db}
}

// CreateSession записывает сессию оплаты в журнал.
// Повторная запись той же сессии не считается ошибкой.
func (r *CheckoutSessionRepository) CreateSession(ctx context.Context, session *domain.CheckoutSession) error {
	items, err := json.Marshal(session.Items)
	if err != nil {
		return fmt.Errorf("repository: failed to encode items of session %q: %w", session.ID, err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO checkout_sessions (id, provider_id, provider, url, status, amount_cents, currency, items, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		session.ID, session.ProviderID, session.Provider, session.URL, session.Status,
		session.AmountCents, session.Currency, items, session.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("repository: failed to create checkout session %q: %w", session.ID, err)
	}

	return nil
}

// GetSession получает сессию оплаты по идентификатору
func (r *CheckoutSessionRepository) GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	session := &domain.CheckoutSession{}
	var items []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, provider_id, provider, url, status, amount_cents, currency, items, created_at
		 FROM checkout_sessions
		 WHERE id = $1`,
		id,
	).Scan(&session.ID, &session.ProviderID, &session.Provider, &session.URL, &session.Status,
		&session.AmountCents, &session.Currency, &items, &session.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCheckoutSessionNotFound
		}
		return nil, fmt.Errorf("repository: failed to get checkout session %q: %w", id, err)
	}

	if err := json.Unmarshal(items, &session.Items); err != nil {
		return nil, fmt.Errorf("repository: failed to decode items of session %q: %w", id, err)
	}

	return session, nil
}
