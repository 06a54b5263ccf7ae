package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avc/storefront/internal/domain"
	"go.uber.org/zap"
)

// snapshot неизменяемый снимок каталога
type snapshot struct {
	products   []domain.Product
	byID       map[string]int
	categories []string
	loadedAt   time.Time
}

func newSnapshot(products []domain.Product, now time.Time) *snapshot {
	s := &snapshot{
		products: products,
		byID:     make(map[string]int, len(products)),
		loadedAt: now,
	}
	seen := make(map[string]struct{})
	for i, p := range products {
		s.byID[p.ID] = i
		if _, ok := seen[p.Category]; !ok && p.Category != "" {
			seen[p.Category] = struct{}{}
			s.categories = append(s.categories, p.Category)
		}
	}
	return s
}

// Store хранит загруженный каталог. Загрузка заменяет список целиком,
// читатели работают со снимком без блокировок.
type Store struct {
	current atomic.Pointer[snapshot]
	loadMu  sync.Mutex
	lastErr atomic.Pointer[domain.FetchError]
	logger  *zap.Logger
	clock   func() time.Time
}

// NewStore создает пустой Store
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		logger: logger,
		clock:  time.Now,
	}
}

// Load получает каталог из source и атомарно заменяет текущий список.
// При ошибке содержимое Store не меняется.
func (s *Store) Load(ctx context.Context, source domain.CatalogSource) ([]domain.Product, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	payload, err := source.Fetch(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	return s.replace(payload)
}

// LoadPayload заменяет каталог из уже полученного тела ответа (например, снимка из кэша)
func (s *Store) LoadPayload(payload []byte) ([]domain.Product, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	return s.replace(payload)
}

func (s *Store) replace(payload []byte) ([]domain.Product, error) {
	products, dataErrs, err := Decode(payload)
	if err != nil {
		return nil, s.fail(err)
	}

	if dataErrs != nil {
		s.logger.Warn("catalog: skipped invalid products", zap.Error(dataErrs))
	}

	s.current.Store(newSnapshot(products, s.clock()))
	s.lastErr.Store(nil)
	s.logger.Info("catalog loaded", zap.Int("products", len(products)))

	out := make([]domain.Product, len(products))
	copy(out, products)
	return out, nil
}

func (s *Store) fail(err error) error {
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = &domain.FetchError{Kind: domain.FetchNetwork, Err: err}
	}
	s.lastErr.Store(fetchErr)
	return fmt.Errorf("catalog store: failed to load: %w", fetchErr)
}

// Ready сообщает, был ли хотя бы один успешный Load
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// LastError возвращает ошибку последней загрузки, если она была неуспешной
func (s *Store) LastError() *domain.FetchError {
	return s.lastErr.Load()
}

// LoadedAt возвращает время последней успешной загрузки
func (s *Store) LoadedAt() time.Time {
	snap := s.current.Load()
	if snap == nil {
		return time.Time{}
	}
	return snap.loadedAt
}

// Len возвращает количество товаров
func (s *Store) Len() int {
	snap := s.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.products)
}

// ByID ищет товар по идентификатору
func (s *Store) ByID(id string) (domain.Product, bool) {
	snap := s.current.Load()
	if snap == nil {
		return domain.Product{}, false
	}
	i, ok := snap.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return snap.products[i], true
}

// All возвращает копию списка в порядке загрузки
func (s *Store) All() []domain.Product {
	return s.Filter(nil, nil)
}

// Categories возвращает известные категории в порядке первого появления
func (s *Store) Categories() []string {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	out := make([]string, len(snap.categories))
	copy(out, snap.categories)
	return out
}

// Filter возвращает товары, удовлетворяющие обоим предикатам, сохраняя порядок загрузки.
// nil-предикат пропускает все товары.
func (s *Store) Filter(category func(string) bool, price func(domain.Product) bool) []domain.Product {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}

	out := make([]domain.Product, 0, len(snap.products))
	for _, p := range snap.products {
		if category != nil && !category(p.Category) {
			continue
		}
		if price != nil && !price(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
