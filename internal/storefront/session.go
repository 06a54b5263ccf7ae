package storefront

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avc/storefront/internal/cart"
	"github.com/avc/storefront/internal/domain"
	"github.com/avc/storefront/internal/filter"
	"github.com/avc/storefront/internal/render"
	"go.uber.org/zap"
)

// Тексты уведомлений
const (
	MsgItemRemoved     = "Item removed from cart."
	MsgRedirecting     = "Redirecting to secure payment portal..."
	MsgCheckoutFailed  = "Could not start checkout. Please try again."
	msgAddedSingle     = "%s added to cart!"
	msgAddedWithAmount = "%d x %s added to cart!"
)

// Catalog определяет чтение каталога сессией
type Catalog interface {
	filter.Catalog
	ByID(id string) (domain.Product, bool)
	Ready() bool
	LastError() *domain.FetchError
	LoadedAt() time.Time
}

// CheckoutRunner создает сессию оплаты для корзины key
type CheckoutRunner interface {
	CreateSession(ctx context.Context, key string, items []domain.LineItemRef) (string, error)
}

// View полная модель представления витрины
type View struct {
	Grid        render.ProductGridVM     `json:"grid"`
	Pills       render.PillBarVM         `json:"pills"`
	Filters     []render.FilterGroupVM   `json:"filters"`
	CartLines   []render.CartLineVM      `json:"cartLines"`
	Summary     render.CartSummaryVM     `json:"summary"`
	Checkout    render.CheckoutControlVM `json:"checkout"`
	Toast       *render.ToastVM          `json:"toast"`
	RedirectURL string                   `json:"redirectUrl,omitempty"`
}

// Deps зависимости сессий
type Deps struct {
	Catalog       Catalog
	Options       *filter.Options
	Checkout      CheckoutRunner
	ToastDuration time.Duration
	Logger        *zap.Logger
	// OnRender вызывается после каждой отрисовки по действию посетителя
	OnRender func(sessionID string, view View)
}

// Session состояние одного посетителя. Все действия выполняются под mu
// по одному, как обработчики событий в одном цикле.
type Session struct {
	id       string
	mu       sync.Mutex
	catalog  Catalog
	filters  *filter.State
	ledger   *cart.Ledger
	notifier *Notifier
	checkout CheckoutRunner
	logger   *zap.Logger
	onRender func(sessionID string, view View)

	pending       bool
	catalogLoaded time.Time
	renders       int
	lastSeen      atomic.Int64
}

// NewSession создает сессию посетителя
func NewSession(id string, deps Deps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", id))

	s := &Session{
		id:            id,
		catalog:       deps.Catalog,
		filters:       filter.NewState(deps.Catalog, deps.Options),
		ledger:        cart.NewLedger(logger),
		notifier:      NewNotifier(deps.ToastDuration),
		checkout:      deps.Checkout,
		logger:        logger,
		onRender:      deps.OnRender,
		catalogLoaded: deps.Catalog.LoadedAt(),
	}
	s.touch()
	return s
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// Dispatch выполняет действие и возвращает одну отрисовку.
// Отклоненное действие не меняет состояние, но отрисовка все равно выполняется.
func (s *Session) Dispatch(ctx context.Context, intent Intent) (View, error) {
	s.touch()

	if _, ok := intent.(Checkout); ok {
		return s.runCheckout(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncCatalog()
	err := s.apply(intent)
	if err != nil {
		s.logger.Debug("intent rejected", zap.String("intent", intent.intent()), zap.Error(err))
	}
	return s.render(), err
}

// View возвращает текущую проекцию состояния без выполнения действия
func (s *Session) View() View {
	s.touch()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncCatalog()
	return s.project()
}

// Products возвращает сетку товаров с учетом фильтров
func (s *Session) Products() render.ProductGridVM {
	return s.View().Grid
}

// ProductDetail возвращает страницу товара
func (s *Session) ProductDetail(id string) (render.ProductDetailVM, error) {
	s.touch()

	if !s.catalog.Ready() {
		return render.ProductDetailVM{}, domain.ErrCatalogNotReady
	}
	product, ok := s.catalog.ByID(id)
	if !ok {
		return render.ProductDetailVM{}, fmt.Errorf("storefront: %q: %w", id, domain.ErrProductNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inCart := 0
	if line, ok := s.ledger.Line(id); ok {
		inCart = line.Quantity
	}
	return render.ProductDetail(product, inCart), nil
}

// Renders возвращает количество отрисовок по действиям
func (s *Session) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

// LastSeen возвращает время последнего обращения к сессии
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Close снимает таймер уведомления
func (s *Session) Close() {
	s.notifier.Dismiss()
}

func (s *Session) apply(intent Intent) error {
	switch in := intent.(type) {
	case AddToCart:
		return s.addToCart(in)

	case SetQuantity:
		_, err := s.ledger.SetQuantity(in.ProductID, in.Value)
		return err

	case RemoveItem:
		if s.ledger.Remove(in.ProductID) {
			s.notifier.Show(MsgItemRemoved, KindInfo)
		}
		return nil

	case SetFilter:
		return s.filters.Set(in.Axis, in.Value)

	case ClearFilter:
		return s.filters.ClearAxis(in.Axis)

	case ClearFilters:
		s.filters.ClearAll()
		return nil

	default:
		return fmt.Errorf("storefront: unsupported intent %T", intent)
	}
}

func (s *Session) addToCart(in AddToCart) error {
	if !s.catalog.Ready() {
		return domain.ErrCatalogNotReady
	}
	product, ok := s.catalog.ByID(in.ProductID)
	if !ok {
		return fmt.Errorf("storefront: %q: %w", in.ProductID, domain.ErrProductNotFound)
	}

	if err := s.ledger.AddOrIncrement(product.ID, product.Price, in.Quantity); err != nil {
		return err
	}

	if in.Quantity == 1 {
		s.notifier.Show(fmt.Sprintf(msgAddedSingle, product.Name), KindInfo)
	} else {
		s.notifier.Show(fmt.Sprintf(msgAddedWithAmount, in.Quantity, product.Name), KindInfo)
	}
	return nil
}

// runCheckout отпускает блокировку сессии на время запроса к шлюзу.
// Пока запрос идет, повторный Checkout отклоняется, а кнопка выключена.
func (s *Session) runCheckout(ctx context.Context) (View, error) {
	s.mu.Lock()
	s.syncCatalog()
	if s.pending {
		view := s.render()
		s.mu.Unlock()
		return view, domain.ErrCheckoutInProgress
	}
	if s.ledger.Len() == 0 {
		view := s.render()
		s.mu.Unlock()
		return view, domain.ErrCartEmpty
	}
	s.pending = true
	items := s.ledger.LineItems()
	s.notifier.Show(MsgRedirecting, KindInfo)
	s.mu.Unlock()

	redirectURL, err := s.checkout.CreateSession(ctx, s.id, items)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = false
	if err != nil {
		s.logger.Error("checkout failed", zap.Error(err))
		s.notifier.Show(MsgCheckoutFailed, KindError)
		return s.render(), fmt.Errorf("storefront: failed to start checkout: %w", err)
	}

	s.logger.Info("checkout started", zap.Int("lines", len(items)))
	view := s.render()
	view.RedirectURL = redirectURL
	return view, nil
}

// syncCatalog пересчитывает фильтр, если каталог перезагрузился
func (s *Session) syncCatalog() {
	if loaded := s.catalog.LoadedAt(); !loaded.Equal(s.catalogLoaded) {
		s.catalogLoaded = loaded
		s.filters.Refresh()
	}
}

func (s *Session) render() View {
	view := s.project()
	s.renders++
	if s.onRender != nil {
		s.onRender(s.id, view)
	}
	return view
}

func (s *Session) project() View {
	var view View

	if s.catalog.Ready() {
		view.Grid = render.Products(s.filters.Results())
	} else {
		var err error
		if fetchErr := s.catalog.LastError(); fetchErr != nil {
			err = fetchErr
		}
		view.Grid = render.CatalogError(err)
	}

	view.Pills = render.FilterPills(s.filters.Pills())
	view.Filters = render.FilterOptions(s.filters.Options(), s.filters.KnownCategories(), s.filters.Selection())
	view.CartLines = render.CartLines(s.ledger.Lines(), s.catalog.ByID)
	view.Summary = render.CartSummary(s.ledger.Totals(), s.ledger.Len())
	view.Checkout = render.CheckoutControl(s.pending, s.ledger.Len() == 0)
	if n, ok := s.notifier.Current(); ok {
		view.Toast = render.Toast(n.Message, n.Kind)
	}

	return view
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}
