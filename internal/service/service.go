package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"hotdogstand/backend/internal/cache"
	"hotdogstand/backend/internal/cart"
	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/menu"
	"hotdogstand/backend/internal/pricing"
	"hotdogstand/backend/internal/receipt"
	"hotdogstand/backend/internal/report"
	"hotdogstand/backend/internal/store"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

const receiptHeader = "Hotdog Stand POS"

// Service owns the single register: the in-progress sale (cart + settings)
// and the path to the ledger. All operations run under one mutex, which acts
// as the single-writer queue that keeps "exactly one record changes per call"
// true for the shared ledger file once the core sits behind a server.
type Service struct {
	mu         sync.Mutex
	menu       *menu.Store
	ledger     store.Ledger
	summaries  cache.SummaryCache
	summaryTTL time.Duration

	defaults   domain.SaleSettings
	cart       *cart.Cart
	settings   domain.SaleSettings
	lastRecord *domain.SaleRecord

	now func() time.Time
}

// New wires a register. defaults carries the register-level knobs (tax rate,
// card fee, default payment method) that survive across sales; the per-sale
// fields of defaults are ignored.
func New(menuStore *menu.Store, ledger store.Ledger, summaries cache.SummaryCache, defaults domain.SaleSettings, summaryTTL time.Duration) *Service {
	if defaults.PaymentMethod == "" {
		defaults.PaymentMethod = domain.PaymentCash
	}
	if summaryTTL <= 0 {
		summaryTTL = 30 * time.Second
	}

	s := &Service{
		menu:       menuStore,
		ledger:     ledger,
		summaries:  summaries,
		summaryTTL: summaryTTL,
		defaults:   defaults,
		cart:       cart.New(),
		now:        time.Now,
	}
	s.settings = s.freshSettings()
	return s
}

// freshSettings carries the register defaults over and zeroes the per-sale
// fields (discount, tip, cash received, notes).
func (s *Service) freshSettings() domain.SaleSettings {
	return domain.SaleSettings{
		TaxRatePercent: s.defaults.TaxRatePercent,
		CardFeePercent: s.defaults.CardFeePercent,
		PaymentMethod:  s.defaults.PaymentMethod,
	}
}

func (s *Service) Menu(ctx context.Context) []domain.MenuItem {
	return s.menu.Load()
}

func (s *Service) SaveMenu(ctx context.Context, items []domain.MenuItem) ([]domain.MenuItem, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := s.menu.Save(items); err != nil {
		return nil, err
	}
	return s.menu.Load(), nil
}

func (s *Service) ResetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := s.menu.ResetToDefault(); err != nil {
		return nil, err
	}
	return s.menu.Load(), nil
}

// Sale returns the in-progress sale with a freshly computed quote.
func (s *Service) Sale() domain.SaleView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saleViewLocked()
}

func (s *Service) saleViewLocked() domain.SaleView {
	lines := s.cart.Lines()
	return domain.SaleView{
		Lines:    lines,
		Settings: s.settings,
		Quote:    pricing.Quote(lines, s.settings),
	}
}

func (s *Service) AddItem(req domain.AddItemRequest) (domain.SaleView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.SaleView{}, fmt.Errorf("%w: item name required", store.ErrInvalidSale)
	}
	if req.UnitPriceCents < 0 {
		return domain.SaleView{}, fmt.Errorf("%w: unit price must not be negative", store.ErrInvalidSale)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddOrIncrement(domain.MenuItem{Name: name, UnitPriceCents: req.UnitPriceCents})
	return s.saleViewLocked(), nil
}

func (s *Service) UpdateLine(index int, req domain.LineUpdateRequest) (domain.SaleView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch req.Op {
	case "increment":
		amount := req.Amount
		if amount == 0 {
			amount = 1
		}
		err = s.cart.IncrementBy(index, amount)
	case "decrement":
		err = s.cart.Decrement(index)
	default:
		err = fmt.Errorf("unknown line op %q", req.Op)
	}
	if err != nil {
		return domain.SaleView{}, fmt.Errorf("%w: %v", store.ErrInvalidSale, err)
	}
	return s.saleViewLocked(), nil
}

func (s *Service) RemoveLine(index int) (domain.SaleView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Remove(index); err != nil {
		return domain.SaleView{}, fmt.Errorf("%w: %v", store.ErrInvalidSale, err)
	}
	return s.saleViewLocked(), nil
}

// UpdateSettings replaces the per-sale settings after validating the
// register's knob ranges. Discounts above the subtotal are not rejected here;
// the pricing engine clamps them.
func (s *Service) UpdateSettings(req domain.SettingsRequest) (domain.SaleView, error) {
	if req.TaxRatePercent < 0 || req.TaxRatePercent > 30 {
		return domain.SaleView{}, fmt.Errorf("%w: tax rate must be between 0 and 30 percent", store.ErrInvalidSale)
	}
	if req.CardFeePercent < 0 || req.CardFeePercent > 10 {
		return domain.SaleView{}, fmt.Errorf("%w: card fee must be between 0 and 10 percent", store.ErrInvalidSale)
	}
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if !domain.IsSupportedPaymentMethod(method) {
		return domain.SaleView{}, fmt.Errorf("%w: unsupported payment method %q", store.ErrInvalidSale, req.PaymentMethod)
	}
	if req.DiscountCents < 0 || req.TipCents < 0 || req.CashReceivedCents < 0 {
		return domain.SaleView{}, fmt.Errorf("%w: discount, tip and cash received must not be negative", store.ErrInvalidSale)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = domain.SaleSettings{
		TaxRatePercent:    req.TaxRatePercent,
		CardFeePercent:    req.CardFeePercent,
		PaymentMethod:     method,
		DiscountCents:     req.DiscountCents,
		TipCents:          req.TipCents,
		Notes:             req.Notes,
		CashReceivedCents: req.CashReceivedCents,
	}
	return s.saleViewLocked(), nil
}

// NewSale abandons the in-progress sale: the cart empties and the per-sale
// fields reset while the register defaults stay.
func (s *Service) NewSale() domain.SaleView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.settings = s.freshSettings()
	return s.saleViewLocked()
}

// Checkout finalizes the in-progress sale. A cash sale short of the amount
// due is refused before the ledger is touched; on success exactly one record
// is appended, the summary cache for its date is invalidated, and the
// register resets for the next customer.
func (s *Service) Checkout(ctx context.Context) (domain.CheckoutResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Empty() {
		return domain.CheckoutResponse{}, fmt.Errorf("%w: cart is empty", store.ErrInvalidSale)
	}

	lines := s.cart.Lines()
	quote := pricing.Quote(lines, s.settings)

	if s.settings.PaymentMethod == domain.PaymentCash && s.settings.CashReceivedCents < quote.AmountDueCents {
		return domain.CheckoutResponse{}, fmt.Errorf(
			"%w: received %s but %s is due",
			store.ErrInsufficientCash, s.settings.CashReceivedCents, quote.AmountDueCents,
		)
	}

	now := s.now()
	record := domain.SaleRecord{
		Timestamp:         now.Format("2006-01-02 15:04:05"),
		Date:              now.Format("2006-01-02"),
		Items:             domain.FormatLineItems(lines),
		SubtotalCents:     quote.SubtotalCents,
		DiscountCents:     quote.DiscountCents,
		TaxCents:          quote.TaxCents,
		TipCents:          quote.TipCents,
		CardFeeCents:      pricing.RecordedCardFee(quote, s.settings.PaymentMethod),
		TotalCents:        quote.AmountDueCents,
		PaymentMethod:     s.settings.PaymentMethod,
		Notes:             s.settings.Notes,
		CashReceivedCents: s.settings.CashReceivedCents,
		ChangeCents:       quote.ChangeDueCents,
	}

	if err := s.ledger.Append(ctx, record); err != nil {
		return domain.CheckoutResponse{}, fmt.Errorf("append sale: %w", err)
	}
	s.invalidateSummary(ctx, record.Date)

	saved := record
	s.lastRecord = &saved
	s.cart.Clear()
	s.settings = s.freshSettings()

	return domain.CheckoutResponse{
		Record:  record,
		Receipt: receipt.Render(receiptHeader, record),
	}, nil
}

// Undo removes the most recently appended ledger record. It reports
// Removed=false, without error, when the ledger is empty so the caller can
// show "nothing to undo". Confirmation (role or manager PIN) happens at the
// API layer before this is called.
func (s *Service) Undo(ctx context.Context) (domain.UndoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return domain.UndoResponse{}, err
	}
	var lastDate string
	if len(records) > 0 {
		lastDate = records[len(records)-1].Date
	}

	removed, err := s.ledger.RemoveLast(ctx)
	if err != nil {
		return domain.UndoResponse{}, err
	}
	if removed {
		s.invalidateSummary(ctx, lastDate)
		s.lastRecord = nil
	}
	return domain.UndoResponse{Removed: removed}, nil
}

// Summary computes the daily summary for the given date ("2006-01-02"), or
// for today when date is empty, consulting the cache first.
func (s *Service) Summary(ctx context.Context, date string) (domain.DailySummary, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.DailySummary{}, fmt.Errorf("%w: date must look like 2006-01-02", store.ErrInvalidSale)
	}

	key := summaryKey(date)
	if cached, ok, err := s.summaries.Get(ctx, key); err == nil && ok {
		return *cached, nil
	} else if err != nil {
		log.Printf("[service] summary cache read failed: %v", err)
	}

	records, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return domain.DailySummary{}, err
	}
	summary := report.Summarize(records, date)

	if err := s.summaries.Set(ctx, key, &summary, s.summaryTTL); err != nil {
		log.Printf("[service] summary cache write failed: %v", err)
	}
	return summary, nil
}

// LastReceipt renders the most recent sale's receipt, falling back to the
// ledger tail when the process restarted since the sale.
func (s *Service) LastReceipt(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastRecord != nil {
		return receipt.Render(receiptHeader, *s.lastRecord), nil
	}

	records, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("%w: no sales recorded", store.ErrNotFound)
	}
	return receipt.Render(receiptHeader, records[len(records)-1]), nil
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Service) invalidateSummary(ctx context.Context, date string) {
	if date == "" {
		date = s.today()
	}
	if err := s.summaries.Invalidate(ctx, summaryKey(date)); err != nil {
		log.Printf("[service] summary cache invalidate failed: %v", err)
	}
}

func summaryKey(date string) string {
	return "summary:" + date
}

func requireAdmin(ctx context.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != "admin" {
		return fmt.Errorf("admin role required")
	}
	return nil
}
