package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/application/notification"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/labakery/backend/internal/domain/settings"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/domain/shared/valueobject"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notifier delivers an order notification synchronously
type Notifier interface {
	Notify(ctx context.Context, created *order.OrderCreatedEvent) notification.Result
}

// OrderService handles checkout, POS sales and order administration
type OrderService struct {
	orderRepo      order.OrderRepository
	settingsRepo   settings.StoreConfigRepository
	eventPublisher shared.EventPublisher
	notifier       Notifier
	currency       valueobject.Currency
	loc            *time.Location
	logger         *zap.Logger
	now            func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, settingsRepo settings.StoreConfigRepository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		currency:     valueobject.DefaultCurrency,
		loc:          time.UTC,
		logger:       logger,
		now:          time.Now,
	}
}

// SetEventPublisher sets the publisher that receives OrderCreated events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetNotifier sets the notifier used by SendTestNotification
func (s *OrderService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// SetCurrency sets the currency used when a checkout names none
func (s *OrderService) SetCurrency(c valueobject.Currency) {
	if c != "" {
		s.currency = c
	}
}

// SetLocation sets the zone used to decide what "today" is
func (s *OrderService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc = loc
	}
}

// Checkout places a storefront order
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	log := logger.L(ctx, s.logger)

	code := req.Currency
	if strings.TrimSpace(code) == "" {
		code = s.currency.String()
	}
	currency, err := valueobject.ParseCurrency(code)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be an ISO 4217 code")
	}

	shippingDate, err := order.ParseDate(req.ShippingDate)
	if err != nil {
		return nil, err
	}

	items, err := itemsFromInputs(req.Items)
	if err != nil {
		return nil, err
	}

	cfg, cfgErr := s.settingsRepo.Get(ctx)
	if cfgErr != nil {
		log.Warn("Failed to load store config", zap.Error(cfgErr))
	}

	var fee decimal.Decimal
	switch {
	case req.ShippingFee != nil:
		fee = *req.ShippingFee
	case cfgErr != nil:
		return nil, fmt.Errorf("load store config: %w", cfgErr)
	default:
		fee = cfg.ShippingFee
	}

	if cfg != nil && cfg.IsClosed(shippingDate) {
		log.Warn("Order placed for a closed date",
			zap.String("shipping_date", shippingDate.Format("2006-01-02")),
		)
	}

	o, err := order.NewOrder(order.NewOrderParams{
		Origin:        order.OriginEcommerce,
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		PaymentMethod: req.PaymentMethod,
		Currency:      currency,
		ShippingFee:   fee,
		ShippingDate:  &shippingDate,
		Notes:         req.Notes,
		UserID:        req.UserID,
		Items:         items,
		Now:           s.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	log.Info("Order created",
		zap.String("order_number", o.OrderNumber),
		zap.String("origin", o.Origin.String()),
		zap.String("total", o.Total.String()),
	)
	s.publishEvents(ctx, o)

	return &CheckoutResponse{OrderNumber: o.OrderNumber, Total: o.Total}, nil
}

// CreatePOSOrder records an in-person sale. It is paid on creation and
// blank customer details get the POS placeholders.
func (s *OrderService) CreatePOSOrder(ctx context.Context, req CreatePOSOrderRequest) (*POSOrderResponse, error) {
	origin := order.Origin(req.Origin)
	if origin == "" {
		origin = order.OriginPOS
	}
	if origin != order.OriginPOS && origin != order.OriginManual {
		return nil, shared.NewDomainError("INVALID_ORIGIN", "Origin must be pos or manual")
	}

	items, err := itemsFromCart(req.Items)
	if err != nil {
		return nil, err
	}

	fee := decimal.Zero
	if req.ShippingFee != nil {
		fee = *req.ShippingFee
	}

	var shippingDate *time.Time
	if strings.TrimSpace(req.ShippingDate) != "" {
		d, err := order.ParseDate(req.ShippingDate)
		if err != nil {
			return nil, err
		}
		shippingDate = &d
	}

	o, err := order.NewOrder(order.NewOrderParams{
		Origin:        origin,
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		PaymentMethod: req.PaymentMethod,
		Currency:      s.currency,
		ShippingFee:   fee,
		ShippingDate:  shippingDate,
		Notes:         req.Notes,
		InternalNotes: req.InternalNotes,
		Items:         items,
		Now:           s.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("POS order created",
		zap.String("order_number", o.OrderNumber),
		zap.String("origin", o.Origin.String()),
		zap.String("total", o.Total.String()),
	)
	s.publishEvents(ctx, o)

	return &POSOrderResponse{ID: o.ID, OrderNumber: o.OrderNumber, Total: o.Total}, nil
}

// GetByID returns one order with its items
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o, s.today())
	return &response, nil
}

// List returns one page of orders, newest first
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	listFilter := order.ListFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
		},
		Origin: order.OriginFilter(filter.Origin),
		Status: order.OrderStatus(filter.Status),
	}
	listFilter.Normalize()

	if !listFilter.Origin.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORIGIN", "Origin filter must be web, pos or manual")
	}
	if listFilter.Status != "" && !listFilter.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid order status: "+filter.Status)
	}

	orders, total, err := s.orderRepo.List(ctx, listFilter)
	if err != nil {
		return nil, err
	}

	today := s.today()
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o, today)
	}

	page := shared.NewPaginated(responses, total, listFilter.Page, listFilter.PageSize)
	return &page, nil
}

// Update applies an admin patch. When the request carries items they
// replace every existing line in the same transaction.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	patch, err := toPatch(req)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		current, err := s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		s.logTransition(ctx, current, *patch.Status)
	}

	var updated *order.Order
	if req.Items != nil {
		items, err := itemsFromCart(req.Items)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, shared.NewDomainError("NO_ITEMS", "Order must have at least one item")
		}
		updated, err = s.orderRepo.UpdateWithItems(ctx, id, patch, items)
		if err != nil {
			return nil, err
		}
	} else {
		updated, err = s.orderRepo.UpdatePartial(ctx, id, patch)
		if err != nil {
			return nil, err
		}
	}

	response := ToOrderResponse(updated, s.today())
	return &response, nil
}

// SendTestNotification delivers a synthetic order notification and waits
// for the outcome
func (s *OrderService) SendTestNotification(ctx context.Context) notification.Result {
	if s.notifier == nil {
		return notification.Result{Status: notification.StatusSkipped}
	}
	sample := notification.SampleOrderCreatedEvent(s.currency.String(), s.now().In(s.loc))
	return s.notifier.Notify(ctx, sample)
}

func (s *OrderService) logTransition(ctx context.Context, current *order.Order, target order.OrderStatus) {
	if current.Status == target {
		return
	}
	log := logger.L(ctx, s.logger).With(
		zap.String("order_number", current.OrderNumber),
		zap.String("from", current.Status.String()),
		zap.String("to", target.String()),
	)
	switch {
	case current.Status.IsReactivation(target):
		log.Info("Order reactivated")
	case !current.Status.IsDeclaredTransition(target):
		log.Warn("Undeclared order status transition")
	default:
		log.Info("Order status changed")
	}
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	events := o.GetDomainEvents()
	o.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		logger.L(ctx, s.logger).Warn("Failed to publish order events",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}
}

func (s *OrderService) today() time.Time {
	return s.now().In(s.loc)
}

func toPatch(req UpdateOrderRequest) (order.Patch, error) {
	patch := order.Patch{
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		InternalNotes: req.InternalNotes,
		ShippingFee:   req.ShippingFee,
	}
	if req.Status != nil {
		status := order.OrderStatus(strings.TrimSpace(*req.Status))
		if !status.IsValid() {
			return order.Patch{}, shared.NewDomainError("INVALID_STATUS", "Invalid order status: "+*req.Status)
		}
		patch.Status = &status
	}
	if req.ShippingFee != nil && req.ShippingFee.IsNegative() {
		return order.Patch{}, shared.NewDomainError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
	}
	if req.ShippingDate != nil {
		d, err := order.ParseDate(*req.ShippingDate)
		if err != nil {
			return order.Patch{}, err
		}
		patch.ShippingDate = &d
	}
	return patch, nil
}

// itemsFromInputs keeps the lines exactly as submitted
func itemsFromInputs(inputs []OrderItemInput) ([]*order.OrderItem, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must have at least one item")
	}
	items := make([]*order.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := order.NewOrderItem(in.ProductID, in.ProductName, in.Quantity, in.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// itemsFromCart stages the lines in a cart so repeated products merge
// into one line. The same product at two prices is rejected.
func itemsFromCart(inputs []OrderItemInput) ([]*order.OrderItem, error) {
	cart := order.NewCart()
	for _, in := range inputs {
		product := order.CartProduct{ID: in.ProductID, Name: in.ProductName, Price: in.Price}
		if err := cart.AddQuantity(product, in.Quantity); err != nil {
			return nil, err
		}
	}
	return cart.Items()
}
