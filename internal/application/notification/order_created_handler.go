package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OrderCreatedHandler notifies staff of each new order. It is registered on
// the asynchronous event bus, so checkout never waits for it.
type OrderCreatedHandler struct {
	dispatcher *Dispatcher
	printer    *message.Printer
	loc        *time.Location
	logger     *zap.Logger
}

// NewOrderCreatedHandler creates a handler formatting amounts for locale
// and dates in loc
func NewOrderCreatedHandler(dispatcher *Dispatcher, locale language.Tag, loc *time.Location, logger *zap.Logger) *OrderCreatedHandler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderCreatedHandler{
		dispatcher: dispatcher,
		printer:    message.NewPrinter(locale),
		loc:        loc,
		logger:     logger,
	}
}

// EventTypes implements shared.EventHandler
func (h *OrderCreatedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderCreated}
}

// Handle implements shared.EventHandler. Only storefront orders are
// announced; delivery failures are logged and never returned.
func (h *OrderCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*order.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if created.Origin.Normalized() != order.OriginEcommerce {
		return nil
	}
	h.Notify(ctx, created)
	return nil
}

// Notify formats and dispatches the notification for created, logging the outcome
func (h *OrderCreatedHandler) Notify(ctx context.Context, created *order.OrderCreatedEvent) Result {
	log := logger.L(ctx, h.logger).With(zap.String("order_number", created.OrderNumber))

	result := h.dispatcher.Dispatch(ctx, Message{Text: h.Format(created)})
	switch result.Status {
	case StatusSkipped:
		log.Debug("Order notification skipped, no targets configured")
	case StatusSent:
		log.Info("Order notification sent", zap.Int("targets", result.Sent))
	default:
		errs := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			errs[i] = e.Target + ": " + e.Error
		}
		log.Warn("Order notification not delivered to every target",
			zap.String("status", string(result.Status)),
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed),
			zap.Strings("errors", errs),
		)
	}
	return result
}

// Format renders the staff message for an order
func (h *OrderCreatedHandler) Format(e *order.OrderCreatedEvent) string {
	var b strings.Builder
	p := h.printer

	b.WriteString(p.Sprintf("🧁 Nuevo pedido %s\n", e.OrderNumber))
	b.WriteString(p.Sprintf("Cliente: %s\n", e.CustomerName))
	b.WriteString(p.Sprintf("Teléfono: %s\n", e.PhoneNumber))
	b.WriteString(p.Sprintf("Origen: %s\n", e.Origin))
	b.WriteString(p.Sprintf("Pago: %s\n", e.PaymentMethod))
	if e.ShippingDate != nil {
		b.WriteString(p.Sprintf("Entrega: %s\n", e.ShippingDate.Format("2006-01-02")))
	}
	b.WriteString("Productos:\n")
	for _, item := range e.Items {
		b.WriteString(p.Sprintf("• %d × %s = %s\n", item.Quantity, item.ProductName, h.amount(item.LineTotal, e.Currency)))
	}
	b.WriteString(p.Sprintf("Envío: %s\n", h.amount(e.ShippingFee, e.Currency)))
	b.WriteString(p.Sprintf("Total: %s", h.amount(e.Total, e.Currency)))
	if e.Notes != "" {
		b.WriteString(p.Sprintf("\nNotas: %s", e.Notes))
	}
	return b.String()
}

// amount formats v with the currency's standard number of decimals and
// locale grouping, followed by the ISO code
func (h *OrderCreatedHandler) amount(v decimal.Decimal, code string) string {
	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}
	if scale == 0 {
		return h.printer.Sprintf("%d %s", v.Round(0).IntPart(), code)
	}
	f, _ := v.Round(int32(scale)).Float64()
	return h.printer.Sprintf(fmt.Sprintf("%%.%df %%s", scale), f, code)
}

// SampleOrderCreatedEvent builds the synthetic order used to test delivery
func SampleOrderCreatedEvent(currencyCode string, now time.Time) *order.OrderCreatedEvent {
	shipping := now.AddDate(0, 0, 1)
	fee := decimal.NewFromInt(3000)
	items := []order.OrderCreatedItem{
		{ProductName: "Galleta chocolate chip", Quantity: 6, LineTotal: decimal.NewFromInt(9000)},
		{ProductName: "Brownie clásico", Quantity: 4, LineTotal: decimal.NewFromInt(10000)},
	}
	return &order.OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(order.EventTypeOrderCreated, order.AggregateTypeOrder, uuid.New()),
		OrderNumber:     order.GenerateOrderNumber(order.OriginEcommerce, now) + "-TEST",
		CustomerName:    "Pedido de prueba",
		PhoneNumber:     "+56900000000",
		Origin:          order.OriginEcommerce,
		PaymentMethod:   "transfer",
		Currency:        currencyCode,
		ShippingFee:     fee,
		ShippingDate:    &shipping,
		Total:           decimal.NewFromInt(19000).Add(fee),
		Items:           items,
	}
}

var _ shared.EventHandler = (*OrderCreatedHandler)(nil)
