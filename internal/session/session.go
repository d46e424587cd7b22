// Package session exposes a cart through product names, resolving them
// against a catalog and recording every mutation in logs, metrics and
// traces. A Session is owned by a single shopper and is not safe for
// concurrent use.
package session

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/oolio-kart-cart/internal/domain/cart"
	"github.com/xenking/oolio-kart-cart/internal/domain/product"
)

const instrumentationName = "github.com/xenking/oolio-kart-cart/internal/session"

// Session is a shopper's cart bound to a product catalog.
type Session struct {
	id       string
	cart     *cart.Cart
	products product.Repository

	tracer   trace.Tracer
	units    metric.Int64Counter
	rejected metric.Int64Counter
}

type options struct {
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// Option configures a Session.
type Option func(*options)

// WithMeterProvider sets the meter provider used for cart metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTracerProvider sets the tracer provider used for cart spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// New creates a Session with an empty cart.
func New(products product.Repository, opts ...Option) (*Session, error) {
	o := options{
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	meter := o.meterProvider.Meter(instrumentationName)
	units, err := meter.Int64Counter("kart.cart.units",
		metric.WithDescription("Units moved in or out of carts"),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create units counter")
	}
	rejected, err := meter.Int64Counter("kart.cart.rejected",
		metric.WithDescription("Cart operations rejected by validation"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create rejected counter")
	}

	return &Session{
		id:       uuid.New().String(),
		cart:     cart.New(),
		products: products,
		tracer:   o.tracerProvider.Tracer(instrumentationName),
		units:    units,
		rejected: rejected,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Cart returns the underlying cart.
func (s *Session) Cart() *cart.Cart { return s.cart }

// Add resolves name in the catalog and adds qty units to the cart.
func (s *Session) Add(ctx context.Context, name string, qty int) error {
	ctx, span := s.start(ctx, "Add", name, qty)
	defer span.End()

	p, err := s.products.GetByName(ctx, name)
	if err != nil {
		return s.fail(ctx, span, "add", errors.Wrapf(err, "resolve %q", name))
	}
	if err := s.cart.Add(p, qty); err != nil {
		return s.fail(ctx, span, "add", err)
	}

	s.units.Add(ctx, int64(qty), metric.WithAttributes(attribute.String("direction", "in")))
	s.logger(ctx).Debug("Product added",
		zap.String("product", name),
		zap.Int("quantity", qty),
		zap.Int("stock_left", p.Stock),
	)
	return nil
}

// Remove takes qty units of the named product out of the cart.
func (s *Session) Remove(ctx context.Context, name string, qty int) error {
	ctx, span := s.start(ctx, "Remove", name, qty)
	defer span.End()

	if err := s.cart.Remove(key(name), qty); err != nil {
		return s.fail(ctx, span, "remove", err)
	}

	s.units.Add(ctx, int64(qty), metric.WithAttributes(attribute.String("direction", "out")))
	s.logger(ctx).Debug("Product removed",
		zap.String("product", name),
		zap.Int("quantity", qty),
	)
	return nil
}

// UpdateQuantity sets the held quantity of the named product.
func (s *Session) UpdateQuantity(ctx context.Context, name string, qty int) error {
	ctx, span := s.start(ctx, "UpdateQuantity", name, qty)
	defer span.End()

	if err := s.cart.UpdateQuantity(key(name), qty); err != nil {
		return s.fail(ctx, span, "update", err)
	}

	s.logger(ctx).Debug("Quantity updated",
		zap.String("product", name),
		zap.Int("quantity", qty),
	)
	return nil
}

// Clear empties the cart.
func (s *Session) Clear(ctx context.Context) {
	_, span := s.tracer.Start(ctx, "Clear")
	defer span.End()

	n := s.cart.Count()
	s.cart.Clear()
	s.logger(ctx).Debug("Cart cleared", zap.Int("units", n))
}

// Sorted returns the items ordered by the named criterion.
func (s *Session) Sorted(ctx context.Context, criterion string) ([]*cart.Item, error) {
	by, err := cart.ParseSortCriterion(criterion)
	if err != nil {
		s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "sort")))
		return nil, err
	}
	return s.cart.Sorted(by)
}

// Total returns the undiscounted cart total.
func (s *Session) Total() decimal.Decimal { return s.cart.Total() }

// Count returns the number of units in the cart.
func (s *Session) Count() int { return s.cart.Count() }

// Items returns the cart items in insertion order.
func (s *Session) Items() []*cart.Item { return s.cart.Items() }

// ApplyDiscount returns the total reduced by pct percent.
func (s *Session) ApplyDiscount(pct decimal.Decimal) (decimal.Decimal, error) {
	return s.cart.ApplyDiscount(pct)
}

// ApplyConditionalDiscount applies pct when the total reaches minimum.
func (s *Session) ApplyConditionalDiscount(pct, minimum decimal.Decimal) (decimal.Decimal, error) {
	return s.cart.ApplyConditionalDiscount(pct, minimum)
}

func (s *Session) start(ctx context.Context, op, name string, qty int) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("kart.product", name),
		attribute.Int("kart.quantity", qty),
	))
}

func (s *Session) fail(ctx context.Context, span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	s.logger(ctx).Warn("Cart operation rejected", zap.String("op", op), zap.Error(err))
	return err
}

func (s *Session) logger(ctx context.Context) *zap.Logger {
	return zctx.From(ctx).With(zap.String("session_id", s.id))
}

// key builds a lookup handle for cart operations that only match by name.
func key(name string) *product.Product {
	return &product.Product{Name: name}
}
