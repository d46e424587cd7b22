package app

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/oolio-kart-cart/internal/catalog"
	"github.com/xenking/oolio-kart-cart/internal/domain/coupon"
	"github.com/xenking/oolio-kart-cart/internal/domain/order"
	"github.com/xenking/oolio-kart-cart/internal/session"
	"github.com/xenking/oolio-kart-cart/internal/storage/memory"
)

// Run loads the catalog, fills a cart from the configured line items and
// writes the checkout receipt. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	return checkout(zctx.Base(ctx, lg), lg, cfg,
		session.WithMeterProvider(m.MeterProvider()),
		session.WithTracerProvider(m.TracerProvider()),
	)
}

// checkout runs the whole flow into memory and touches cfg.Output only
// once the receipt is complete, so a failed run leaves an existing
// receipt intact.
func checkout(ctx context.Context, lg *zap.Logger, cfg *Config, opts ...session.Option) error {
	var receipt bytes.Buffer
	if err := run(ctx, lg, cfg, &receipt, opts...); err != nil {
		return err
	}

	if cfg.Output == "-" {
		if _, err := os.Stdout.Write(receipt.Bytes()); err != nil {
			return errors.Wrap(err, "write receipt")
		}
		return nil
	}
	if err := os.WriteFile(cfg.Output, receipt.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "write receipt")
	}
	lg.Info("Receipt written", zap.String("path", cfg.Output))
	return nil
}

func run(ctx context.Context, lg *zap.Logger, cfg *Config, out io.Writer, opts ...session.Option) error {
	p, err := cfg.plan()
	if err != nil {
		return err
	}

	lg.Info("Loading catalog", zap.Strings("files", cfg.CatalogFiles))

	cat, err := catalog.Load(ctx, cfg.CatalogFiles...)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	lg.Info("Catalog loaded",
		zap.Int("products", len(cat.Products)),
		zap.Int("coupons", len(cat.Coupons)),
	)

	// Repositories.
	products := memory.NewProductRepository(cat.Products...)
	coupons := memory.NewCouponRepository(cat.Coupons...)
	orders := memory.NewOrderRepository()

	// Domain services.
	orderService := order.NewService(coupon.NewRepoValidator(coupons), orders)
	sess, err := session.New(products, opts...)
	if err != nil {
		return errors.Wrap(err, "create session")
	}

	for _, line := range p.lines {
		if err := sess.Add(ctx, line.Name, line.Quantity); err != nil {
			return errors.Wrapf(err, "add %s", line.Name)
		}
	}

	items, err := sess.Cart().Sorted(p.sortBy)
	if err != nil {
		return errors.Wrap(err, "sort cart")
	}
	for _, item := range items {
		lg.Info("Cart item",
			zap.String("product", item.Product.Name),
			zap.Int("quantity", item.Quantity),
			zap.Stringer("price", item.Product.Price),
			zap.Stringer("total", item.Total()),
		)
	}
	lg.Info("Cart total",
		zap.Int("units", sess.Count()),
		zap.Stringer("total", sess.Total()),
	)

	if p.discount.IsPositive() {
		discounted, err := sess.ApplyConditionalDiscount(p.discount, p.minimum)
		if err != nil {
			return errors.Wrap(err, "apply discount")
		}
		lg.Info("Discount evaluated",
			zap.Stringer("percentage", p.discount),
			zap.Stringer("minimum", p.minimum),
			zap.Bool("applied", !discounted.Equal(sess.Total())),
			zap.Stringer("total", discounted),
		)
	}

	o, err := orderService.PlaceOrder(ctx, order.PlaceOrderRequest{
		Cart:       sess.Cart(),
		CouponCode: cfg.Coupon,
	})
	if err != nil {
		return errors.Wrap(err, "place order")
	}
	lg.Info("Order placed",
		zap.String("order_id", o.ID),
		zap.Stringer("total", o.Total),
		zap.Stringer("discounts", o.Discounts),
	)

	data, err := o.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encode receipt")
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "write receipt")
	}
	return nil
}
