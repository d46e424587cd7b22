// Package catalog loads products and coupon rules from JSON catalog files.
//
// A catalog file holds a single object:
//
//	{
//	  "products": [{"name": "Laptop", "price": "3800.00", "stock": 50}],
//	  "coupons":  [{"code": "SAVE10", "type": "percentage", "value": 10}]
//	}
//
// Files ending in ".gz" are gzip-compressed. Amounts may be JSON numbers or
// strings.
package catalog

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/oolio-kart-cart/internal/domain/coupon"
	"github.com/xenking/oolio-kart-cart/internal/domain/product"
)

// Catalog is the decoded content of one or more catalog files.
type Catalog struct {
	Products []*product.Product
	Coupons  []coupon.Rule
}

// Load reads all files concurrently and merges them in argument order.
// A product or coupon from a later file replaces an earlier one with the
// same name or code.
func Load(ctx context.Context, paths ...string) (*Catalog, error) {
	parts := make([]*Catalog, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			c, err := LoadFile(ctx, path)
			if err != nil {
				return err
			}
			parts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(parts), nil
}

// LoadFile reads a single catalog file.
func LoadFile(ctx context.Context, path string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if filepath.Ext(path) == ".gz" {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	c, err := Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return c, nil
}

func merge(parts []*Catalog) *Catalog {
	out := &Catalog{}
	productIdx := make(map[string]int)
	couponIdx := make(map[string]int)

	for _, part := range parts {
		for _, p := range part.Products {
			if i, ok := productIdx[p.Name]; ok {
				out.Products[i] = p
				continue
			}
			productIdx[p.Name] = len(out.Products)
			out.Products = append(out.Products, p)
		}
		for _, rule := range part.Coupons {
			if i, ok := couponIdx[rule.Code]; ok {
				out.Coupons[i] = rule
				continue
			}
			couponIdx[rule.Code] = len(out.Coupons)
			out.Coupons = append(out.Coupons, rule)
		}
	}
	return out
}
