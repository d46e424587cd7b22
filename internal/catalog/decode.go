package catalog

import (
	"io"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-kart-cart/internal/domain/coupon"
	"github.com/xenking/oolio-kart-cart/internal/domain/product"
)

const readBufSize = 4096

// Decode reads a catalog object from r. Unknown fields are skipped.
func Decode(r io.Reader) (*Catalog, error) {
	c := &Catalog{}
	d := jx.Decode(r, readBufSize)

	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				p, err := decodeProduct(d)
				if err != nil {
					return errors.Wrapf(err, "product %d", len(c.Products))
				}
				c.Products = append(c.Products, p)
				return nil
			})
		case "coupons":
			return d.Arr(func(d *jx.Decoder) error {
				rule, err := decodeCoupon(d)
				if err != nil {
					return errors.Wrapf(err, "coupon %d", len(c.Coupons))
				}
				c.Coupons = append(c.Coupons, rule)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	return c, nil
}

func decodeProduct(d *jx.Decoder) (*product.Product, error) {
	var (
		name  string
		price decimal.Decimal
		stock int
		err   error
	)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "name":
			name, err = d.Str()
		case "price":
			price, err = decodeDecimal(d)
		case "stock":
			stock, err = d.Int()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return product.New(name, price, stock)
}

func decodeCoupon(d *jx.Decoder) (coupon.Rule, error) {
	var (
		rule coupon.Rule
		err  error
	)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "code":
			rule.Code, err = d.Str()
		case "type":
			var s string
			s, err = d.Str()
			rule.DiscountType = coupon.DiscountType(s)
		case "value":
			rule.Value, err = decodeDecimal(d)
		case "min_items":
			rule.MinItems, err = d.Int()
		case "min_total":
			rule.MinTotal, err = decodeDecimal(d)
		case "max_discount":
			rule.MaxDiscount, err = decodeDecimal(d)
		case "max_uses":
			rule.MaxUses, err = d.Int()
		case "valid_from":
			rule.ValidFrom, err = decodeTime(d)
		case "valid_until":
			rule.ValidUntil, err = decodeTime(d)
		case "description":
			rule.Description, err = d.Str()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	}); err != nil {
		return coupon.Rule{}, err
	}

	if rule.Code == "" {
		return coupon.Rule{}, errors.New("coupon code required")
	}
	switch rule.DiscountType {
	case coupon.DiscountPercentage, coupon.DiscountFixed, coupon.DiscountFreeLowest:
	default:
		return coupon.Rule{}, errors.Errorf("coupon %s: unsupported discount type %q", rule.Code, rule.DiscountType)
	}
	return rule, nil
}

// decodeDecimal accepts both JSON numbers and numeric strings.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	switch tt := d.Next(); tt {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromString(s)
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromString(n.String())
	default:
		return decimal.Decimal{}, errors.Errorf("unexpected %v, want number", tt)
	}
}

func decodeTime(d *jx.Decoder) (*time.Time, error) {
	s, err := d.Str()
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
