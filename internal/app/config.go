package app

import (
	"strconv"
	"strings"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-kart-cart/internal/domain/cart"
)

// Config holds the complete application configuration, loadable from
// environment variables (KART_ prefix), flags, or YAML config files.
type Config struct {
	CatalogFiles []string `default:"catalog.json" usage:"Catalog files (JSON, optionally .gz), later files override earlier ones" flag:"catalog"`
	Items        []string `usage:"Line items to add, each as name:quantity" flag:"items"`
	SortBy       string   `default:"name" usage:"Order of the cart listing: name or price" flag:"sort-by"`
	Coupon       string   `default:"" usage:"Coupon code applied at checkout"`
	Output       string   `default:"-" usage:"Receipt output path, - for stdout"`
	Discount     DiscountConfig
}

// DiscountConfig controls the conditional percentage discount preview.
type DiscountConfig struct {
	Percentage string `default:"0" usage:"Discount percentage, 0 disables the preview"`
	Minimum    string `default:"0" usage:"Minimum cart total for the discount to apply"`
}

// plan is the validated, typed form of Config.
type plan struct {
	lines    []LineItem
	sortBy   cart.SortCriterion
	discount decimal.Decimal
	minimum  decimal.Decimal
}

// LineItem is a parsed name:quantity pair.
type LineItem struct {
	Name     string
	Quantity int
}

// LoadConfig loads configuration from environment variables, flags and
// YAML config files, then validates it.
func LoadConfig() (*Config, error) {
	return loadConfig(aconfig.Config{
		EnvPrefix: "KART",
		Files:     []string{"config.yaml", "/etc/kart/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

func loadConfig(ac aconfig.Config) (*Config, error) {
	var cfg Config
	if err := aconfig.LoaderFor(&cfg, ac).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if _, err := cfg.plan(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// plan parses the string-typed fields into their domain types.
func (c *Config) plan() (*plan, error) {
	if len(c.CatalogFiles) == 0 {
		return nil, errors.New("at least one catalog file is required: set KART_CATALOG_FILES or --catalog")
	}

	p := &plan{lines: make([]LineItem, 0, len(c.Items))}
	for _, raw := range c.Items {
		line, err := parseLineItem(raw)
		if err != nil {
			return nil, err
		}
		p.lines = append(p.lines, line)
	}

	by, err := cart.ParseSortCriterion(c.SortBy)
	if err != nil {
		return nil, errors.Wrap(err, "sort-by")
	}
	p.sortBy = by

	if p.discount, err = parseAmount("discount percentage", c.Discount.Percentage); err != nil {
		return nil, err
	}
	if p.discount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.Wrapf(cart.ErrInvalidPercentage, "discount percentage %s", p.discount)
	}
	if p.minimum, err = parseAmount("discount minimum", c.Discount.Minimum); err != nil {
		return nil, err
	}

	return p, nil
}

func parseLineItem(raw string) (LineItem, error) {
	// Split on the last colon so product names may contain one.
	i := strings.LastIndexByte(raw, ':')
	if i <= 0 {
		return LineItem{}, errors.Errorf("item %q: want name:quantity", raw)
	}
	name := strings.TrimSpace(raw[:i])
	qty, err := strconv.Atoi(strings.TrimSpace(raw[i+1:]))
	if err != nil {
		return LineItem{}, errors.Wrapf(err, "item %q: quantity", raw)
	}
	return LineItem{Name: name, Quantity: qty}, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "%s", field)
	}
	if v.IsNegative() {
		return decimal.Zero, errors.Errorf("%s cannot be negative", field)
	}
	return v, nil
}
