package order

import (
	"time"

	"github.com/go-faster/jx"
)

// Encode writes the order as a JSON receipt. Amounts are encoded as strings
// with two decimal places.
func (o *Order) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(o.ID)

	e.FieldStart("lines")
	e.ArrStart()
	for _, l := range o.Lines {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(l.Name)
		e.FieldStart("price")
		e.Str(l.Price.StringFixed(2))
		e.FieldStart("quantity")
		e.Int(l.Quantity)
		e.FieldStart("total")
		e.Str(l.Total().StringFixed(2))
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("subtotal")
	e.Str(o.Subtotal.StringFixed(2))
	e.FieldStart("discounts")
	e.Str(o.Discounts.StringFixed(2))
	e.FieldStart("total")
	e.Str(o.Total.StringFixed(2))
	if o.CouponCode != "" {
		e.FieldStart("coupon_code")
		e.Str(o.CouponCode)
	}
	e.FieldStart("created_at")
	e.Str(o.CreatedAt.Format(time.RFC3339))
	e.ObjEnd()
}

// MarshalJSON implements json.Marshaler.
func (o *Order) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	o.Encode(&e)
	return e.Bytes(), nil
}
