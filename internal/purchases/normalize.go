package purchases

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/valeevte/PurchaseReport/internal/upstream"
)

// Normalize переводит сырую запись в Purchase. Цена обязана быть десятичным
// числом, а price и total конечными float64, иначе ErrMalformedRecord.
func Normalize(raw upstream.RawPurchase) (Purchase, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw.ProductPrice))
	if err != nil {
		return Purchase{}, fmt.Errorf("%w: product_price %q: %v", ErrMalformedRecord, raw.ProductPrice, err)
	}
	price, _ := d.Float64()
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return Purchase{}, fmt.Errorf("%w: product_price %q out of range", ErrMalformedRecord, raw.ProductPrice)
	}
	total := float64(raw.PurchaseQuantity) * price
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return Purchase{}, fmt.Errorf("%w: total overflows for quantity %d, price %q", ErrMalformedRecord, raw.PurchaseQuantity, raw.ProductPrice)
	}

	return Purchase{
		ProductName:  raw.ProductName,
		CustomerName: raw.Name,
		Quantity:     raw.PurchaseQuantity,
		Price:        price,
		Total:        total,
	}, nil
}

// NormalizeAll сохраняет порядок; первая же плохая запись прерывает весь батч.
func NormalizeAll(raws []upstream.RawPurchase) ([]Purchase, error) {
	out := make([]Purchase, 0, len(raws))
	for i, raw := range raws {
		p, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
