package purchases

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GrossOf суммирует quantity, price и total. Для пустого набора: нули.
// Используется одинаково для свежих и прочитанных из хранилища записей.
func GrossOf(records []Purchase) Gross {
	var qty int64
	price, total := decimal.Zero, decimal.Zero
	for _, r := range records {
		qty += r.Quantity
		price = price.Add(decimal.NewFromFloat(r.Price))
		total = total.Add(decimal.NewFromFloat(r.Total))
	}
	p, _ := price.Float64()
	t, _ := total.Float64()
	return Gross{Quantity: qty, Total: t, Price: p}
}

// TotalsOf строит ответ /top-purchasers: итоги по сводкам (суммы максимумов).
func TotalsOf(summaries []PurchaserSummary) TopPurchasersReport {
	if summaries == nil {
		summaries = []PurchaserSummary{}
	}
	var qty int64
	price, spent := decimal.Zero, decimal.Zero
	for _, s := range summaries {
		qty += s.TopQuantity
		price = price.Add(decimal.NewFromFloat(s.TopPrice))
		spent = spent.Add(decimal.NewFromFloat(s.TotalAmountSpent))
	}
	p, _ := price.Float64()
	t, _ := spent.Float64()
	return TopPurchasersReport{
		TopPurchasers: summaries,
		GrossQuantity: qty,
		TotalPrice:    p,
		GrossTotal:    t,
	}
}

// GroupByPurchaser: эталонная группировка в Go (ею пользуется MemoryStore).
// records должны идти в порядке вставки: top_product берётся из первой
// записи группы. Суммы копятся в decimal, как и в GrossOf, чтобы
// gross.total и grossTotal одного набора совпадали.
func GroupByPurchaser(records []Purchase) []PurchaserSummary {
	index := make(map[string]int)
	out := make([]PurchaserSummary, 0)
	var spent []decimal.Decimal
	for _, r := range records {
		i, ok := index[r.CustomerName]
		if !ok {
			index[r.CustomerName] = len(out)
			out = append(out, PurchaserSummary{
				ID:          r.CustomerName,
				UserName:    r.CustomerName,
				TopProduct:  r.ProductName,
				TopQuantity: r.Quantity,
				TopPrice:    r.Price,
			})
			spent = append(spent, decimal.NewFromFloat(r.Total))
			continue
		}
		s := &out[i]
		spent[i] = spent[i].Add(decimal.NewFromFloat(r.Total))
		if r.Quantity > s.TopQuantity {
			s.TopQuantity = r.Quantity
		}
		if r.Price > s.TopPrice {
			s.TopPrice = r.Price
		}
	}
	for i := range out {
		out[i].TotalAmountSpent, _ = spent[i].Float64()
	}
	SortSummaries(out)
	return out
}

// SortSummaries: по убыванию суммы, при равенстве по ключу группы.
func SortSummaries(s []PurchaserSummary) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].TotalAmountSpent != s[j].TotalAmountSpent {
			return s[i].TotalAmountSpent > s[j].TotalAmountSpent
		}
		return s[i].ID < s[j].ID
	})
}
