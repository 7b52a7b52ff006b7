package purchases

// Purchase: нормализованная запись покупки.
// Total вычисляется один раз при нормализации и дальше не пересчитывается.
type Purchase struct {
	ProductName  string  `json:"productName" bson:"productName"`
	CustomerName string  `json:"customerName" bson:"customerName"`
	Quantity     int64   `json:"quantity" bson:"quantity"`
	Price        float64 `json:"price" bson:"price"`
	Total        float64 `json:"total" bson:"total"`
}

// Gross: суммы по набору записей
type Gross struct {
	Quantity int64   `json:"quantity"`
	Total    float64 `json:"total"`
	Price    float64 `json:"price"`
}

// Report: ответ /fetch-and-store и /data
type Report struct {
	Items []Purchase `json:"items"`
	Gross Gross      `json:"gross"`
}

// PurchaserSummary: сводка по одному покупателю (ключ группировки, имя).
// UserEmail при нормализации не заполняется, поэтому на практике всегда null.
type PurchaserSummary struct {
	ID               string  `json:"_id" bson:"_id"`
	UserName         string  `json:"user_name" bson:"user_name"`
	UserEmail        *string `json:"user_email" bson:"user_email"`
	TotalAmountSpent float64 `json:"total_amount_spent" bson:"total_amount_spent"`
	TopProduct       string  `json:"top_product" bson:"top_product"`
	TopQuantity      int64   `json:"top_quantity" bson:"top_quantity"`
	TopPrice         float64 `json:"top_price" bson:"top_price"`
}

// TopPurchasersReport: ответ /top-purchasers. Итоги считаются по сводкам,
// а не по исходным строкам: GrossQuantity = Σ top_quantity, TotalPrice = Σ top_price.
type TopPurchasersReport struct {
	TopPurchasers []PurchaserSummary `json:"topPurchasers"`
	GrossQuantity int64              `json:"grossQuantity"`
	TotalPrice    float64            `json:"totalPrice"`
	GrossTotal    float64            `json:"grossTotal"`
}
