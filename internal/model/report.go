package model

type DailyReport struct {
	Date             string  `json:"date"`
	TotalSalesAmount float64 `json:"total_sales_amount"`
	TotalSales       int     `json:"total_sales"`
	Sales            []Sale  `json:"sales"`

	// IsFallbackData marks reports produced by the widened-window retry
	// that runs when the exact-day query comes back empty.
	IsFallbackData bool `json:"is_fallback_data"`
}

type CategorySales struct {
	Category      string  `json:"category"`
	TotalSales    float64 `json:"total_sales"`
	TotalQuantity int     `json:"total_quantity"`
}

type MonthlyReport struct {
	Month             string          `json:"month"`
	Year              int             `json:"year"`
	TotalSalesAmount  float64         `json:"total_sales_amount"`
	TotalProductsSold int             `json:"total_products_sold"`
	CategoryBreakdown []CategorySales `json:"category_breakdown"`
}

type MonthSales struct {
	Month         string  `json:"month"`
	TotalSales    float64 `json:"total_sales"`
	TotalQuantity int     `json:"total_quantity"`
}

type YearlyReport struct {
	Year              int     `json:"year"`
	TotalSalesAmount  float64 `json:"total_sales_amount"`
	TotalProductsSold int     `json:"total_products_sold"`

	// MonthlyBreakdown always has 12 entries, zero-filled for months
	// without sales.
	MonthlyBreakdown []MonthSales `json:"monthly_breakdown"`
}
