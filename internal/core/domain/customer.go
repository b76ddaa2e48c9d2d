package domain

// Customer is the owner of invoices. This service never writes customers.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// CustomerField is the id/name pair used by selection widgets.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerSummary is a customer with aggregated invoice figures (cents).
type CustomerSummary struct {
	ID            string
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  int64
	TotalPaid     int64
}

// Revenue is one externally populated monthly revenue figure.
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}
