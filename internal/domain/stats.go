package domain

// ReferrerCount is one row of the top referrers table.
type ReferrerCount struct {
	Domain string `json:"domain"`
	Count  int64  `json:"count"`
}

// Stats is the dashboard projection of a product's recent badge clicks.
type Stats struct {
	TotalClicks  int64           `json:"totalClicks"`
	TopReferrers []ReferrerCount `json:"topReferrers"`
	Period       string          `json:"period"`
}
