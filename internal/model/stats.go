package model

// Bucket is one bar of a chart.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardStats aggregates one year of records for the dashboard charts.
type DashboardStats struct {
	Year             int      `json:"year"`
	Total            int      `json:"total"`
	Districts        []Bucket `json:"districts"`
	Locations        []Bucket `json:"locations"`
	HusbandAges      []Bucket `json:"husbandAges"`
	WifeAges         []Bucket `json:"wifeAges"`
	UnderagePerMonth []Bucket `json:"underagePerMonth"`
}

// YearSummary answers the yearly statistics intent.
type YearSummary struct {
	Year     int     `json:"year"`
	Total    int64   `json:"total"`
	PerMonth int64   `json:"perMonth"`
	PerDay   float64 `json:"perDay"`
}

// ImportResult reports the outcome of one spreadsheet upload.
type ImportResult struct {
	Rows       int `json:"rows"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Blank      int `json:"blank"`
}
