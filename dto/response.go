package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// YearResponse is the persisted and served shape of a full-year extraction.
type YearResponse struct {
	Year string `json:"year"`
	Data Year   `json:"data"`
}

// MonthResponse is the persisted and served shape of a single month.
type MonthResponse struct {
	Year  string      `json:"year"`
	Month string      `json:"month"`
	Data  MonthBucket `json:"data"`
}

// CalendarIndexResponse lists the PDFs on disk and what has been processed.
type CalendarIndexResponse struct {
	AvailableYears  []string            `json:"available_years"`
	ProcessedYears  []string            `json:"processed_years"`
	ProcessedMonths map[string][]string `json:"processed_months"`
	AvailableFiles  []string            `json:"available_files"`
	CachingInfo     string              `json:"caching_info"`
}
