package request

// DateRangeQuery is the date window of list and report endpoints. EndDate
// is exclusive: pass the day after the last day wanted.
type DateRangeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// ReportQuery selects a report period. Without explicit dates the period
// containing today is used.
type ReportQuery struct {
	DateRangeQuery
	Period string `form:"period"`
	Anchor string `form:"date"`
	Points int    `form:"points"`
}
