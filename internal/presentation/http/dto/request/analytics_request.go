package request

// MonthQuery selects a calendar month. Zero values mean the current month.
type MonthQuery struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2000,max=9999"`
}
