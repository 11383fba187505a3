package dto

import "time"

// AccountBalanceParams defines query parameters for a single account balance.
type AccountBalanceParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1" binding:"required"`
}

// TrialBalanceParams defines query parameters for a trial balance. Both dates are inclusive.
type TrialBalanceParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" binding:"required,gtefield=From"`
}
