package dto

import "time"

// ListRecordsParams defines the shared query parameters for record list
// endpoints. Date bounds are inclusive on both ends.
type ListRecordsParams struct {
	Status    *string    `form:"status" binding:"omitempty,approvalstatus"`
	DateFrom  *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"date_to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"next_token"`
}
