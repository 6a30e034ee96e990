package constvars

const (
	URLParamRecordID = "record_id"
)

const (
	URLQueryParamLimit = "limit"
	URLQueryParamNext  = "next"
)
