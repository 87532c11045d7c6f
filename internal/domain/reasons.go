package domain

// ReasonCode is a stable, machine-readable token identifying why a request
// was rejected. Callers render messages from codes, never by string-parsing.
type ReasonCode string

const (
	// Policy rejections produced by the rule evaluator
	ReasonLeadTooSoon    ReasonCode = "LEAD_TOO_SOON"
	ReasonLeadTooFar     ReasonCode = "LEAD_TOO_FAR"
	ReasonBlackout       ReasonCode = "BLACKOUT"
	ReasonHolidayMinStay ReasonCode = "HOLIDAY_MIN_STAY"
	ReasonMinStay        ReasonCode = "MIN_STAY"

	// Conflict and lookup outcomes reported alongside policy codes
	ReasonOverlap           ReasonCode = "OVERLAP"
	ReasonUnitNotFound      ReasonCode = "UNIT_NOT_FOUND"
	ReasonNoCalendarForDate ReasonCode = "NO_CALENDAR_FOR_DATE"
	ReasonCalendarNotFound  ReasonCode = "CALENDAR_NOT_FOUND"
)

// Decision is the structured outcome of rule evaluation. Rejections are not
// errors: every violated rule is enumerated so the caller can present a
// complete explanation.
type Decision struct {
	OK          bool
	ReasonCodes []ReasonCode
}

// Accept returns a passing decision
func Accept() Decision {
	return Decision{OK: true, ReasonCodes: []ReasonCode{}}
}

// Reject returns a failing decision carrying the given codes
func Reject(codes ...ReasonCode) Decision {
	return Decision{OK: false, ReasonCodes: codes}
}
