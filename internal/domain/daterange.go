package domain

// DateRange bounds a query by calendar date. Either side may be empty, which
// leaves that side unbounded. Comparison is plain string comparison: ISO
// YYYY-MM-DD dates order lexicographically exactly as they do
// chronologically, so no date parsing is needed.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Contains reports whether date falls inside the range. Both ends are
// inclusive.
func (r DateRange) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

func (r DateRange) Validate() error {
	if r.Start != "" && !ValidDate(r.Start) {
		return ErrInvalidDate
	}
	if r.End != "" && !ValidDate(r.End) {
		return ErrInvalidDate
	}
	return nil
}
