package main

import "time"

// Represents one freight load posting
type Load struct {
	ID          string
	Date        string // invariant: calendar date, "2006-01-02"
	PickupZip   string // raw ZIP or 2-letter state code as entered
	DeliveryZip string
	TotalMiles  float64 // invariant: >= 0
	Rate        float64 // invariant: >= 0
	RPMTotal    float64 // invariant: round2(Rate/TotalMiles), 0 when TotalMiles == 0
	Trailer     string
	Comment     string
	User        string // display handle, "@name" or full name
	UserID      string
	CreatedAt   time.Time
}

// LengthCategory is recomputed from the stored distance on every read,
// never trusted from storage.
func (l Load) LengthCategory() string {
	return classifyDistance(l.TotalMiles)
}

// HasRPM reports whether the derived rate-per-mile is defined.
func (l Load) HasRPM() bool {
	return l.TotalMiles != 0
}

type LoadUpdate struct {
	PickupZip   *string
	DeliveryZip *string
	TotalMiles  *float64
	Rate        *float64
	RPMTotal    *float64
	Trailer     *string
	Comment     *string
}

// Session is one user's in-progress submission form.
type Session struct {
	Step            int // invariant: 0..5, advances by exactly 1 per accepted input
	Fields          map[string]string
	PromptMessageID int
	ChatID          int64
	User            string
	UserID          string
	UpdatedAt       time.Time
}

// EditSession is one user's in-progress single-field edit of one load.
type EditSession struct {
	LoadID          string
	Load            Load // snapshot at entry, source for derived-field recompute
	Field           string
	PromptMessageID int
	ChatID          int64
	UpdatedAt       time.Time
}
