package widgets

import "errors"

// ErrNotFound is returned when a widget identifier resolves to nothing.
// Store implementations wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("widget not found")

// ErrDashboardForbidden masks both "no permission" and "no such dashboard"
// so a denied caller cannot probe for dashboard existence.
var ErrDashboardForbidden = errors.New("you can't view this dashboard or it doesn't exist")
