package domain

import (
	"strconv"
	"strings"
	"time"
)

// Recognized filter keys. Anything else in a Filter passes through to
// the persistence layer untouched, matched as a plain field equality.
const (
	FilterOrderNumber = "orderNumber"
	FilterOrderID     = "orderId"
	FilterStartDate   = "orderStartDate"
	FilterEndDate     = "orderEndDate"
	FilterStatus      = "orderStatus"
	FilterPage        = "pageNumber"
	FilterPageSize    = "pageSize"
)

// Filter is an open key/value map of order query criteria. The
// recognized keys get typed accessors below; unknown keys are exposed
// via Extra so each adapter can forward them as-is.
type Filter map[string]string

// OrderNumber returns the order-number search text, preferring the
// orderNumber key and falling back to orderId.
func (f Filter) OrderNumber() (string, bool) {
	if v := strings.TrimSpace(f[FilterOrderNumber]); v != "" {
		return v, true
	}
	if v := strings.TrimSpace(f[FilterOrderID]); v != "" {
		return v, true
	}
	return "", false
}

// StartDate returns the inclusive lower creation-time bound: the UTC
// start of the orderStartDate day.
func (f Filter) StartDate() (time.Time, bool) {
	day, ok := parseDay(f[FilterStartDate])
	if !ok {
		return time.Time{}, false
	}
	return day, true
}

// EndDate returns the inclusive upper creation-time bound: the last
// millisecond of the orderEndDate day in UTC.
func (f Filter) EndDate() (time.Time, bool) {
	day, ok := parseDay(f[FilterEndDate])
	if !ok {
		return time.Time{}, false
	}
	return day.Add(24*time.Hour - time.Millisecond), true
}

// Status returns the status criterion verbatim. Casing is significant:
// stored statuses mix "draft" and "Pending" and the filter must match
// what is stored.
func (f Filter) Status() (Status, bool) {
	if v := f[FilterStatus]; v != "" {
		return Status(v), true
	}
	return "", false
}

// Page returns the 1-indexed page number, defaulting to 1.
func (f Filter) Page() int {
	if n, err := strconv.Atoi(f[FilterPage]); err == nil && n > 0 {
		return n
	}
	return 1
}

// PageSize returns the page size when pagination was requested.
func (f Filter) PageSize() (int, bool) {
	n, err := strconv.Atoi(f[FilterPageSize])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Extra returns the unrecognized criteria to pass through.
func (f Filter) Extra() map[string]string {
	extra := map[string]string{}
	for key, value := range f {
		switch key {
		case FilterOrderNumber, FilterOrderID, FilterStartDate, FilterEndDate, FilterStatus, FilterPage, FilterPageSize:
		default:
			extra[key] = value
		}
	}
	return extra
}

// Matches evaluates the recognized criteria against an order in memory.
// It is the reference semantics the database adapters translate to
// their native query languages; pass-through keys are not evaluated
// here because the in-memory model has no loose fields.
func (f Filter) Matches(cart *Cart) bool {
	if cart == nil {
		return false
	}
	if number, ok := f.OrderNumber(); ok {
		if !strings.HasPrefix(cart.OrderNumber, number) {
			return false
		}
	}
	if start, ok := f.StartDate(); ok && cart.CreatedAt.Before(start) {
		return false
	}
	if end, ok := f.EndDate(); ok && cart.CreatedAt.After(end) {
		return false
	}
	if status, ok := f.Status(); ok && cart.Status != status {
		return false
	}
	return true
}

func parseDay(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
