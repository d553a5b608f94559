package query

import (
	"strconv"
)

const (
	DefaultOffset = 0
	DefaultLimit  = 10
)

// Page is an offset/limit window over a result set
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage returns the first page with the default size
func DefaultPage() Page {
	return Page{Offset: DefaultOffset, Limit: DefaultLimit}
}

// ParsePage reads raw offset and limit parameters. Absent, malformed or
// negative values fall back to the defaults; a zero limit does too.
func ParsePage(offset, limit string) Page {
	p := DefaultPage()
	if n, err := strconv.Atoi(offset); err == nil && n >= 0 {
		p.Offset = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	return p
}

// Normalize replaces out-of-range values with the defaults
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = DefaultOffset
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}
