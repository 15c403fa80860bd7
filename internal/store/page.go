package store

const (
	DefaultCatalogLimit = 50
	DefaultReportLimit  = 10
)

// Page is a limit/offset window over a listing.
type Page struct {
	Limit  int
	Offset int
}

// Bounds returns the limit and offset to bind, falling back to defaultLimit
// for a non-positive limit and clamping a negative offset to zero.
func (p Page) Bounds(defaultLimit int) (limit, offset int) {
	limit, offset = p.Limit, p.Offset
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
