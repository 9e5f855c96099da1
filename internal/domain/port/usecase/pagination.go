package usecase

// Pagination bounds applied to listing operations
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

// Page describes an offset/limit window into a listing
type Page struct {
	Offset int
	Limit  int
}

// Normalize clamps the page to sane bounds: non-negative offset, limit
// within [1, MaxPageLimit], defaulting when unset
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}
