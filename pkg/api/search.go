package api

const (
	// DefaultPage is the page number used when the caller does not supply one.
	DefaultPage = 1

	// DefaultPageSize is the page size used when the caller does not supply one.
	DefaultPageSize = 10

	// MaxPage and MaxPageSize are the upper bounds Normalize clamps to.
	// Their product stays well inside int range, so Offset cannot overflow
	// however large the requested page and size are.
	MaxPage     = 1 << 20
	MaxPageSize = 100
)

// ContactSearch carries the optional filter criteria and pagination for
// listing a user's contacts. An empty criterion field imposes no predicate;
// this is distinct from matching the empty string.
type ContactSearch struct {
	// Name matches contacts whose first OR last name contains the substring,
	// case-insensitively.
	Name string

	// Email matches contacts whose email contains the substring,
	// case-insensitively.
	Email string

	// Phone matches contacts whose phone contains the substring.
	Phone string

	// Page is the 1-based page number. Values < 1 fall back to DefaultPage;
	// values above MaxPage clamp.
	Page int

	// Size is the page size. Values < 1 fall back to DefaultPageSize;
	// values above MaxPageSize clamp.
	Size int
}

// Normalize returns a copy with pagination defaults and bounds applied.
func (s ContactSearch) Normalize() ContactSearch {
	if s.Page < 1 {
		s.Page = DefaultPage
	} else if s.Page > MaxPage {
		s.Page = MaxPage
	}
	if s.Size < 1 {
		s.Size = DefaultPageSize
	} else if s.Size > MaxPageSize {
		s.Size = MaxPageSize
	}
	return s
}

// Offset returns the index of the first item on the requested page.
// Only defined for normalized searches.
func (s ContactSearch) Offset() int {
	return (s.Page - 1) * s.Size
}

// ContactPage is one page of search results. Total counts every match
// before pagination, not the number of items on this page.
type ContactPage struct {
	Items []Contact `json:"data"`
	Meta  PageMeta  `json:"meta"`
}

// PageMeta describes the pagination of a ContactPage.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}
