package api

import "testing"

func TestContactSearchNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ContactSearch
		wantPage int
		wantSize int
	}{
		{"zero values", ContactSearch{}, 1, 10},
		{"explicit", ContactSearch{Page: 3, Size: 25}, 3, 25},
		{"negative page", ContactSearch{Page: -1, Size: 5}, 1, 5},
		{"zero size", ContactSearch{Page: 2, Size: 0}, 2, 10},
		{"huge page", ContactSearch{Page: 1 << 40, Size: 5}, MaxPage, 5},
		{"huge size", ContactSearch{Page: 2, Size: 1 << 40}, 2, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", got.Size, tt.wantSize)
			}
		})
	}
}

func TestContactSearchNormalizeKeepsCriteria(t *testing.T) {
	got := ContactSearch{Name: "ali", Email: "@example", Phone: "555"}.Normalize()
	if got.Name != "ali" || got.Email != "@example" || got.Phone != "555" {
		t.Errorf("Normalize dropped criteria: %+v", got)
	}
}

func TestContactSearchOffset(t *testing.T) {
	tests := []struct {
		page, size, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 10, 20},
		{2, 7, 7},
	}

	for _, tt := range tests {
		s := ContactSearch{Page: tt.page, Size: tt.size}
		if got := s.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d, size=%d) = %d, want %d", tt.page, tt.size, got, tt.want)
		}
	}
}

func TestContactSearchOffsetStaysNonNegative(t *testing.T) {
	// (Page-1)*Size on raw values can wrap past the int range; Normalize
	// clamps both factors so the offset is always a valid slice index.
	s := ContactSearch{Page: 1 << 32, Size: 1 << 32}.Normalize()
	if got := s.Offset(); got < 0 {
		t.Errorf("Offset() = %d, want non-negative", got)
	}
}
