package util

import "testing"

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", page: "", limit: "", wantPage: 1, wantLimit: DefaultPageLimit},
		{name: "normal", page: "3", limit: "20", wantPage: 3, wantLimit: 20},
		{name: "negative page", page: "-1", limit: "10", wantPage: 1, wantLimit: 10},
		{name: "limit capped", page: "1", limit: "5000", wantPage: 1, wantLimit: MaxPageLimit},
		{name: "garbage", page: "abc", limit: "xyz", wantPage: 1, wantLimit: DefaultPageLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ParsePagination(tt.page, tt.limit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	allowed := map[string]string{
		"createdAt":     "created_at",
		"averageRating": "average_rating",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "single asc", in: "createdAt", want: "created_at asc"},
		{name: "single desc", in: "-createdAt", want: "created_at desc"},
		{name: "multiple", in: "-averageRating,createdAt", want: "average_rating desc, created_at asc"},
		{name: "unknown field dropped", in: "password,-createdAt", want: "created_at desc"},
		{name: "injection attempt dropped", in: "1;DROP TABLE users", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSort(tt.in, allowed); got != tt.want {
				t.Errorf("ParseSort(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
