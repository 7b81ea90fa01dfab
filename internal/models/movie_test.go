package models

import "testing"

func TestMovieListParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		in   MovieListParams
		want MovieListParams
	}{
		{
			"zero values get defaults",
			MovieListParams{},
			MovieListParams{Page: 1, PageSize: 20, SortBy: "popularity", Order: "desc"},
		},
		{
			"negative page clamped",
			MovieListParams{Page: -3, PageSize: 10},
			MovieListParams{Page: 1, PageSize: 10, SortBy: "popularity", Order: "desc"},
		},
		{
			"oversized page size reset",
			MovieListParams{Page: 2, PageSize: 500},
			MovieListParams{Page: 2, PageSize: 20, SortBy: "popularity", Order: "desc"},
		},
		{
			"unknown sort column replaced",
			MovieListParams{Page: 1, PageSize: 20, SortBy: "id; DROP TABLE movies"},
			MovieListParams{Page: 1, PageSize: 20, SortBy: "popularity", Order: "desc"},
		},
		{
			"valid sort and order kept",
			MovieListParams{Page: 3, PageSize: 50, SortBy: "release_date", Order: "asc"},
			MovieListParams{Page: 3, PageSize: 50, SortBy: "release_date", Order: "asc"},
		},
		{
			"uppercase order rejected",
			MovieListParams{Page: 1, PageSize: 20, SortBy: "title", Order: "ASC"},
			MovieListParams{Page: 1, PageSize: 20, SortBy: "title", Order: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			// Query and GenreID pass through untouched.
			p.Query = tt.want.Query
			p.GenreID = tt.want.GenreID
			if p != tt.want {
				t.Errorf("Validate() = %+v, want %+v", p, tt.want)
			}
		})
	}
}

func TestNormalizeReleaseDate(t *testing.T) {
	if got := NormalizeReleaseDate(""); got != nil {
		t.Errorf("NormalizeReleaseDate(\"\") = %v, want nil", *got)
	}
	if got := NormalizeReleaseDate("2024-07-19"); got == nil || *got != "2024-07-19" {
		t.Errorf("NormalizeReleaseDate(2024-07-19) = %v, want 2024-07-19", got)
	}
}

func TestNullablePath(t *testing.T) {
	if got := NullablePath(""); got != nil {
		t.Errorf("NullablePath(\"\") = %v, want nil", *got)
	}
	if got := NullablePath("/abc.jpg"); got == nil || *got != "/abc.jpg" {
		t.Errorf("NullablePath(/abc.jpg) = %v, want /abc.jpg", got)
	}
}
