package models

import "testing"

func TestRateMovieRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RateMovieRequest
		wantErr bool
	}{
		{"minimum rating", RateMovieRequest{MovieID: 1, Rating: RatingMin}, false},
		{"maximum rating", RateMovieRequest{MovieID: 1, Rating: RatingMax}, false},
		{"mid scale", RateMovieRequest{MovieID: 9, Rating: 3}, false},
		{"zero rating", RateMovieRequest{MovieID: 1, Rating: 0}, true},
		{"above scale", RateMovieRequest{MovieID: 1, Rating: 6}, true},
		{"negative rating", RateMovieRequest{MovieID: 1, Rating: -2}, true},
		{"missing movie", RateMovieRequest{MovieID: 0, Rating: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("Validate() = %T, want *ValidationError", err)
			}
		})
	}
}

func TestMovieRefRequestValidate(t *testing.T) {
	if err := (&MovieRefRequest{MovieID: 42}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := (&MovieRefRequest{}).Validate(); err == nil {
		t.Error("Validate() = nil, want error for missing movie_id")
	}
}
