package models

// SetGenrePreferencesRequest replaces a user's preferred genres.
type SetGenrePreferencesRequest struct {
	GenreIDs []int `json:"genre_ids"`
}

// Validate rejects non-positive genre identifiers.
func (r *SetGenrePreferencesRequest) Validate() error {
	for _, id := range r.GenreIDs {
		if id <= 0 {
			return &ValidationError{Field: "genre_ids", Message: "must contain positive genre IDs"}
		}
	}
	return nil
}

// GenrePreferencesResponse returns the user's preferred genres as full genre
// objects.
type GenrePreferencesResponse struct {
	Genres []Genre `json:"genres"`
}
