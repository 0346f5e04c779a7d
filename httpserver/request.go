package httpserver

import "cinesearch/movie"

type SearchMoviesRequest struct {
	Query string `query:"query" validate:"max=200"`
}

type FeaturedMovieRequest struct {
	Category string `query:"category" validate:"omitempty,category"`
}

// ToCategory defaults an empty category to popular, like the landing page does.
func (r FeaturedMovieRequest) ToCategory() (movie.Category, error) {
	if r.Category == "" {
		return movie.CategoryPopular, nil
	}
	return movie.ParseCategory(r.Category)
}
