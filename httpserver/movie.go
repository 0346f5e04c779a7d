package httpserver

import (
	"cinesearch/errs"
	"cinesearch/movie"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies/search", s.handleSearchMovies)
	g.GET("/movies/popular", s.handleListMovies(movie.CategoryPopular))
	g.GET("/movies/trending", s.handleListMovies(movie.CategoryTrending))
	g.GET("/movies/upcoming", s.handleListMovies(movie.CategoryUpcoming))
	g.GET("/movies/featured", s.handleFeaturedMovie)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Search the movie catalog by title. Blank queries and catalog failures yield an empty list.
// @Tags movies
// @Produce json
// @Param query query string false "Title to search for (max 200 characters)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req SearchMoviesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.Query = strings.TrimSpace(req.Query)
	if err := c.Validate(req); err != nil {
		return err
	}

	results := s.MovieService.SearchByTitle(c.Request().Context(), req.Query)
	return writeList(c, http.StatusOK, results)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Popular, weekly trending or upcoming movies. Catalog failures yield an empty list.
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/movies/popular [get]
// @Router /api/movies/trending [get]
// @Router /api/movies/upcoming [get]
func (s *Server) handleListMovies(category movie.Category) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.MovieService == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
		}

		results := s.MovieService.ListByCategory(c.Request().Context(), category)
		return writeList(c, http.StatusOK, results)
	}
}

// handleFeaturedMovie godoc
// @Summary Featured Movie
// @Description First movie of a category, used as the hero banner. Data is null when the list is empty.
// @Tags movies
// @Produce json
// @Param category query string false "popular (default), trending or upcoming"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies/featured [get]
func (s *Server) handleFeaturedMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req FeaturedMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	category, err := req.ToCategory()
	if err != nil {
		return err
	}

	var featured *movie.Summary
	if first, ok := movie.Featured(s.MovieService.ListByCategory(c.Request().Context(), category)); ok {
		featured = &first
	}
	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"data": featured,
	})
}
