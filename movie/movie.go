package movie

import (
	"encoding/json"
	"strconv"
	"strings"

	"cinesearch/errs"
)

// ImageBaseURL is the TMDB image CDN prefix; the size segment (e.g. "w500",
// "original") and the relative artwork path are appended to it.
const ImageBaseURL = "https://image.tmdb.org/t/p/"

// MaxQueryLength bounds the search text accepted by the public surfaces.
const MaxQueryLength = 200

var (
	ErrInvalidQuery    = errs.Errorf(errs.EINVALID, "search query must be at most %d characters", MaxQueryLength)
	ErrInvalidCategory = errs.Errorf(errs.EINVALID, "invalid movie category")
)

// Summary is one movie as returned by the external catalog.
//
// Optional fields are pointers: nil means the catalog did not send the field,
// which is different from a zero rating or an empty overview.
type Summary struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	PosterPath   *string  `json:"poster_path,omitempty"`
	BackdropPath *string  `json:"backdrop_path,omitempty"`
	Overview     *string  `json:"overview,omitempty"`
	ReleaseDate  *string  `json:"release_date,omitempty"`
	VoteAverage  *float64 `json:"vote_average,omitempty"`

	// raw is the object exactly as the catalog sent it.
	raw json.RawMessage
}

type summaryFields Summary

// UnmarshalJSON decodes the modelled fields and keeps the original object so
// that it can be handed on untouched.
func (s *Summary) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var f summaryFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	*s = Summary(f)
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the catalog object when there is one, so fields the
// struct does not model survive the round trip.
func (s Summary) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	return json.Marshal(summaryFields(s))
}

// Year returns the release year, or "TBA" when the release date is unknown.
func (s Summary) Year() string {
	if s.ReleaseDate == nil || len(*s.ReleaseDate) < 4 {
		return "TBA"
	}
	return (*s.ReleaseDate)[:4]
}

// Rating formats the vote average with one decimal, or "N/A".
func (s Summary) Rating() string {
	if s.VoteAverage == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*s.VoteAverage, 'f', 1, 64)
}

func (s Summary) PosterURL(size string) string {
	return imageURL(size, s.PosterPath)
}

func (s Summary) BackdropURL(size string) string {
	return imageURL(size, s.BackdropPath)
}

// HeroURL is the banner artwork: the backdrop, falling back to the poster.
func (s Summary) HeroURL(size string) string {
	if u := s.BackdropURL(size); u != "" {
		return u
	}
	return s.PosterURL(size)
}

func imageURL(size string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return ImageBaseURL + size + *path
}

// Featured picks the hero movie of a list: its first entry.
func Featured(list []Summary) (Summary, bool) {
	if len(list) == 0 {
		return Summary{}, false
	}
	return list[0], true
}

// Category is one of the browseable movie lists.
type Category string

const (
	CategoryPopular  Category = "popular"
	CategoryTrending Category = "trending"
	CategoryUpcoming Category = "upcoming"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryPopular, CategoryTrending, CategoryUpcoming:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}
