// Package catalog models the browsable listing catalog and its
// category-scoped loading pipeline.
package catalog

import (
	"strings"

	apperrors "github.com/caoslabs/caos/internal/platform/errors"
)

// ErrInvalidKind indicates an unrecognized listing kind.
var ErrInvalidKind = apperrors.New(apperrors.CodeCatalogInvalidKind, "listing kind must be EVENT, SPACE, ARTIST, or EXPERIENCE")

// ErrInvalidCategory indicates an unknown category key.
var ErrInvalidCategory = apperrors.New(apperrors.CodeCatalogInvalidCategory, "category key is not recognized")

// Kind classifies a catalog listing.
type Kind string

const (
	// KindEvent is a concert, exhibition, or play.
	KindEvent Kind = "EVENT"
	// KindSpace is a studio, gallery, or theater available for use.
	KindSpace Kind = "SPACE"
	// KindArtist is a creator offering work or services.
	KindArtist Kind = "ARTIST"
	// KindExperience is a workshop or tour.
	KindExperience Kind = "EXPERIENCE"
)

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	switch k {
	case KindEvent, KindSpace, KindArtist, KindExperience:
		return true
	}
	return false
}

// ParseKind canonicalizes a kind string.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToUpper(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", ErrInvalidKind
	}
	return kind, nil
}

// Coordinates is a relative map position, not a geographic location. Both
// axes are bounded 0-100 floats for the decorative map surface.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing is one immutable catalog item.
type Listing struct {
	ID          string       `json:"id"`
	Kind        Kind         `json:"type"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
	Price       string       `json:"price,omitempty"`
	Rating      float64      `json:"rating"`
	Reviews     int          `json:"reviews"`
	Date        string       `json:"date,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Tags        []string     `json:"tags"`
}

// Clone returns a copy that shares no mutable state with the receiver.
func (l Listing) Clone() Listing {
	next := l
	if l.Coordinates != nil {
		coords := *l.Coordinates
		next.Coordinates = &coords
	}
	if l.Tags != nil {
		next.Tags = append([]string(nil), l.Tags...)
	}
	return next
}

func cloneListings(listings []Listing) []Listing {
	if listings == nil {
		return nil
	}
	out := make([]Listing, len(listings))
	for i, l := range listings {
		out[i] = l.Clone()
	}
	return out
}

// Category is one entry of the fixed category filter bar.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CategoryAll is the unfiltered category key and the initial selection.
const CategoryAll = "all"

var categories = []Category{
	{Key: CategoryAll, Label: "Todos"},
	{Key: "music", Label: "Música"},
	{Key: "visual", Label: "Artes Visuais"},
	{Key: "photo", Label: "Fotografia"},
	{Key: "theater", Label: "Teatro"},
	{Key: "cinema", Label: "Cinema"},
	{Key: "workshops", Label: "Oficinas"},
	{Key: "talks", Label: "Palestras"},
	{Key: "spaces", Label: "Espaços"},
	{Key: "social", Label: "Social"},
}

// Categories returns the fixed category filter set.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ValidCategory reports whether key names a known category.
func ValidCategory(key string) bool {
	for _, c := range categories {
		if c.Key == key {
			return true
		}
	}
	return false
}
