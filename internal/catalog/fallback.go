package catalog

// fallbackListings is the fixed substitute catalog shown when the content
// provider fails. The set is deliberately small and deterministic: the
// failure policy is "always show something", never a user-visible error.
var fallbackListings = []Listing{
	{
		ID:          "1",
		Kind:        KindEvent,
		Title:       "Neon Jazz Night",
		Subtitle:    "Underground Bunker",
		Description: "An immersive jazz experience with neon lights.",
		ImageURL:    "https://picsum.photos/seed/jazz/600/400",
		Price:       "R$ 50",
		Rating:      4.8,
		Reviews:     124,
		Date:        "This Friday",
		Coordinates: &Coordinates{Lat: 40, Lng: 60},
		Tags:        []string{"Music", "Jazz"},
	},
	{
		ID:          "2",
		Kind:        KindSpace,
		Title:       "The White Cube",
		Subtitle:    "Minimalist Gallery",
		Description: "Available for pop-up exhibitions and photo shoots.",
		ImageURL:    "https://picsum.photos/seed/gallery/600/400",
		Price:       "R$ 200/hr",
		Rating:      4.9,
		Reviews:     85,
		Coordinates: &Coordinates{Lat: 30, Lng: 30},
		Tags:        []string{"Gallery", "Space"},
	},
}

// FallbackListings returns a fresh copy of the substitute catalog.
func FallbackListings() []Listing {
	return cloneListings(fallbackListings)
}
