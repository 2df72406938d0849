package catalog

// ownedListings is the fixed dataset backing the profile dashboard's "my
// listings" section. Listing authorship is not modeled yet, so every
// authenticated profile sees the same sample entry.
var ownedListings = []Listing{
	{
		ID:          "ul1",
		Kind:        KindEvent,
		Title:       "Projeção Urbana: A Luz",
		Subtitle:    "Centro Histórico",
		Description: "Uma intervenção visual no centro.",
		ImageURL:    "https://picsum.photos/seed/proj/600/400",
		Price:       "Grátis",
		Rating:      5.0,
		Reviews:     42,
		Date:        "12 Dez",
		Tags:        []string{"Visual Art"},
	},
}

// OwnedListings returns the listings shown on a profile's own dashboard.
func OwnedListings(profileID string) []Listing {
	if profileID == "" {
		return nil
	}
	return cloneListings(ownedListings)
}
