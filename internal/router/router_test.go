package router

import (
	"testing"

	"github.com/caoslabs/caos/internal/catalog"
)

func TestNewStartsAtHome(t *testing.T) {
	r := New(nil)

	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewHome)
	}
	if r.LoginOverlayOpen() {
		t.Fatal("LoginOverlayOpen() = true at start")
	}
	if _, ok := r.SelectedListing(); ok {
		t.Fatal("SelectedListing() ok = true at start")
	}
}

func TestLoggedInLandsOnHome(t *testing.T) {
	r := New(nil)
	r.OpenLogin()

	r.LoggedIn()

	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewHome)
	}
	if r.LoginOverlayOpen() {
		t.Fatal("LoginOverlayOpen() = true after login")
	}
}

func TestRegisteredEntersOnboarding(t *testing.T) {
	r := New(nil)
	r.OpenLogin()

	r.Registered()

	if r.Current() != ViewOnboarding {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewOnboarding)
	}
	if r.LoginOverlayOpen() {
		t.Fatal("LoginOverlayOpen() = true after register")
	}
}

func TestFederatedLoginBranchesOnCompleteness(t *testing.T) {
	incomplete := New(nil)
	incomplete.FederatedLoggedIn(false)
	if incomplete.Current() != ViewOnboarding {
		t.Fatalf("Current() = %v, want %v", incomplete.Current(), ViewOnboarding)
	}

	complete := New(nil)
	complete.FederatedLoggedIn(true)
	if complete.Current() != ViewProfile {
		t.Fatalf("Current() = %v, want %v", complete.Current(), ViewProfile)
	}
}

func TestSessionRestoredLandsOnHome(t *testing.T) {
	r := New(nil)

	r.SessionRestored()

	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewHome)
	}
}

func TestProfileClickedWithoutSessionOpensOverlayOnly(t *testing.T) {
	r := New(nil)

	r.ProfileClicked(false)

	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want unchanged %v", r.Current(), ViewHome)
	}
	if !r.LoginOverlayOpen() {
		t.Fatal("LoginOverlayOpen() = false, want true")
	}
}

func TestProfileClickedWithSession(t *testing.T) {
	r := New(nil)

	r.ProfileClicked(true)

	if r.Current() != ViewProfile {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewProfile)
	}
}

func TestOnboardingCompletedOnlyFromOnboarding(t *testing.T) {
	r := New(nil)
	r.OnboardingCompleted()
	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want unchanged %v", r.Current(), ViewHome)
	}

	r.Registered()
	r.OnboardingCompleted()
	if r.Current() != ViewProfile {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewProfile)
	}
}

func TestEditRoundTrip(t *testing.T) {
	r := New(nil)
	r.ProfileClicked(true)

	r.EditRequested()
	if r.Current() != ViewEditProfile {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewEditProfile)
	}

	r.EditClosed()
	if r.Current() != ViewProfile {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewProfile)
	}
}

func TestEditRequestedOnlyFromProfile(t *testing.T) {
	r := New(nil)

	r.EditRequested()

	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want unchanged %v", r.Current(), ViewHome)
	}
}

func TestListingSelectedSignalsScrollReset(t *testing.T) {
	resets := 0
	r := New(func() { resets++ })

	listing := catalog.Listing{ID: "l1", Title: "Neon Jazz Night", Kind: catalog.KindEvent}
	r.ListingSelected(listing)

	if r.Current() != ViewListingDetails {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewListingDetails)
	}
	if resets != 1 {
		t.Fatalf("scroll resets = %d, want 1", resets)
	}
	selected, ok := r.SelectedListing()
	if !ok {
		t.Fatal("SelectedListing() ok = false")
	}
	if selected.ID != "l1" {
		t.Fatalf("SelectedListing() id = %q, want %q", selected.ID, "l1")
	}

	r.ListingSelected(listing)
	if resets != 2 {
		t.Fatalf("scroll resets = %d, want 2", resets)
	}
}

func TestBackFromDetailsReturnsHome(t *testing.T) {
	r := New(nil)
	r.ListingSelected(catalog.Listing{ID: "l1"})

	r.BackFromDetails()

	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewHome)
	}
	if _, ok := r.SelectedListing(); ok {
		t.Fatal("SelectedListing() ok = true after back")
	}
}

func TestLoggedOutReturnsHomeFromAnywhere(t *testing.T) {
	r := New(nil)
	r.ProfileClicked(true)
	r.EditRequested()

	r.LoggedOut()

	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewHome)
	}
}

func TestHomeClickedReturnsHomeFromAnywhere(t *testing.T) {
	r := New(nil)
	r.ListingSelected(catalog.Listing{ID: "l1"})

	r.HomeClicked()

	if r.Current() != ViewHome {
		t.Fatalf("Current() = %v, want %v", r.Current(), ViewHome)
	}
	if _, ok := r.SelectedListing(); ok {
		t.Fatal("SelectedListing() ok = true after home")
	}
}
