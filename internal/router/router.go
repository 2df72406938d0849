// Package router owns the top-level view state machine and the login
// overlay flag.
package router

import (
	"github.com/caoslabs/caos/internal/catalog"
)

// View is the mutually exclusive top-level screen selector.
type View string

const (
	// ViewHome shows the catalog feed.
	ViewHome View = "HOME"
	// ViewProfile shows the resident profile.
	ViewProfile View = "PROFILE"
	// ViewOnboarding runs the onboarding wizard.
	ViewOnboarding View = "ONBOARDING"
	// ViewEditProfile runs the profile edit form.
	ViewEditProfile View = "EDIT_PROFILE"
	// ViewListingDetails shows one selected listing.
	ViewListingDetails View = "LISTING_DETAILS"
)

// Router tracks the current view, the login overlay, and the listing under
// inspection. It never performs side effects itself; entering the details
// view signals a scroll reset through the configured callback.
type Router struct {
	view          view
	onScrollReset func()
}

type view struct {
	current      View
	loginOverlay bool
	selected     *catalog.Listing
}

// New creates a router starting at Home. onScrollReset fires on every
// transition into ListingDetails; nil is allowed.
func New(onScrollReset func()) *Router {
	return &Router{
		view:          view{current: ViewHome},
		onScrollReset: onScrollReset,
	}
}

// Current returns the active view.
func (r *Router) Current() View {
	if r == nil {
		return ViewHome
	}
	return r.view.current
}

// LoginOverlayOpen reports whether the login overlay is showing.
func (r *Router) LoginOverlayOpen() bool {
	return r != nil && r.view.loginOverlay
}

// SelectedListing returns the listing under inspection, if any.
func (r *Router) SelectedListing() (catalog.Listing, bool) {
	if r == nil || r.view.selected == nil {
		return catalog.Listing{}, false
	}
	return r.view.selected.Clone(), true
}

// OpenLogin shows the login overlay without changing the view.
func (r *Router) OpenLogin() {
	if r == nil {
		return
	}
	r.view.loginOverlay = true
}

// CloseLogin hides the login overlay.
func (r *Router) CloseLogin() {
	if r == nil {
		return
	}
	r.view.loginOverlay = false
}

// LoggedIn lands a plain login on Home and closes the overlay.
func (r *Router) LoggedIn() {
	if r == nil {
		return
	}
	r.view.loginOverlay = false
	r.view.current = ViewHome
}

// Registered routes a fresh registration into onboarding.
func (r *Router) Registered() {
	if r == nil {
		return
	}
	r.view.loginOverlay = false
	r.view.current = ViewOnboarding
}

// FederatedLoggedIn routes an incomplete federated identity into
// onboarding; a complete one lands on its profile.
func (r *Router) FederatedLoggedIn(complete bool) {
	if r == nil {
		return
	}
	r.view.loginOverlay = false
	if complete {
		r.view.current = ViewProfile
	} else {
		r.view.current = ViewOnboarding
	}
}

// SessionRestored lands a restored session on Home. The bio-empty routing
// into onboarding applies only to fresh logins, never at startup.
func (r *Router) SessionRestored() {
	if r == nil {
		return
	}
	r.view.current = ViewHome
}

// OnboardingCompleted lands the finished wizard on the profile.
func (r *Router) OnboardingCompleted() {
	if r == nil || r.view.current != ViewOnboarding {
		return
	}
	r.view.current = ViewProfile
}

// ProfileClicked opens the profile when a session is resident; otherwise
// it leaves the view unchanged and opens the login overlay.
func (r *Router) ProfileClicked(sessionPresent bool) {
	if r == nil {
		return
	}
	if !sessionPresent {
		r.view.loginOverlay = true
		return
	}
	r.view.current = ViewProfile
}

// EditRequested enters the edit form from the profile.
func (r *Router) EditRequested() {
	if r == nil || r.view.current != ViewProfile {
		return
	}
	r.view.current = ViewEditProfile
}

// EditClosed returns to the profile after a save or cancel.
func (r *Router) EditClosed() {
	if r == nil || r.view.current != ViewEditProfile {
		return
	}
	r.view.current = ViewProfile
}

// ListingSelected records the listing and enters the details view,
// signaling a scroll reset.
func (r *Router) ListingSelected(listing catalog.Listing) {
	if r == nil {
		return
	}
	selected := listing.Clone()
	r.view.selected = &selected
	r.view.current = ViewListingDetails
	if r.onScrollReset != nil {
		r.onScrollReset()
	}
}

// BackFromDetails returns from the details view to Home.
func (r *Router) BackFromDetails() {
	if r == nil || r.view.current != ViewListingDetails {
		return
	}
	r.view.selected = nil
	r.view.current = ViewHome
}

// LoggedOut returns to Home from anywhere.
func (r *Router) LoggedOut() {
	if r == nil {
		return
	}
	r.view.loginOverlay = false
	r.view.selected = nil
	r.view.current = ViewHome
}

// HomeClicked returns to Home from anywhere.
func (r *Router) HomeClicked() {
	if r == nil {
		return
	}
	r.view.selected = nil
	r.view.current = ViewHome
}
