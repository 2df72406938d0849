// Package app wires the CAOS orchestrator: a single dispatch loop that
// owns all view, session, and catalog state, consumes render-surface
// intents, and resolves asynchronous completions in arrival order.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/caoslabs/caos/internal/catalog"
	"github.com/caoslabs/caos/internal/catalog/loader"
	"github.com/caoslabs/caos/internal/editform"
	apperrors "github.com/caoslabs/caos/internal/platform/errors"
	"github.com/caoslabs/caos/internal/profile"
	"github.com/caoslabs/caos/internal/router"
	"github.com/caoslabs/caos/internal/session"
	"github.com/caoslabs/caos/internal/wizard"
)

// ErrUnknownIntent indicates an intent the dispatch loop does not handle.
var ErrUnknownIntent = apperrors.New(apperrors.CodeIntentUnknown, "unknown intent")

// Snapshot is the full render-surface state at one point in time.
type Snapshot struct {
	Ready        bool
	View         router.View
	LoginOverlay bool
	AuthPending  bool
	ScrollToTop  bool

	Session *profile.Profile

	Categories       []catalog.Category
	SelectedCategory string
	Listings         []catalog.Listing
	CatalogLoading   bool
	SelectedListing  *catalog.Listing
	OwnedListings    []catalog.Listing

	WizardStep  wizard.Step
	WizardDraft *wizard.Draft

	EditDraft    *profile.Profile
	EditSaving   bool
	BioRemaining int
}

// Config carries the App dependencies.
type Config struct {
	Sessions *session.Manager
	Loader   *loader.Loader
	Provider catalog.Provider
	Logger   *log.Logger
}

// App is the orchestrator. All state lives behind a single dispatch
// goroutine; there is no locking because there is no concurrent mutation.
// Asynchronous work (fetches, mocked auth delays, saves) runs in spawned
// goroutines that hand their outcome back to the loop as messages.
type App struct {
	sessions *session.Manager
	loader   *loader.Loader
	provider catalog.Provider
	logger   *log.Logger

	messages chan envelope

	// Loop-owned state. Touched only inside Run.
	runCtx      context.Context
	router      *router.Router
	wizard      *wizard.Wizard
	edit        *editform.Form
	ready       bool
	authPending bool
	scrollToTop bool
}

type envelope struct {
	msg  any
	errc chan error
}

// Internal messages posted back into the loop by spawned goroutines.
type (
	restoreResolved struct {
		profile profile.Profile
		ok      bool
	}
	authResolved struct {
		kind    authKind
		profile profile.Profile
		err     error
	}
	fetchResolved struct {
		req      loader.Request
		listings []catalog.Listing
		err      error
	}
	saveResolved struct {
		source saveSource
		err    error
	}
	snapshotRequest struct {
		out chan Snapshot
	}
)

type authKind int

const (
	authLogin authKind = iota
	authRegister
	authFederated
)

type saveSource int

const (
	saveWizard saveSource = iota
	saveEditor
)

// New creates the orchestrator.
func New(cfg Config) (*App, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if cfg.Loader == nil {
		return nil, fmt.Errorf("catalog loader is required")
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("catalog provider is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	a := &App{
		sessions: cfg.Sessions,
		loader:   cfg.Loader,
		provider: cfg.Provider,
		logger:   cfg.Logger,
		messages: make(chan envelope),
	}
	a.router = router.New(func() { a.scrollToTop = true })
	return a, nil
}

// Run starts the dispatch loop and blocks until ctx is done. Startup
// restores any persisted session and issues the first catalog fetch for
// the default category.
func (a *App) Run(ctx context.Context) error {
	a.runCtx = ctx

	go func() {
		restored, ok := a.sessions.Restore(ctx)
		a.post(ctx, restoreResolved{profile: restored, ok: ok})
	}()
	a.issueFetch(a.loader.Select(ctx, catalog.CategoryAll))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-a.messages:
			err := a.handle(env.msg)
			a.enforceViewOwnership()
			if env.errc != nil {
				env.errc <- err
			}
		}
	}
}

// Dispatch hands an intent to the loop and waits for it to be applied.
func (a *App) Dispatch(ctx context.Context, intent Intent) error {
	errc := make(chan error, 1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case a.messages <- envelope{msg: intent, errc: errc}:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errc:
		return err
	}
}

// State returns a consistent snapshot of the whole application state.
func (a *App) State(ctx context.Context) (Snapshot, error) {
	out := make(chan Snapshot, 1)
	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case a.messages <- envelope{msg: snapshotRequest{out: out}}:
	}
	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case snapshot := <-out:
		return snapshot, nil
	}
}

// post delivers an internal message, giving up when the loop has stopped.
func (a *App) post(ctx context.Context, msg any) {
	select {
	case <-ctx.Done():
	case a.messages <- envelope{msg: msg}:
	}
}

func (a *App) handle(msg any) error {
	switch m := msg.(type) {
	case snapshotRequest:
		m.out <- a.snapshot()
		return nil
	case restoreResolved:
		a.ready = true
		if m.ok {
			a.router.SessionRestored()
		}
		return nil
	case authResolved:
		return a.handleAuthResolved(m)
	case fetchResolved:
		a.loader.Resolve(a.runCtx, m.req, m.listings, m.err)
		return nil
	case saveResolved:
		return a.handleSaveResolved(m)
	case Intent:
		return a.handleIntent(m)
	}
	return ErrUnknownIntent
}

func (a *App) handleIntent(intent Intent) error {
	switch m := intent.(type) {
	case SelectCategory:
		if !catalog.ValidCategory(m.Key) {
			return apperrors.New(apperrors.CodeCatalogInvalidCategory, "unknown category: "+m.Key)
		}
		a.issueFetch(a.loader.Select(a.runCtx, m.Key))
		return nil

	case SelectListing:
		listing, ok := a.findListing(m.ID)
		if !ok {
			return apperrors.New(apperrors.CodeNotFound, "unknown listing: "+m.ID)
		}
		a.router.ListingSelected(listing)
		return nil

	case OpenLogin:
		a.router.OpenLogin()
		return nil
	case CloseLogin:
		a.router.CloseLogin()
		return nil

	case SubmitLogin:
		return a.startAuth(authLogin, func(ctx context.Context) (profile.Profile, error) {
			return a.sessions.Login(ctx, m.Email)
		})
	case SubmitRegister:
		return a.startAuth(authRegister, func(ctx context.Context) (profile.Profile, error) {
			return a.sessions.Register(ctx, m.Email, m.Password)
		})
	case SubmitFederatedLogin:
		return a.startAuth(authFederated, a.sessions.FederatedLogin)

	case Logout:
		if err := a.sessions.Logout(a.runCtx); err != nil {
			a.logger.Printf("logout: %v", err)
		}
		a.router.LoggedOut()
		return nil

	case ProfileClicked:
		_, present := a.sessions.Current()
		a.router.ProfileClicked(present)
		return nil

	case OpenEditor:
		current, ok := a.sessions.Current()
		if !ok {
			a.router.OpenLogin()
			return nil
		}
		a.router.EditRequested()
		if a.router.Current() == router.ViewEditProfile && a.edit == nil {
			a.edit = editform.New(current)
		}
		return nil

	case SetEditorField:
		if a.edit == nil {
			return apperrors.New(apperrors.CodeIntentInvalid, "no edit in progress")
		}
		return a.edit.Apply(m.Field, m.Value)

	case SaveEditor:
		if a.edit == nil {
			return apperrors.New(apperrors.CodeIntentInvalid, "no edit in progress")
		}
		draft, err := a.edit.BeginSave()
		if err != nil {
			return err
		}
		go func(ctx context.Context) {
			_, saveErr := a.sessions.UpdateProfile(ctx, draft)
			a.post(ctx, saveResolved{source: saveEditor, err: saveErr})
		}(a.runCtx)
		return nil

	case CancelEditor:
		if a.edit == nil {
			return apperrors.New(apperrors.CodeIntentInvalid, "no edit in progress")
		}
		a.edit = nil
		a.router.EditClosed()
		return nil

	case WizardNext:
		if a.wizard == nil {
			return apperrors.New(apperrors.CodeIntentInvalid, "no onboarding in progress")
		}
		draft, done := a.wizard.Next()
		if !done {
			return nil
		}
		current, ok := a.sessions.Current()
		if !ok {
			return apperrors.New(apperrors.CodeIntentInvalid, "no session to onboard")
		}
		merged := wizard.Merge(current, draft)
		go func(ctx context.Context) {
			_, saveErr := a.sessions.UpdateProfile(ctx, merged)
			a.post(ctx, saveResolved{source: saveWizard, err: saveErr})
		}(a.runCtx)
		return nil

	case WizardBack:
		if a.wizard == nil {
			return apperrors.New(apperrors.CodeIntentInvalid, "no onboarding in progress")
		}
		a.wizard.Back()
		return nil

	case SetWizardField:
		if a.wizard == nil {
			return apperrors.New(apperrors.CodeIntentInvalid, "no onboarding in progress")
		}
		return a.applyWizardField(m.Field, m.Value)

	case ToggleDiscipline:
		if a.wizard == nil {
			return apperrors.New(apperrors.CodeIntentInvalid, "no onboarding in progress")
		}
		a.wizard.ToggleDiscipline(m.Tag)
		return nil

	case Back:
		a.router.BackFromDetails()
		return nil
	case GoHome:
		a.router.HomeClicked()
		return nil
	}
	return ErrUnknownIntent
}

func (a *App) startAuth(kind authKind, op func(context.Context) (profile.Profile, error)) error {
	if a.authPending {
		return apperrors.New(apperrors.CodeIntentInvalid, "an authentication is already in flight")
	}
	a.authPending = true
	go func(ctx context.Context) {
		resolved, err := op(ctx)
		a.post(ctx, authResolved{kind: kind, profile: resolved, err: err})
	}(a.runCtx)
	return nil
}

func (a *App) handleAuthResolved(m authResolved) error {
	a.authPending = false
	if m.err != nil {
		a.logger.Printf("authentication: %v", m.err)
		return nil
	}

	switch m.kind {
	case authLogin:
		a.router.LoggedIn()
	case authRegister:
		a.router.Registered()
		a.wizard = wizard.New(m.profile)
	case authFederated:
		complete := m.profile.Complete()
		a.router.FederatedLoggedIn(complete)
		if !complete {
			a.wizard = wizard.New(m.profile)
		}
	}
	return nil
}

func (a *App) handleSaveResolved(m saveResolved) error {
	if m.err != nil {
		a.logger.Printf("save profile: %v", m.err)
		if m.source == saveEditor {
			a.edit.FinishSave()
		}
		return nil
	}

	switch m.source {
	case saveWizard:
		a.wizard = nil
		a.router.OnboardingCompleted()
	case saveEditor:
		a.edit.FinishSave()
		a.edit = nil
		a.router.EditClosed()
	}
	return nil
}

func (a *App) applyWizardField(field, value string) error {
	switch field {
	case "role":
		role, err := profile.ParseRole(value)
		if err != nil {
			return err
		}
		a.wizard.SetRole(role)
	case "name":
		a.wizard.SetName(value)
	case "handle":
		a.wizard.SetHandle(value)
	case "bio":
		a.wizard.SetBio(value)
	default:
		return apperrors.New(apperrors.CodeIntentInvalid, "unknown onboarding field: "+field)
	}
	return nil
}

func (a *App) issueFetch(req loader.Request) {
	go func(ctx context.Context) {
		listings, err := a.provider.Fetch(ctx, req.Category)
		a.post(ctx, fetchResolved{req: req, listings: listings, err: err})
	}(a.runCtx)
}

func (a *App) findListing(id string) (catalog.Listing, bool) {
	for _, listing := range a.loader.Current().Listings {
		if listing.ID == id {
			return listing.Clone(), true
		}
	}
	if current, ok := a.sessions.Current(); ok {
		for _, listing := range catalog.OwnedListings(current.ID) {
			if listing.ID == id {
				return listing, true
			}
		}
	}
	return catalog.Listing{}, false
}

// enforceViewOwnership drops flow state whose owning view is gone. A
// wizard exists only while onboarding shows; an edit form only while the
// editor shows.
func (a *App) enforceViewOwnership() {
	switch a.router.Current() {
	case router.ViewOnboarding:
		if a.wizard == nil {
			if current, ok := a.sessions.Current(); ok {
				a.wizard = wizard.New(current)
			}
		}
	case router.ViewEditProfile:
	default:
		if a.edit != nil && !a.edit.Saving() {
			a.edit = nil
		}
	}
	if a.router.Current() != router.ViewOnboarding {
		a.wizard = nil
	}
}

func (a *App) snapshot() Snapshot {
	state := a.loader.Current()
	snapshot := Snapshot{
		Ready:            a.ready,
		View:             a.router.Current(),
		LoginOverlay:     a.router.LoginOverlayOpen(),
		AuthPending:      a.authPending,
		ScrollToTop:      a.scrollToTop,
		Categories:       catalog.Categories(),
		SelectedCategory: a.loader.Selected(),
		Listings:         append([]catalog.Listing(nil), state.Listings...),
		CatalogLoading:   state.Loading,
		BioRemaining:     profile.BioSoftCap,
	}
	a.scrollToTop = false

	if current, ok := a.sessions.Current(); ok {
		snapshot.Session = &current
		snapshot.OwnedListings = catalog.OwnedListings(current.ID)
	}
	if selected, ok := a.router.SelectedListing(); ok {
		snapshot.SelectedListing = &selected
	}
	if a.wizard != nil {
		draft := a.wizard.Draft()
		snapshot.WizardStep = a.wizard.Step()
		snapshot.WizardDraft = &draft
	}
	if a.edit != nil {
		draft := a.edit.Draft()
		snapshot.EditDraft = &draft
		snapshot.EditSaving = a.edit.Saving()
		snapshot.BioRemaining = a.edit.BioRemaining()
	}
	return snapshot
}
