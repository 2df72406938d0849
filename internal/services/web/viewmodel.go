package web

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/caoslabs/caos/internal/app"
	"github.com/caoslabs/caos/internal/catalog"
	apperrors "github.com/caoslabs/caos/internal/platform/errors"
	"github.com/caoslabs/caos/internal/platform/i18n"
	"github.com/caoslabs/caos/internal/profile"
	"github.com/caoslabs/caos/internal/wizard"
)

// StateView is the JSON shape handed to the browser.
type StateView struct {
	Ready        bool   `json:"ready"`
	View         string `json:"view"`
	LoginOverlay bool   `json:"loginOverlay"`
	AuthPending  bool   `json:"authPending"`
	ScrollToTop  bool   `json:"scrollToTop"`

	Session *SessionView `json:"session,omitempty"`
	Catalog CatalogView  `json:"catalog"`
	Wizard  *WizardView  `json:"wizard,omitempty"`
	Edit    *EditView    `json:"edit,omitempty"`

	SelectedListing *catalog.Listing  `json:"selectedListing,omitempty"`
	OwnedListings   []catalog.Listing `json:"ownedListings,omitempty"`
}

// SessionView is the resident profile plus its localized derivations.
type SessionView struct {
	profile.Profile
	JoinedLabel string `json:"joinedLabel"`
}

// CatalogView is the visible catalog slice.
type CatalogView struct {
	Categories []catalog.Category `json:"categories"`
	Selected   string             `json:"selected"`
	Listings   []catalog.Listing  `json:"listings"`
	IsLoading  bool               `json:"isLoading"`
}

// WizardView is the in-progress onboarding state.
type WizardView struct {
	Step           string       `json:"step"`
	Draft          wizard.Draft `json:"draft"`
	DisciplineTags []string     `json:"disciplineTags"`
}

// EditView is the in-progress profile edit state.
type EditView struct {
	Draft        profile.Profile `json:"draft"`
	Saving       bool            `json:"saving"`
	BioRemaining int             `json:"bioRemaining"`
}

func buildStateView(snapshot app.Snapshot, locale language.Tag) StateView {
	view := StateView{
		Ready:        snapshot.Ready,
		View:         string(snapshot.View),
		LoginOverlay: snapshot.LoginOverlay,
		AuthPending:  snapshot.AuthPending,
		ScrollToTop:  snapshot.ScrollToTop,
		Catalog: CatalogView{
			Categories: snapshot.Categories,
			Selected:   snapshot.SelectedCategory,
			Listings:   snapshot.Listings,
			IsLoading:  snapshot.CatalogLoading,
		},
		SelectedListing: snapshot.SelectedListing,
		OwnedListings:   snapshot.OwnedListings,
	}
	if view.Catalog.Listings == nil {
		view.Catalog.Listings = []catalog.Listing{}
	}

	if snapshot.Session != nil {
		view.Session = &SessionView{
			Profile:     *snapshot.Session,
			JoinedLabel: i18n.JoinLabel(snapshot.Session.JoinedAt, locale),
		}
	}
	if snapshot.WizardDraft != nil {
		view.Wizard = &WizardView{
			Step:           snapshot.WizardStep.String(),
			Draft:          *snapshot.WizardDraft,
			DisciplineTags: wizard.DisciplineTags(),
		}
	}
	if snapshot.EditDraft != nil {
		view.Edit = &EditView{
			Draft:        *snapshot.EditDraft,
			Saving:       snapshot.EditSaving,
			BioRemaining: snapshot.BioRemaining,
		}
	}
	return view
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
