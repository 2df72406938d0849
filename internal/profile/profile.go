// Package profile models CAOS identity and social records.
package profile

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/caoslabs/caos/internal/platform/errors"
	"github.com/caoslabs/caos/internal/platform/id"
)

const (
	// MaxDisciplines caps the discipline tag selection, enforced at the
	// edit boundary rather than in the data type.
	MaxDisciplines = 3
	// BioSoftCap is the display-only bio length guideline. It is never
	// enforced when persisting.
	BioSoftCap = 240

	defaultLocation = "São Paulo, SP"
)

// ErrInvalidRole indicates an unrecognized role value.
var ErrInvalidRole = apperrors.New(apperrors.CodeProfileInvalidRole, "role must be ARTIST, ORGANIZER, or VISITOR")

// Role classifies how a profile participates in the platform.
type Role string

const (
	// RoleArtist marks a creator profile.
	RoleArtist Role = "ARTIST"
	// RoleOrganizer marks a space or event organizer profile.
	RoleOrganizer Role = "ORGANIZER"
	// RoleVisitor marks an audience profile, the default before onboarding.
	RoleVisitor Role = "VISITOR"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleArtist, RoleOrganizer, RoleVisitor:
		return true
	}
	return false
}

// ParseRole canonicalizes a role string.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Stats holds read-only social counters for a profile.
type Stats struct {
	Followers       int `json:"followers"`
	Following       int `json:"following"`
	EventsAttended  int `json:"eventsAttended"`
	ProjectsCreated int `json:"projectsCreated"`
}

// Profile is the identity and social record for one user.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Handle      string    `json:"handle"`
	Role        Role      `json:"role"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	AvatarURL   string    `json:"avatarUrl"`
	CoverURL    string    `json:"coverUrl"`
	Disciplines []string  `json:"disciplines"`
	Stats       Stats     `json:"stats"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// Complete reports whether the profile finished onboarding. An empty bio is
// the conventional signal for a freshly created account.
func (p Profile) Complete() bool {
	return strings.TrimSpace(p.Bio) != ""
}

// Clone returns a copy that shares no mutable state with the receiver.
func (p Profile) Clone() Profile {
	next := p
	if p.Disciplines != nil {
		next.Disciplines = append([]string(nil), p.Disciplines...)
	}
	return next
}

// LocalPart returns the mailbox portion of an email address.
func LocalPart(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

// NewFromEmail creates a fresh registered profile. Name and handle derive
// from the email local part; the bio starts empty so the account routes
// through onboarding.
func NewFromEmail(email string, now func() time.Time, idGenerator func() (string, error)) (Profile, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	email = strings.TrimSpace(email)
	profileID, err := idGenerator()
	if err != nil {
		return Profile{}, fmt.Errorf("generate profile id: %w", err)
	}

	local := LocalPart(email)
	return Profile{
		ID:          profileID,
		Email:       email,
		Name:        local,
		Handle:      "@" + local,
		Role:        RoleVisitor,
		Bio:         "",
		Location:    defaultLocation,
		AvatarURL:   "https://picsum.photos/seed/" + profileID + "/200/200",
		CoverURL:    "https://picsum.photos/seed/cover_new/1200/400",
		Disciplines: []string{},
		Stats:       Stats{},
		JoinedAt:    now().UTC(),
	}, nil
}

// DemoVisitor synthesizes the fallback profile returned when a login email
// matches no persisted session. It is never persisted.
func DemoVisitor(email string, now func() time.Time) Profile {
	if now == nil {
		now = time.Now
	}
	return Profile{
		ID:          "u_demo",
		Email:       strings.TrimSpace(email),
		Name:        "Usuário Demo",
		Handle:      "@demo_user",
		Role:        RoleVisitor,
		Bio:         "Entusiasta da cultura underground.",
		Location:    defaultLocation,
		AvatarURL:   "https://picsum.photos/seed/demo_av/200/200",
		CoverURL:    "https://picsum.photos/seed/demo_cov/1200/400",
		Disciplines: []string{},
		Stats:       Stats{},
		JoinedAt:    now().UTC(),
	}
}

// FederatedIdentity returns the fixed identity produced by the mocked
// federated login. The empty bio deliberately routes it into onboarding.
func FederatedIdentity(now func() time.Time) Profile {
	if now == nil {
		now = time.Now
	}
	return Profile{
		ID:          "u_federated_123",
		Email:       "art.lover@gmail.com",
		Name:        "Alex G.",
		Handle:      "@alex_g",
		Role:        RoleVisitor,
		Bio:         "",
		Location:    "Rio de Janeiro, RJ",
		AvatarURL:   "https://picsum.photos/seed/federated_av/200/200",
		CoverURL:    "https://picsum.photos/seed/federated_bg/1200/400",
		Disciplines: []string{},
		Stats:       Stats{},
		JoinedAt:    now().UTC(),
	}
}
