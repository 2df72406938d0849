// Package wizard implements the four-step onboarding flow that turns a
// fresh account into a complete profile.
package wizard

import (
	"github.com/caoslabs/caos/internal/profile"
)

// Step identifies one onboarding screen.
type Step int

const (
	// StepRole picks how the profile participates in the platform.
	StepRole Step = iota
	// StepIdentity collects display name and handle.
	StepIdentity
	// StepBio collects the short bio.
	StepBio
	// StepDisciplines picks up to three discipline tags.
	StepDisciplines

	stepCount
)

// String names the step for logging.
func (s Step) String() string {
	switch s {
	case StepRole:
		return "role"
	case StepIdentity:
		return "identity"
	case StepBio:
		return "bio"
	case StepDisciplines:
		return "disciplines"
	}
	return "unknown"
}

// DisciplineTags lists the selectable discipline tags, in display order.
func DisciplineTags() []string {
	return []string{
		"Visual Arts", "Techno", "Performance", "Photography", "Theater",
		"Cinema", "Design", "Fashion", "Literature", "Code Art",
	}
}

// Draft holds the not-yet-committed onboarding answers. Empty name or
// handle pass through without validation, matching the lenient flow.
type Draft struct {
	Role        profile.Role `json:"role"`
	Name        string       `json:"name"`
	Handle      string       `json:"handle"`
	Bio         string       `json:"bio"`
	Disciplines []string     `json:"disciplines"`
}

// Wizard steps a draft through the fixed onboarding sequence.
type Wizard struct {
	step  Step
	draft Draft
}

// New starts the wizard seeded from the freshly created profile, so the
// identity step opens pre-filled.
func New(current profile.Profile) *Wizard {
	return &Wizard{
		draft: Draft{
			Role:        profile.RoleVisitor,
			Name:        current.Name,
			Handle:      current.Handle,
			Disciplines: []string{},
		},
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	if w == nil {
		return StepRole
	}
	return w.step
}

// Draft returns a copy of the in-progress answers.
func (w *Wizard) Draft() Draft {
	if w == nil {
		return Draft{}
	}
	draft := w.draft
	draft.Disciplines = append([]string(nil), w.draft.Disciplines...)
	return draft
}

// SetRole records the role choice.
func (w *Wizard) SetRole(role profile.Role) {
	if w == nil || !role.Valid() {
		return
	}
	w.draft.Role = role
}

// SetName records the display name.
func (w *Wizard) SetName(name string) {
	if w == nil {
		return
	}
	w.draft.Name = name
}

// SetHandle records the handle.
func (w *Wizard) SetHandle(handle string) {
	if w == nil {
		return
	}
	w.draft.Handle = handle
}

// SetBio records the bio.
func (w *Wizard) SetBio(bio string) {
	if w == nil {
		return
	}
	w.draft.Bio = bio
}

// ToggleDiscipline adds the tag when absent and under the cap, removes it
// when present. At the cap an absent tag is silently ignored.
func (w *Wizard) ToggleDiscipline(tag string) {
	if w == nil {
		return
	}
	for i, existing := range w.draft.Disciplines {
		if existing == tag {
			w.draft.Disciplines = append(w.draft.Disciplines[:i], w.draft.Disciplines[i+1:]...)
			return
		}
	}
	if len(w.draft.Disciplines) >= profile.MaxDisciplines {
		return
	}
	w.draft.Disciplines = append(w.draft.Disciplines, tag)
}

// Next advances to the following step. On the last step it instead emits
// the finished draft, reported by done.
func (w *Wizard) Next() (draft Draft, done bool) {
	if w == nil {
		return Draft{}, false
	}
	if w.step == stepCount-1 {
		return w.Draft(), true
	}
	w.step++
	return Draft{}, false
}

// Back returns to the previous step, flooring at the first.
func (w *Wizard) Back() {
	if w == nil || w.step == 0 {
		return
	}
	w.step--
}

// Merge applies the finished draft onto the base profile, leaving every
// untouched field as it was.
func Merge(base profile.Profile, draft Draft) profile.Profile {
	merged := base.Clone()
	merged.Role = draft.Role
	merged.Name = draft.Name
	merged.Handle = draft.Handle
	merged.Bio = draft.Bio
	merged.Disciplines = append([]string(nil), draft.Disciplines...)
	return merged
}
