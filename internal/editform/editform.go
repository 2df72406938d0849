// Package editform holds the in-progress profile edit draft and the save
// re-entry guard.
package editform

import (
	apperrors "github.com/caoslabs/caos/internal/platform/errors"
	"github.com/caoslabs/caos/internal/profile"
)

// ErrSaveInFlight indicates a save was requested while an earlier one has
// not resolved yet. Allowing it through could persist an older draft over
// a newer session state.
var ErrSaveInFlight = apperrors.New(apperrors.CodeEditSaveInFlight, "a save is already in flight")

// ErrUnknownField indicates an Apply call named a field the form does not
// edit.
var ErrUnknownField = apperrors.New(apperrors.CodeEditUnknownField, "unknown editable field")

// Editable field names accepted by Apply.
const (
	FieldName      = "name"
	FieldHandle    = "handle"
	FieldBio       = "bio"
	FieldLocation  = "location"
	FieldAvatarURL = "avatarUrl"
	FieldCoverURL  = "coverUrl"
)

// Form owns a full draft copy of the profile under edit. Mutations touch
// only the draft until a save resolves.
type Form struct {
	draft  profile.Profile
	saving bool
}

// New opens an edit form over a copy of the provided profile.
func New(current profile.Profile) *Form {
	return &Form{draft: current.Clone()}
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() profile.Profile {
	if f == nil {
		return profile.Profile{}
	}
	return f.draft.Clone()
}

// Saving reports whether a save is in flight.
func (f *Form) Saving() bool {
	return f != nil && f.saving
}

// SetName updates the draft display name.
func (f *Form) SetName(name string) {
	if f == nil {
		return
	}
	f.draft.Name = name
}

// SetHandle updates the draft handle.
func (f *Form) SetHandle(handle string) {
	if f == nil {
		return
	}
	f.draft.Handle = handle
}

// SetBio updates the draft bio. The length cap is display guidance only
// and is not enforced here.
func (f *Form) SetBio(bio string) {
	if f == nil {
		return
	}
	f.draft.Bio = bio
}

// SetLocation updates the draft location.
func (f *Form) SetLocation(location string) {
	if f == nil {
		return
	}
	f.draft.Location = location
}

// SetAvatarURL updates the draft avatar image URL.
func (f *Form) SetAvatarURL(url string) {
	if f == nil {
		return
	}
	f.draft.AvatarURL = url
}

// SetCoverURL updates the draft cover image URL.
func (f *Form) SetCoverURL(url string) {
	if f == nil {
		return
	}
	f.draft.CoverURL = url
}

// Apply routes a named field mutation to its setter, for callers that
// receive field names over the wire.
func (f *Form) Apply(field, value string) error {
	if f == nil {
		return ErrUnknownField
	}
	switch field {
	case FieldName:
		f.SetName(value)
	case FieldHandle:
		f.SetHandle(value)
	case FieldBio:
		f.SetBio(value)
	case FieldLocation:
		f.SetLocation(value)
	case FieldAvatarURL:
		f.SetAvatarURL(value)
	case FieldCoverURL:
		f.SetCoverURL(value)
	default:
		return apperrors.New(apperrors.CodeEditUnknownField, "unknown editable field: "+field)
	}
	return nil
}

// BioRemaining reports how many characters remain under the soft cap. It
// goes negative when the draft exceeds it.
func (f *Form) BioRemaining() int {
	if f == nil {
		return profile.BioSoftCap
	}
	return profile.BioSoftCap - len([]rune(f.draft.Bio))
}

// BeginSave snapshots the draft for persistence and arms the re-entry
// guard. A second call before FinishSave fails with ErrSaveInFlight.
func (f *Form) BeginSave() (profile.Profile, error) {
	if f == nil {
		return profile.Profile{}, ErrSaveInFlight
	}
	if f.saving {
		return profile.Profile{}, ErrSaveInFlight
	}
	f.saving = true
	return f.draft.Clone(), nil
}

// FinishSave disarms the re-entry guard once the pending save resolved,
// successfully or not.
func (f *Form) FinishSave() {
	if f == nil {
		return
	}
	f.saving = false
}
