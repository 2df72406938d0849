package editform

import (
	"errors"
	"strings"
	"testing"

	"github.com/caoslabs/caos/internal/profile"
)

func baseProfile() profile.Profile {
	return profile.Profile{
		ID:          "p1",
		Email:       "a@b.com",
		Name:        "a",
		Handle:      "@a",
		Role:        profile.RoleArtist,
		Bio:         "old bio",
		Location:    "São Paulo, SP",
		Disciplines: []string{"Techno"},
	}
}

func TestDraftStartsAsCopy(t *testing.T) {
	base := baseProfile()
	form := New(base)

	form.SetName("changed")
	form.SetBio("new bio")

	if base.Name != "a" || base.Bio != "old bio" {
		t.Fatal("mutating the draft changed the source profile")
	}
	draft := form.Draft()
	if draft.Name != "changed" || draft.Bio != "new bio" {
		t.Fatalf("Draft() = %q/%q, want changed/new bio", draft.Name, draft.Bio)
	}
	if draft.Role != profile.RoleArtist {
		t.Fatalf("Draft() role = %q, want %q", draft.Role, profile.RoleArtist)
	}
}

func TestApplyRoutesFields(t *testing.T) {
	form := New(baseProfile())

	fields := map[string]string{
		FieldName:      "X",
		FieldHandle:    "@x",
		FieldBio:       "Y",
		FieldLocation:  "Rio de Janeiro, RJ",
		FieldAvatarURL: "https://example.com/a.png",
		FieldCoverURL:  "https://example.com/c.png",
	}
	for field, value := range fields {
		if err := form.Apply(field, value); err != nil {
			t.Fatalf("Apply(%q) error = %v", field, err)
		}
	}

	draft := form.Draft()
	if draft.Name != "X" || draft.Handle != "@x" || draft.Bio != "Y" {
		t.Fatalf("Draft() = %+v, want applied fields", draft)
	}
	if draft.Location != "Rio de Janeiro, RJ" {
		t.Fatalf("Draft() location = %q", draft.Location)
	}
	if draft.AvatarURL != "https://example.com/a.png" || draft.CoverURL != "https://example.com/c.png" {
		t.Fatalf("Draft() urls = %q/%q", draft.AvatarURL, draft.CoverURL)
	}
}

func TestApplyUnknownField(t *testing.T) {
	form := New(baseProfile())

	err := form.Apply("role", "ARTIST")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Apply() error = %v, want %v", err, ErrUnknownField)
	}
}

func TestBeginSaveGuardsReentry(t *testing.T) {
	form := New(baseProfile())
	form.SetBio("first")

	draft, err := form.BeginSave()
	if err != nil {
		t.Fatalf("BeginSave() error = %v", err)
	}
	if draft.Bio != "first" {
		t.Fatalf("BeginSave() bio = %q, want %q", draft.Bio, "first")
	}
	if !form.Saving() {
		t.Fatal("Saving() = false after BeginSave()")
	}

	if _, err := form.BeginSave(); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("BeginSave() error = %v, want %v", err, ErrSaveInFlight)
	}

	form.FinishSave()
	if form.Saving() {
		t.Fatal("Saving() = true after FinishSave()")
	}
	if _, err := form.BeginSave(); err != nil {
		t.Fatalf("BeginSave() after FinishSave() error = %v", err)
	}
}

func TestBeginSaveSnapshotIsDetached(t *testing.T) {
	form := New(baseProfile())

	snapshot, err := form.BeginSave()
	if err != nil {
		t.Fatalf("BeginSave() error = %v", err)
	}
	form.FinishSave()
	form.SetBio("edited after snapshot")

	if snapshot.Bio != "old bio" {
		t.Fatalf("snapshot bio = %q, want %q", snapshot.Bio, "old bio")
	}
}

func TestBioRemaining(t *testing.T) {
	form := New(profile.Profile{})

	if got := form.BioRemaining(); got != profile.BioSoftCap {
		t.Fatalf("BioRemaining() = %d, want %d", got, profile.BioSoftCap)
	}

	form.SetBio(strings.Repeat("a", profile.BioSoftCap+10))
	if got := form.BioRemaining(); got != -10 {
		t.Fatalf("BioRemaining() = %d, want -10", got)
	}
}

func TestNilFormIsInert(t *testing.T) {
	var form *Form

	form.SetName("x")
	form.FinishSave()
	if form.Saving() {
		t.Fatal("Saving() = true on nil form")
	}
	if _, err := form.BeginSave(); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("BeginSave() error = %v, want %v", err, ErrSaveInFlight)
	}
	if err := form.Apply(FieldName, "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Apply() error = %v, want %v", err, ErrUnknownField)
	}
}
