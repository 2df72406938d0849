package app

// Intent is one user interaction emitted by the render surface. Intents
// carry input only; the orchestrator owns all resulting state changes.
type Intent interface {
	intentName() string
}

// SelectCategory switches the visible catalog category and issues a fetch.
type SelectCategory struct {
	Key string
}

// SelectListing opens the details view for a listing in the visible
// category.
type SelectListing struct {
	ID string
}

// OpenLogin shows the login overlay.
type OpenLogin struct{}

// CloseLogin hides the login overlay.
type CloseLogin struct{}

// SubmitLogin starts the mocked email login.
type SubmitLogin struct {
	Email string
}

// SubmitRegister starts the mocked account registration.
type SubmitRegister struct {
	Email    string
	Password string
}

// SubmitFederatedLogin starts the mocked federated login.
type SubmitFederatedLogin struct{}

// Logout ends the resident session.
type Logout struct{}

// ProfileClicked asks for the profile view, or the login overlay when no
// session is resident.
type ProfileClicked struct{}

// OpenEditor enters the profile edit form.
type OpenEditor struct{}

// SetEditorField mutates one draft field of the open edit form.
type SetEditorField struct {
	Field string
	Value string
}

// SaveEditor starts the asynchronous save of the edit draft.
type SaveEditor struct{}

// CancelEditor discards the edit draft.
type CancelEditor struct{}

// WizardNext advances the onboarding wizard, completing it on the last
// step.
type WizardNext struct{}

// WizardBack returns the onboarding wizard to the previous step.
type WizardBack struct{}

// SetWizardField mutates one field of the onboarding draft. Field is one
// of "role", "name", "handle", "bio".
type SetWizardField struct {
	Field string
	Value string
}

// ToggleDiscipline toggles one discipline tag on the onboarding draft.
type ToggleDiscipline struct {
	Tag string
}

// Back leaves the listing details view.
type Back struct{}

// GoHome returns to the home view.
type GoHome struct{}

func (SelectCategory) intentName() string       { return "selectCategory" }
func (SelectListing) intentName() string        { return "selectListing" }
func (OpenLogin) intentName() string            { return "openLogin" }
func (CloseLogin) intentName() string           { return "closeLogin" }
func (SubmitLogin) intentName() string          { return "submitLogin" }
func (SubmitRegister) intentName() string       { return "submitRegister" }
func (SubmitFederatedLogin) intentName() string { return "submitFederatedLogin" }
func (Logout) intentName() string               { return "logout" }
func (ProfileClicked) intentName() string       { return "profileClicked" }
func (OpenEditor) intentName() string           { return "openEditor" }
func (SetEditorField) intentName() string       { return "setEditorField" }
func (SaveEditor) intentName() string           { return "saveEditor" }
func (CancelEditor) intentName() string         { return "cancelEditor" }
func (WizardNext) intentName() string           { return "wizardNext" }
func (WizardBack) intentName() string           { return "wizardBack" }
func (SetWizardField) intentName() string       { return "setWizardField" }
func (ToggleDiscipline) intentName() string     { return "toggleDiscipline" }
func (Back) intentName() string                 { return "back" }
func (GoHome) intentName() string               { return "goHome" }
