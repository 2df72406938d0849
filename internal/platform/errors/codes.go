package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Profile errors
	CodeProfileInvalidRole Code = "PROFILE_INVALID_ROLE"

	// Catalog errors
	CodeCatalogInvalidCategory Code = "CATALOG_INVALID_CATEGORY"
	CodeCatalogInvalidKind     Code = "CATALOG_INVALID_KIND"
	CodeCatalogProviderFailure Code = "CATALOG_PROVIDER_FAILURE"

	// Edit form errors
	CodeEditSaveInFlight Code = "EDIT_SAVE_IN_FLIGHT"
	CodeEditUnknownField Code = "EDIT_UNKNOWN_FIELD"

	// Intent errors
	CodeIntentUnknown Code = "INTENT_UNKNOWN"
	CodeIntentInvalid Code = "INTENT_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
