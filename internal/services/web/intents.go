package web

import (
	"github.com/gin-gonic/gin"

	"github.com/caoslabs/caos/internal/app"
	apperrors "github.com/caoslabs/caos/internal/platform/errors"
)

// intentPayload is the superset body accepted by the intent endpoint;
// each intent reads only the fields it needs.
type intentPayload struct {
	Key      string `json:"key"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Field    string `json:"field"`
	Value    string `json:"value"`
	Tag      string `json:"tag"`
}

func parseIntent(c *gin.Context) (app.Intent, error) {
	var payload intentPayload
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeIntentInvalid, "decode intent payload", err)
		}
	}

	name := c.Param("name")
	switch name {
	case "selectCategory":
		return app.SelectCategory{Key: payload.Key}, nil
	case "selectListing":
		return app.SelectListing{ID: payload.ID}, nil
	case "openLogin":
		return app.OpenLogin{}, nil
	case "closeLogin":
		return app.CloseLogin{}, nil
	case "submitLogin":
		return app.SubmitLogin{Email: payload.Email}, nil
	case "submitRegister":
		return app.SubmitRegister{Email: payload.Email, Password: payload.Password}, nil
	case "submitFederatedLogin":
		return app.SubmitFederatedLogin{}, nil
	case "logout":
		return app.Logout{}, nil
	case "profileClicked":
		return app.ProfileClicked{}, nil
	case "openEditor":
		return app.OpenEditor{}, nil
	case "setEditorField":
		return app.SetEditorField{Field: payload.Field, Value: payload.Value}, nil
	case "saveEditor":
		return app.SaveEditor{}, nil
	case "cancelEditor":
		return app.CancelEditor{}, nil
	case "wizardNext":
		return app.WizardNext{}, nil
	case "wizardBack":
		return app.WizardBack{}, nil
	case "setWizardField":
		return app.SetWizardField{Field: payload.Field, Value: payload.Value}, nil
	case "toggleDiscipline":
		return app.ToggleDiscipline{Tag: payload.Tag}, nil
	case "back":
		return app.Back{}, nil
	case "goHome":
		return app.GoHome{}, nil
	}
	return nil, apperrors.New(apperrors.CodeIntentUnknown, "unknown intent: "+name)
}
