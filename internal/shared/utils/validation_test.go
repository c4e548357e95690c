package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"

	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

type signupBody struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
}

func TestUsernameRule(t *testing.T) {
	RegisterValidators()

	assert.NoError(t, binding.Validator.ValidateStruct(&signupBody{Username: "ana.reyes", Email: "ana@example.com"}))

	for _, bad := range []string{"ab", "-ana", "ana reyes", "ana<script>"} {
		err := binding.Validator.ValidateStruct(&signupBody{Username: bad, Email: "ana@example.com"})
		if assert.Error(t, err, bad) {
			appErr := errors.GetAppError(BindingError(err))
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
			assert.Contains(t, appErr.Details, "username must be")
		}
	}
}

func TestBindingError_FieldNamesFromJSONTags(t *testing.T) {
	RegisterValidators()

	err := binding.Validator.ValidateStruct(&signupBody{Username: "ana"})
	appErr := errors.GetAppError(BindingError(err))
	assert.Equal(t, "email is required", appErr.Details)
}
