package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

type sample struct {
	SessionID   string `json:"sessionId" validate:"required,uuid4"`
	PerformedBy string `json:"performedBy" validate:"omitempty,turnrole"`
	Limit       int    `query:"limit" validate:"gte=0"`
}

func TestCustomValidator_Valid(t *testing.T) {
	v := NewCustomValidator()
	err := v.Validate(&sample{SessionID: "0f8fad5b-d9cb-469f-a165-70867728950e", PerformedBy: "student"})
	assert.NoError(t, err)
}

func TestCustomValidator_ReportsJSONFieldNames(t *testing.T) {
	v := NewCustomValidator()
	err := v.Validate(&sample{SessionID: "bad", PerformedBy: "coach", Limit: -1})
	require.Error(t, err)

	appErr := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
	require.Len(t, appErr.Details, 3)
	assert.Equal(t, "sessionId", appErr.Details[0].Field)
	assert.Equal(t, "INVALID_IDENTIFIER", appErr.Details[0].Code)
	assert.Equal(t, "performedBy", appErr.Details[1].Field)
	assert.Equal(t, "INVALID_TURN_ROLE", appErr.Details[1].Code)
	assert.Equal(t, "limit", appErr.Details[2].Field)
}
