package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlayerName(t *testing.T) {
	type req struct {
		Name string `json:"name" validate:"playername"`
	}
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(req{Name: "Core Crusher"}))
	assert.NoError(t, v.ValidateStruct(req{Name: ""}))

	err := v.ValidateStruct(req{Name: "ab"})
	if assert.Error(t, err) {
		assert.Equal(t, map[string]string{"name": ValidationMsgPlayerName}, FormatValidationError(err))
	}
	assert.Error(t, v.ValidateStruct(req{Name: "semi;colon"}))
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	assert.Equal(t, map[string]string{"error": ValidationMsgFormat}, FormatValidationError(assert.AnError))
	assert.Nil(t, FormatValidationError(nil))
}
