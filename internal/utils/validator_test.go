// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	ProductID string `validate:"required,objectid"`
	Role      string `validate:"omitempty,role"`
}

func TestValidateObjectID(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sampleRequest{ProductID: "64b0c8a19f1d2e3a4b5c6d7e"}))
	assert.Error(t, ValidateStruct(&sampleRequest{ProductID: "not-an-object-id"}))
	assert.Error(t, ValidateStruct(&sampleRequest{ProductID: ""}))
}

func TestValidateRole(t *testing.T) {
	for _, role := range []string{"buyer", "seller", "admin"} {
		assert.NoError(t, ValidateStruct(&sampleRequest{ProductID: "64b0c8a19f1d2e3a4b5c6d7e", Role: role}))
	}
	assert.Error(t, ValidateStruct(&sampleRequest{ProductID: "64b0c8a19f1d2e3a4b5c6d7e", Role: "superuser"}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&sampleRequest{ProductID: "bad"})
	errors := GetValidationErrors(err)
	assert.Len(t, errors, 1)
	assert.Equal(t, "ProductID", errors[0].Field)
	assert.Equal(t, "objectid", errors[0].Tag)

	assert.Nil(t, GetValidationErrors(nil))
}
