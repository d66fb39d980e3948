package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareline/shipping-svc/internal/service/errs"
)

func strPtr(s string) *string {
	return &s
}

func validPayload() *Payload {
	return &Payload{
		Name:      strPtr("John"),
		Surname:   strPtr("Doe"),
		Street:    strPtr("Palm street 25-7"),
		State:     strPtr("California"),
		Zip:       strPtr("60744"),
		Country:   strPtr("US"),
		Phone:     strPtr("+1 123 123 123"),
		IsExpress: true,
	}
}

func TestValidateEmptyPayload(t *testing.T) {
	v := NewValidator(nil)

	err := v.Validate(&Payload{})
	require.Error(t, err)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)

	assert.Len(t, validationErr.Fields, len(RequiredFields))
	for _, field := range RequiredFields {
		assert.Equal(t, []string{"'" + field + "'" + MissingFieldSuffix}, validationErr.Fields[field])
	}
}

func TestValidateFullPayload(t *testing.T) {
	v := NewValidator(nil)

	assert.NoError(t, v.Validate(validPayload()))
}

func TestValidatePartialPayload(t *testing.T) {
	v := NewValidator(nil)

	p := validPayload()
	p.Phone = nil
	p.IsExpress = nil

	err := v.Validate(p)
	require.Error(t, err)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 2)
	assert.Contains(t, validationErr.Fields, FieldPhone)
	assert.Contains(t, validationErr.Fields, FieldIsExpress)
}

func TestValidateRejectsBadFormats(t *testing.T) {
	v := NewValidator(nil)

	p := validPayload()
	p.Name = strPtr("1234")
	p.Phone = strPtr("call me")

	err := v.Validate(p)
	require.Error(t, err)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 2)
	assert.Equal(t, []string{"'" + FieldName + "'" + InvalidFieldSuffix}, validationErr.Fields[FieldName])
	assert.Equal(t, []string{"'" + FieldPhone + "'" + InvalidFieldSuffix}, validationErr.Fields[FieldPhone])
}

func TestValidateAggregatesMissingAndInvalid(t *testing.T) {
	v := NewValidator(nil)

	p := validPayload()
	p.Surname = nil
	p.Country = strPtr("United States")

	err := v.Validate(p)
	require.Error(t, err)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"'" + FieldSurname + "'" + MissingFieldSuffix}, validationErr.Fields[FieldSurname])
	assert.Equal(t, []string{"'" + FieldCountry + "'" + InvalidFieldSuffix}, validationErr.Fields[FieldCountry])
}

func TestHasRequiredKeysNilWhenComplete(t *testing.T) {
	v := NewValidator(nil)

	assert.Nil(t, v.HasRequiredKeys(validPayload()))
}

func TestIsAddressValid(t *testing.T) {
	v := NewValidator(nil)

	assert.True(t, v.IsAddressValid(validPayload()))

	p := validPayload()
	p.Country = strPtr("USA")
	assert.False(t, v.IsAddressValid(p), "country must be a two-letter code")

	p = validPayload()
	p.Phone = strPtr("call me")
	assert.False(t, v.IsAddressValid(p))
}

func TestIsAddressValidSkipsAbsentFields(t *testing.T) {
	v := NewValidator(nil)

	p := validPayload()
	p.State = nil
	p.Zip = nil
	assert.True(t, v.IsAddressValid(p))
}
