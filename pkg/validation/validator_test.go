package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressInput struct {
	City string `json:"city" binding:"required"`
}

type personInput struct {
	Age      int          `json:"age" binding:"required,min=1"`
	Email    string       `json:"email" binding:"required,email"`
	Secret   string       `json:"secret" binding:"omitempty,maxbytes=8"`
	Price    *float64     `json:"price" binding:"required,gte=0"`
	Tags     []string     `json:"tags" binding:"required,dive,required"`
	Address  addressInput `json:"address"`
	Quantity int          `json:"quantity"`
}

func validPerson() personInput {
	price := 0.0
	return personInput{Age: 1, Email: "a@b.co", Price: &price, Tags: []string{"x"}, Address: addressInput{City: "c"}}
}

func validate(t *testing.T, v any) error {
	t.Helper()
	Init()
	return New(binding.Validator.ValidateStruct(v))
}

func TestValid(t *testing.T) {
	assert.NoError(t, validate(t, validPerson()))
}

func TestFirstViolation(t *testing.T) {
	p := validPerson()
	p.Age = 0
	p.Email = "bad"
	err := validate(t, p)
	require.Error(t, err)

	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Validation failed: age is required", err.Error())
}

func TestInvalidEmail(t *testing.T) {
	p := validPerson()
	p.Email = "not-an-email"
	err := validate(t, p)
	require.Error(t, err)
	assert.Equal(t, "Validation failed: email must be a valid email", err.Error())
}

func TestNestedAndDivePaths(t *testing.T) {
	p := validPerson()
	p.Tags = []string{"ok", ""}
	assert.Equal(t, "Validation failed: tags[1] is required and must not be empty", validate(t, p).Error())

	p = validPerson()
	p.Address.City = ""
	assert.Equal(t, "Validation failed: address.city is required and must not be empty", validate(t, p).Error())

	p = validPerson()
	negative := -1.0
	p.Price = &negative
	assert.Equal(t, "Validation failed: price must be greater than or equal to 0", validate(t, p).Error())
}

func TestMaxBytesCountsBytes(t *testing.T) {
	p := validPerson()
	p.Secret = strings.Repeat("x", 8)
	assert.NoError(t, validate(t, p))

	// six runes, nine bytes
	p.Secret = "ééé" + "aaa"
	assert.Equal(t, "Validation failed: secret must be at most 8 bytes", validate(t, p).Error())
}

func TestNewJSONErrors(t *testing.T) {
	var dst personInput
	err := New(json.Unmarshal([]byte(`{"age":"old"}`), &dst))
	assert.Equal(t, "Validation failed: age must be of type number", err.Error())

	err = New(json.Unmarshal([]byte(`{"quantity":1.5}`), &dst))
	assert.Equal(t, "Validation failed: quantity must be an integer", err.Error())

	err = New(json.Unmarshal([]byte(`{"tags":"x"}`), &dst))
	assert.Equal(t, "Validation failed: tags must be of type array", err.Error())

	err = New(json.Unmarshal([]byte(`{`), &dst))
	assert.Equal(t, "Validation failed: invalid json", err.Error())

	assert.Nil(t, New(nil))
	assert.Equal(t, "Validation failed: boom", New(errors.New("boom")).Error())
}
