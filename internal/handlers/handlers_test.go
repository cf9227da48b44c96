package handlers

import (
	"testing"

	"cinehub/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestDecodeParam(t *testing.T) {
	value, err := decodeParam("name", "The%20Keep")
	assert.NoError(t, err)
	assert.Equal(t, "The Keep", value)

	value, err = decodeParam("name", "plain")
	assert.NoError(t, err)
	assert.Equal(t, "plain", value)
}

func TestDecodeParam_MalformedEscape(t *testing.T) {
	_, err := decodeParam("comment", "%zz")
	assert.Error(t, err)

	// Reported as a validation error so the handler answers 400 instead of
	// looking up an empty key.
	var vErr *services.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "comment", vErr.Field)
	assert.Equal(t, "%zz", vErr.Value)
}
