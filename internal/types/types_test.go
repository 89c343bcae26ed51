package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notesPayload struct {
	Name  Optional[string] `json:"name"`
	Notes Optional[string] `json:"notes"`
}

func TestOptionalDistinguishesAbsentFromNull(t *testing.T) {
	var absent notesPayload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"New"}`), &absent))
	assert.True(t, absent.Name.Present())
	assert.Equal(t, "New", absent.Name.Value)
	assert.False(t, absent.Notes.Set)

	var cleared notesPayload
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null}`), &cleared))
	assert.True(t, cleared.Notes.Set)
	assert.True(t, cleared.Notes.Null)
	assert.False(t, cleared.Notes.Present())
	assert.Nil(t, cleared.Notes.Ptr())
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(notesPayload{Name: Some("a"), Notes: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","notes":null}`, string(out))
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var p notesPayload
	assert.Error(t, json.Unmarshal([]byte(`{"name":12}`), &p))
}

func TestIDAcceptsNumberOrString(t *testing.T) {
	var body struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":7,"b":"42"}`), &body))
	assert.Equal(t, ID(7), body.A)
	assert.Equal(t, ID(42), body.B)
	assert.Equal(t, "42", body.B.String())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &body))
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 15 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(15), id.Uint64())

	_, err = ParseID("")
	assert.Error(t, err)
	_, err = ParseID("-1")
	assert.Error(t, err)
}

func TestCustomErrorCarriesFieldsAndCause(t *testing.T) {
	e := MissingFields("email", "password")
	assert.Equal(t, http.StatusBadRequest, e.Code)
	assert.Equal(t, []string{"email", "password"}, e.Fields)
	assert.Contains(t, e.Error(), "email, password")

	cause := errors.New("boom")
	internal := Internal("Server Error", cause)
	assert.ErrorIs(t, internal, cause)
	assert.Equal(t, http.StatusInternalServerError, internal.Code)

	var target *CustomError
	assert.True(t, errors.As(error(UniqueConstraint("email", "Email address already in use")), &target))
	assert.Equal(t, http.StatusConflict, target.Code)
}
