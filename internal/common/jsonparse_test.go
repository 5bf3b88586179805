package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verdict struct {
	Output     string `json:"output"`
	Confidence int    `json:"confidence"`
}

func TestParseJSONFenced(t *testing.T) {
	resp := "Here you go:\n```json\n{\"output\": \"fixed\", \"confidence\": 81}\n```\n"

	v, err := ParseJSON[verdict](resp)
	require.NoError(t, err)
	assert.Equal(t, "fixed", v.Output)
	assert.Equal(t, 81, v.Confidence)
}

func TestParseJSONNoObject(t *testing.T) {
	_, err := ParseJSON[verdict]("Confidence: 73")
	assert.True(t, errors.Is(err, ErrNoJSON))

	_, err = ParseJSON[verdict]("} backwards {")
	assert.True(t, errors.Is(err, ErrNoJSON))
}

func TestParseJSONMalformed(t *testing.T) {
	_, err := ParseJSON[verdict]("{output: nope}")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoJSON))
}

func TestParseObject(t *testing.T) {
	v, err := ParseObject[verdict]("  {\"output\": \"fixed\", \"confidence\": 81}\n")
	require.NoError(t, err)
	assert.Equal(t, "fixed", v.Output)

	v, err = ParseObject[verdict]("```json\n{\"output\": \"fenced\", \"confidence\": 5}\n```")
	require.NoError(t, err)
	assert.Equal(t, "fenced", v.Output)
	assert.Equal(t, 5, v.Confidence)

	_, err = ParseObject[verdict]("Corrected config:\n```json\n{\"output\": \"stdout\"}\n```\nConfidence: 70")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = ParseObject[verdict]("{\"output\": \"a\"} and {\"output\": \"b\"}")
	assert.Error(t, err)
}
