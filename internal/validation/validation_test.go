package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.NoError(t, Text("input", "reverse a string"))

	for _, v := range []string{"", "   ", "\n\t"} {
		err := Text("input", v)
		var verr *Error
		assert.True(t, errors.As(err, &verr), "%q", v)
		assert.Equal(t, "input", verr.Field)
		assert.Equal(t, "input must not be empty", err.Error())
	}
}
