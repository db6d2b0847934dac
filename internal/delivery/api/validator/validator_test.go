package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Commodities []string `query:"commodity" validate:"required,min=1,dive,required"`
	Format      string   `json:"format" validate:"omitempty,oneof=json csv"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Commodities: []string{"zinc"}, Format: "csv"}))

	err := v.Validate(&sample{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commodity failed on required")
	assert.Contains(t, err.Error(), "format failed on oneof=json csv")
}
