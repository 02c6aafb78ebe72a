package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Country string `validate:"required,iso3"`
	TopN    int    `validate:"min=1,max=20"`
	Mode    string `validate:"omitempty,oneof=a b"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sample{Country: "USA", TopN: 5}))

	errs := ValidateStruct(sample{Country: "us", TopN: 21, Mode: "c"})
	require.Len(t, errs, 3)
	assert.Equal(t, FieldError{Field: "country", Tag: "iso3", Message: "must be a three-letter ISO country code"}, errs[0])
	assert.Equal(t, "top_n", errs[1].Field)
	assert.Equal(t, "must be at most 20", errs[1].Message)
	assert.Equal(t, "must be one of: a b", errs[2].Message)

	errs = ValidateStruct(sample{TopN: 1})
	require.Len(t, errs, 1)
	assert.Equal(t, "required", errs[0].Tag)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "skip_climate", toSnakeCase("SkipClimate"))
	assert.Equal(t, "top_n", toSnakeCase("TopN"))
}
