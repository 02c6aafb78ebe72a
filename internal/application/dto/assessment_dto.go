// Package dto provides data transfer objects for the application layer.
package dto

import (
	"strings"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/pkg/constants"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/utils"
)

// AssessRequest 风险评估请求
type AssessRequest struct {
	Country     string `form:"country" json:"country" validate:"required,iso3"`
	Sector      string `form:"sector" json:"sector" validate:"required"`
	SkipClimate bool   `form:"-" json:"skip_climate"`
	TopN        int    `form:"-" json:"top_n"`
}

// NewAssessRequest builds a request from raw query values. Country codes are
// upper-cased, skip_climate is true only for "true", and top_n falls back to
// defaultTopN when absent or unparseable before being clamped to [1, maxTopN].
func NewAssessRequest(country, sector, skipClimate, topN string, defaultTopN, maxTopN int) *AssessRequest {
	if defaultTopN <= 0 {
		defaultTopN = constants.DefaultTopN
	}
	if maxTopN <= 0 {
		maxTopN = constants.MaxTopN
	}
	n := utils.StringToInt(topN, defaultTopN)
	if n == 0 {
		n = defaultTopN
	}
	return &AssessRequest{
		Country:     strings.ToUpper(strings.TrimSpace(country)),
		Sector:      strings.TrimSpace(sector),
		SkipClimate: strings.TrimSpace(skipClimate) == "true",
		TopN:        utils.ClampInt(n, constants.MinTopN, maxTopN),
	}
}

// CodeValidator reports whether reference codes exist.
type CodeValidator interface {
	IsValidCountry(code string) bool
	IsValidSector(code string) bool
}

// Validate checks the request shape first, then existence of the codes.
func (r *AssessRequest) Validate(refs CodeValidator) error {
	for _, fe := range utils.ValidateStruct(r) {
		switch {
		case fe.Field == "country" && fe.Tag == "required":
			return apperrors.ErrMissingCountry()
		case fe.Field == "country":
			return apperrors.ErrUnknownCountry(r.Country)
		case fe.Field == "sector":
			return apperrors.ErrMissingSector()
		default:
			return apperrors.ErrInvalidRequest("Invalid parameter: "+fe.Field, fe.Field+" "+fe.Message)
		}
	}
	switch {
	case !refs.IsValidCountry(r.Country):
		return apperrors.ErrUnknownCountry(r.Country)
	case !refs.IsValidSector(r.Sector):
		return apperrors.ErrUnknownSector(r.Sector)
	}
	return nil
}

// AssessmentResponse 风险评估响应
type AssessmentResponse = models.AssessmentResult

// CountryListResponse wraps the country table for YAML/CLI rendering.
type CountryListResponse struct {
	Countries []models.Country `json:"countries" yaml:"countries"`
}

// SectorListResponse wraps the sector table for YAML/CLI rendering.
type SectorListResponse struct {
	Sectors []models.Sector `json:"sectors" yaml:"sectors"`
}
