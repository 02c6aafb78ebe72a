package service_test

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/internal/application/service"
	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/domain/service/mocks"
	"github.com/turtacn/supplyrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/supplyrisk/internal/infrastructure/reference"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

type AssessmentAppServiceTestSuite struct {
	suite.Suite
	repo     *reference.StaticRepository
	provider *mocks.MockClimateRiskProvider
	metrics  *mocks.RecordingMetrics
	svc      service.AssessmentAppService
}

func (s *AssessmentAppServiceTestSuite) SetupTest() {
	repo, err := reference.NewEmbeddedRepository()
	s.Require().NoError(err)
	s.repo = repo
	s.provider = new(mocks.MockClimateRiskProvider)
	s.metrics = mocks.NewRecordingMetrics()

	resolver := service.NewLossResolver(s.provider, repo, time.Second, logger.NewNoopLogger(), s.metrics)
	s.svc = service.NewAssessmentAppService(repo, resolver, service.AssessmentConfig{MaxTopN: 20}, logger.NewNoopLogger(), s.metrics)
}

func TestAssessmentAppServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssessmentAppServiceTestSuite))
}

func hazards(loss, pct float64) models.HazardLoss {
	return models.HazardLoss{AnnualLoss: loss, AnnualLossPct: pct}
}

// stubHazardService answers for the United States and Mexico only; every
// other country has to come from the static snapshot or stay absent.
func (s *AssessmentAppServiceTestSuite) stubHazardService() {
	s.provider.On("FetchExpectedLoss", mock.Anything, "United States").Return(&models.ExpectedLoss{
		TotalAnnualLoss: 5000, TotalAnnualLossPct: 0.5, PresentValue30yr: 86000,
		RiskBreakdown: models.RiskBreakdown{
			Hurricane:            hazards(1750, 0.18),
			Flood:                hazards(1500, 0.15),
			HeatStress:           hazards(750, 0.08),
			Drought:              hazards(500, 0.05),
			ExtremePrecipitation: hazards(500, 0.05),
		},
	})
	s.provider.On("FetchExpectedLoss", mock.Anything, "Mexico").Return(&models.ExpectedLoss{
		TotalAnnualLoss: 3200, TotalAnnualLossPct: 0.32, PresentValue30yr: 55000,
		RiskBreakdown: models.RiskBreakdown{
			Hurricane:            hazards(640, 0.06),
			Flood:                hazards(640, 0.06),
			HeatStress:           hazards(640, 0.06),
			Drought:              hazards(640, 0.06),
			ExtremePrecipitation: hazards(640, 0.06),
		},
	})
	s.provider.On("FetchExpectedLoss", mock.Anything, mock.Anything).Return(nil)
}

func (s *AssessmentAppServiceTestSuite) TestAssess_LogsDominantDimension() {
	core, logs := observer.New(zap.InfoLevel)
	log := monitoring.NewLoggerFromZap(zap.New(core))
	resolver := service.NewLossResolver(s.provider, s.repo, time.Second, log, s.metrics)
	svc := service.NewAssessmentAppService(s.repo, resolver, service.AssessmentConfig{MaxTopN: 20}, log, s.metrics)

	result, err := svc.Assess(context.Background(), dto.NewAssessRequest("DEU", "C26", "true", "5", 5, 20))
	s.Require().NoError(err)

	entries := logs.FilterMessage("assessment completed").All()
	s.Require().Len(entries, 1)
	fields := entries[0].ContextMap()

	dim, score := result.TotalRisk.Max()
	s.Equal(string(dim), fields["dominant_dimension"])
	s.Equal(score, fields["dominant_score"])
	for _, other := range []float64{
		result.TotalRisk.Climate, result.TotalRisk.ModernSlavery, result.TotalRisk.Political,
		result.TotalRisk.WaterStress, result.TotalRisk.NatureLoss,
	} {
		s.LessOrEqual(other, score)
	}
}

func (s *AssessmentAppServiceTestSuite) TestAssess_GoldenUSAFoodManufacturing() {
	s.stubHazardService()

	req := dto.NewAssessRequest("usa", "C10-C12", "false", "3", 5, 20)
	result, err := s.svc.Assess(context.Background(), req)
	s.Require().NoError(err)

	s.NotEmpty(result.AssessmentID)
	s.False(result.AssessedAt.IsZero())

	raw, err := json.Marshal(result)
	s.Require().NoError(err)
	var got map[string]interface{}
	s.Require().NoError(json.Unmarshal(raw, &got))
	delete(got, "assessment_id")
	delete(got, "assessed_at")

	golden, err := os.ReadFile("testdata/assess_usa_c10-c12_top3.golden.json")
	s.Require().NoError(err)
	var want map[string]interface{}
	s.Require().NoError(json.Unmarshal(golden, &want))

	assertJSONClose(s.T(), want, got, "$")
	s.provider.AssertNumberOfCalls(s.T(), "FetchExpectedLoss", 5)
	s.Equal(1, s.metrics.Assessments)
}

func (s *AssessmentAppServiceTestSuite) TestAssess_SkipClimateMakesNoCalls() {
	req := dto.NewAssessRequest("CHN", "C26", "true", "", 5, 20)
	result, err := s.svc.Assess(context.Background(), req)
	s.Require().NoError(err)

	s.provider.AssertNotCalled(s.T(), "FetchExpectedLoss", mock.Anything, mock.Anything)
	s.Nil(result.ClimateSources)
	raw, err := json.Marshal(result)
	s.Require().NoError(err)
	s.False(strings.Contains(string(raw), "expected_loss"))
	s.Equal(5, result.Methodology.TopN)
	s.Len(result.Tiers[0].Suppliers, 5)
}

func (s *AssessmentAppServiceTestSuite) TestAssess_ClampsTopN() {
	req := &dto.AssessRequest{Country: "DEU", Sector: "C29", SkipClimate: true, TopN: 50}
	result, err := s.svc.Assess(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(20, result.Methodology.TopN)
	for _, tier := range result.Tiers {
		s.LessOrEqual(len(tier.Suppliers), 20)
	}
}

func (s *AssessmentAppServiceTestSuite) TestAssess_UnknownCodes() {
	_, err := s.svc.Assess(context.Background(), dto.NewAssessRequest("XXX", "C26", "", "", 5, 20))
	s.True(apperrors.Is(err, apperrors.CodeInvalidRequest))

	_, err = s.svc.Assess(context.Background(), dto.NewAssessRequest("USA", "Z99", "", "", 5, 20))
	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok)
	s.Equal("Invalid sector code: Z99", appErr.Message)
	s.Zero(s.metrics.Assessments)
}

func (s *AssessmentAppServiceTestSuite) TestAssess_CountryWithoutScoresUsesDefault() {
	result, err := s.svc.Assess(context.Background(), &dto.AssessRequest{Country: "ARG", Sector: "A01", SkipClimate: true, TopN: 5})
	s.Require().NoError(err)
	s.Equal(models.UniformRiskVector(2.5), result.DirectRisk.RiskVector)
}

func TestBatchCountries(t *testing.T) {
	tiers := models.TierEdges{
		{{Country: "MEX"}, {Country: "USA"}},
		{{Country: "CAN"}, {Country: "MEX"}},
		{{Country: "BRA"}},
	}
	assert.Equal(t, []string{"USA", "MEX", "CAN", "BRA"}, service.BatchCountries("USA", tiers))
}

// assertJSONClose compares decoded JSON trees, allowing float noise below 1e-9.
func assertJSONClose(t *testing.T, want, got interface{}, path string) {
	t.Helper()
	switch w := want.(type) {
	case map[string]interface{}:
		g, ok := got.(map[string]interface{})
		require.Truef(t, ok, "%s: expected object, got %T", path, got)
		assert.Lenf(t, g, len(w), "%s: key count", path)
		for k, wv := range w {
			gv, ok := g[k]
			if !assert.Truef(t, ok, "%s.%s missing", path, k) {
				continue
			}
			assertJSONClose(t, wv, gv, path+"."+k)
		}
	case []interface{}:
		g, ok := got.([]interface{})
		require.Truef(t, ok, "%s: expected array, got %T", path, got)
		require.Lenf(t, g, len(w), "%s: length", path)
		for i := range w {
			assertJSONClose(t, w[i], g[i], path)
		}
	case float64:
		g, ok := got.(float64)
		require.Truef(t, ok, "%s: expected number, got %T", path, got)
		assert.InDeltaf(t, w, g, 1e-9, "%s", path)
	default:
		assert.Equalf(t, want, got, "%s", path)
	}
}
