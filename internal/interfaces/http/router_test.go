package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	appservice "github.com/turtacn/supplyrisk/internal/application/service"
	"github.com/turtacn/supplyrisk/internal/config"
	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/infrastructure/climate"
	"github.com/turtacn/supplyrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/supplyrisk/internal/infrastructure/ratelimit"
	"github.com/turtacn/supplyrisk/internal/infrastructure/reference"
	httpapi "github.com/turtacn/supplyrisk/internal/interfaces/http"
	"github.com/turtacn/supplyrisk/internal/interfaces/http/handlers"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

const hazardReply = `{
  "expected_annual_loss": 4851.236,
  "expected_annual_loss_pct": 0.48512,
  "present_value_30yr": 83421.6,
  "country": "X",
  "country_name": "X",
  "risk_breakdown": {
    "hurricane": {"annual_loss": 1700, "annual_loss_pct": 0.17},
    "flood": {"annual_loss": 1455, "annual_loss_pct": 0.15},
    "heat_stress": {"annual_loss": 727, "annual_loss_pct": 0.07},
    "drought": {"annual_loss": 485, "annual_loss_pct": 0.05},
    "extreme_precipitation": {"annual_loss": 483, "annual_loss_pct": 0.05}
  }
}`

type RouterTestSuite struct {
	suite.Suite
	hazard *httptest.Server
	router *httpapi.Router
	cfg    *config.Config
}

func TestRouterTestSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.hazard = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(hazardReply))
	}))

	s.cfg = &config.Config{
		Server:     config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}, Environment: "test"},
		Assessment: config.AssessmentConfig{DefaultTopN: 5, MaxTopN: 20},
		RateLimit:  config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 3},
	}

	log := logger.NewNoopLogger()
	reg := prometheus.NewRegistry()
	prom := monitoring.NewMetrics(reg)
	metrics := monitoring.NewMetricsAdapter(prom)

	refs, err := reference.NewEmbeddedRepository()
	s.Require().NoError(err)
	client := climate.NewClient(climate.DefaultConfig(s.hazard.URL), log, metrics)
	resolver := appservice.NewLossResolver(client, refs, 5*time.Second, log, metrics)
	assessSvc := appservice.NewAssessmentAppService(refs, resolver, appservice.AssessmentConfig{MaxTopN: 20}, log, metrics)
	cacheSvc := appservice.NewClimateCacheAppService(client, refs, log)

	s.router = httpapi.NewRouter(s.cfg, log, httpapi.Dependencies{
		Health:         handlers.NewHealthHandler(refs, nil, log),
		Assessment:     handlers.NewAssessmentHandler(assessSvc, 5, 20, log),
		ClimateCache:   handlers.NewClimateCacheHandler(cacheSvc),
		Limiter:        ratelimit.NewKeyedLimiter(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst, time.Minute),
		RequestMetrics: prom,
		Metrics:        metrics,
		Gatherer:       reg,
	})
}

func (s *RouterTestSuite) TearDownTest() {
	s.hazard.Close()
}

func (s *RouterTestSuite) do(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.Engine().ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func (s *RouterTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/api/health")
	s.Equal(http.StatusOK, w.Code)

	var body dto.HealthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("healthy", body.Status)
	s.Equal(24, body.Countries)
	s.Equal(22, body.Sectors)
}

func (s *RouterTestSuite) TestListCountriesAndSectors() {
	var countries []models.Country
	w := s.do(http.MethodGet, "/api/countries")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &countries))
	s.Equal("USA", countries[0].Code)
	s.Equal("United States", countries[0].Name)

	var sectors []models.Sector
	w = s.do(http.MethodGet, "/api/sectors")
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &sectors))
	s.Len(sectors, 22)
}

func (s *RouterTestSuite) TestAssess_NormalizesQuery() {
	w := s.do(http.MethodGet, "/api/assess?country=usa&sector=C10-C12&top_n=99")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var result models.AssessmentResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	s.Equal("USA", result.Country)
	s.Equal(20, result.Methodology.TopN)
	s.Require().NotNil(result.DirectRisk.ExpectedLoss)
	s.Equal(4851.24, result.DirectRisk.ExpectedLoss.TotalAnnualLoss)
	s.NotEmpty(result.AssessmentID)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *RouterTestSuite) TestAssess_SkipClimate() {
	w := s.do(http.MethodGet, "/api/assess?country=CHN&sector=C26&skip_climate=true")
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "expected_loss")
}

func (s *RouterTestSuite) TestAssess_ValidationErrors() {
	cases := map[string]string{
		"/api/assess?sector=C26":                 "Missing required parameter: country",
		"/api/assess?country=USA":                "Missing required parameter: sector",
		"/api/assess?country=XXX&sector=C26":     "Invalid country code: XXX",
		"/api/assess?country=USA&sector=NOTREAL": "Invalid sector code: NOTREAL",
	}
	for target, message := range cases {
		w := s.do(http.MethodGet, target)
		s.Equal(http.StatusBadRequest, w.Code, target)

		var body dto.ErrorResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal("Bad Request", body.Error)
		s.Equal(message, body.Message)
		s.NotEmpty(body.Details)
	}
}

func (s *RouterTestSuite) TestAssess_RateLimited() {
	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		codes = append(codes, s.do(http.MethodGet, "/api/assess?country=DEU&sector=C29&skip_climate=true").Code)
	}
	s.Equal([]int{200, 200, 200, 429}, codes)

	// other routes are not limited
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/countries").Code)
}

func (s *RouterTestSuite) TestClimateCacheStatsAndClear() {
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/assess?country=JPN&sector=C26&top_n=1").Code)

	var stats climate.CacheStats
	w := s.do(http.MethodGet, "/api/climate/cache")
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &stats))
	s.Positive(stats.Size)
	s.Contains(stats.Countries, "japan")

	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/api/climate/cache").Code)
	w = s.do(http.MethodGet, "/api/climate/cache")
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &stats))
	s.Zero(stats.Size)
}

func (s *RouterTestSuite) TestMetricsAndNotFound() {
	s.do(http.MethodGet, "/api/countries")
	w := s.do(http.MethodGet, "/metrics")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "supplyrisk_http_requests_total")

	w = s.do(http.MethodGet, "/nope")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/live").Code)
}

type failingPing struct{}

func (failingPing) Ping(_ context.Context) error { return assert.AnError }

func TestHealth_RedisDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	refs, err := reference.NewEmbeddedRepository()
	require.NoError(t, err)
	h := handlers.NewHealthHandler(refs, failingPing{}, logger.NewNoopLogger())

	r := gin.New()
	r.GET("/api/health", h.HealthCheck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"unreachable"`)
}
