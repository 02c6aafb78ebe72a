package reference

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/turtacn/supplyrisk/internal/domain/models"
)

//go:embed data/*.json
var embeddedData embed.FS

const (
	countriesFile    = "countries.json"
	sectorsFile      = "sectors.json"
	riskScoresFile   = "risk_scores.json"
	expectedLossFile = "expected_loss.json"
	coefficientsFile = "io_coefficients.json"
)

// LoadEmbedded reads the snapshot compiled into the binary.
func LoadEmbedded() (*Tables, error) {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads the five reference files from the root of fsys.
func LoadFS(fsys fs.FS) (*Tables, error) {
	t := &Tables{}
	files := []struct {
		name string
		dst  interface{}
	}{
		{countriesFile, &t.Countries},
		{sectorsFile, &t.Sectors},
		{riskScoresFile, &t.RiskScores},
		{expectedLossFile, &t.ExpectedLoss},
		{coefficientsFile, &t.Coefficients},
	}
	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	if t.RiskScores == nil {
		t.RiskScores = map[string]models.RiskVector{}
	}
	if t.ExpectedLoss == nil {
		t.ExpectedLoss = map[string]models.ExpectedLoss{}
	}
	return t, t.Validate()
}

// NewEmbeddedRepository is the default reference repository.
func NewEmbeddedRepository() (*StaticRepository, error) {
	tables, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	return NewStaticRepository(tables)
}
