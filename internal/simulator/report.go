package simulator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lox/blackjack/internal/statistics"
)

//go:embed schemas
var schemaFiles embed.FS

const reportSchemaURL = "https://blackjack.local/schemas/report.json"

// Report is the machine-readable summary of a run
type Report struct {
	RunID            string                   `json:"run_id"`
	Strategy         string                   `json:"strategy"`
	Seed             int64                    `json:"seed"`
	Bet              int                      `json:"bet"`
	Sessions         int                      `json:"sessions"`
	RoundsPerSession int                      `json:"rounds_per_session"`
	RoundsPlayed     int                      `json:"rounds_played"`
	BrokeSessions    int                      `json:"broke_sessions"`
	Reshuffles       int                      `json:"reshuffles"`
	Wagered          int                      `json:"wagered"`
	Mean             float64                  `json:"mean"`
	Median           float64                  `json:"median"`
	StdDev           float64                  `json:"std_dev"`
	StdError         float64                  `json:"std_error"`
	CI95             [2]float64               `json:"ci95"`
	ReturnPct        float64                  `json:"return_pct"`
	Outcomes         statistics.OutcomeCounts `json:"outcomes"`
	Doubles          int                      `json:"doubles"`
	DealerBlackjacks int                      `json:"dealer_blackjacks"`
	BiggestWin       int                      `json:"biggest_win"`
	BiggestLoss      int                      `json:"biggest_loss"`
	DurationMs       int64                    `json:"duration_ms"`
}

// NewReport summarises a run. Every report gets a fresh run ID.
func NewReport(cfg Config, res *Result) Report {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()
	return Report{
		RunID:            uuid.NewString(),
		Strategy:         cfg.Strategy,
		Seed:             cfg.Seed,
		Bet:              cfg.Bet,
		Sessions:         res.Sessions,
		RoundsPerSession: cfg.Rounds,
		RoundsPlayed:     stats.Rounds,
		BrokeSessions:    res.BrokeSessions,
		Reshuffles:       res.Reshuffles,
		Wagered:          stats.Wagered,
		Mean:             stats.Mean(),
		Median:           stats.Median(),
		StdDev:           stats.StdDev(),
		StdError:         stats.StdError(),
		CI95:             [2]float64{low, high},
		ReturnPct:        stats.Return(),
		Outcomes:         stats.Outcomes,
		Doubles:          stats.Doubles,
		DealerBlackjacks: stats.DealerBlackjacks,
		BiggestWin:       stats.BiggestWin,
		BiggestLoss:      stats.BiggestLoss,
		DurationMs:       res.Duration.Milliseconds(),
	}
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func reportSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		data, err := schemaFiles.ReadFile("schemas/report.json")
		if err != nil {
			schemaErr = fmt.Errorf("failed to read report schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(reportSchemaURL, bytes.NewReader(data)); err != nil {
			schemaErr = fmt.Errorf("failed to add report schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(reportSchemaURL)
	})
	return schema, schemaErr
}

// ValidateReport checks encoded report JSON against the embedded schema
func ValidateReport(data []byte) error {
	s, err := reportSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("report schema validation failed: %w", err)
	}
	return nil
}

// Validate checks the report against the embedded schema
func (r Report) Validate() error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return ValidateReport(data)
}
