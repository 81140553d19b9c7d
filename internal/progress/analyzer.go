// ABOUTME: Progression analyzer for a single exercise.
// ABOUTME: Combines history, trend, rep records and advice into a report.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
	"github.com/harperreed/lift/internal/strength"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=history_mock_test.go -package=progress_test github.com/harperreed/lift/internal/storage HistoryReader

// DefaultHistoryLimit is the number of sessions analysed when no limit is given.
const DefaultHistoryLimit = 12

// SessionStats aggregates the working sets of one exercise in one session.
// Warmup sets are ignored.
type SessionStats struct {
	SessionID     string    `json:"session_id"`
	Date          time.Time `json:"date"`
	Name          string    `json:"name"`
	MaxWeightKg   float64   `json:"max_weight_kg"`
	TotalVolumeKg float64   `json:"total_volume_kg"`
	Best1RM       *float64  `json:"best_1rm,omitempty"`
	SetCount      int       `json:"set_count"`
}

// Report is the full progression analysis of an exercise.
type Report struct {
	TemplateID string         `json:"template_id"`
	Sessions   []SessionStats `json:"sessions"`
	Trend      Trend          `json:"trend"`
	// ChangePct is the relative change behind Trend, nil when it could not be computed.
	ChangePct *float64    `json:"change_pct,omitempty"`
	Records   []RepRecord `json:"records"`
	Advice    string      `json:"advice"`
}

// Analyzer reads finished sessions of an exercise and reports on them.
type Analyzer struct {
	history storage.HistoryReader
	log     logrus.FieldLogger
}

// NewAnalyzer returns an Analyzer reading from history.
func NewAnalyzer(history storage.HistoryReader) *Analyzer {
	return &Analyzer{
		history: history,
		log:     logrus.WithField("component", "progress"),
	}
}

// ExerciseHistory returns per-session stats for the limit most recent
// finished sessions containing the exercise, most recent first.
func (a *Analyzer) ExerciseHistory(ctx context.Context, templateID string, limit int) ([]SessionStats, error) {
	history, err := a.fetch(ctx, templateID, limit)
	if err != nil {
		return nil, err
	}
	return sessionStats(history), nil
}

// Analyze builds the report for an exercise. The trend is computed over the
// best estimated 1RM of each session; sessions without an estimate are left
// out of the series.
func (a *Analyzer) Analyze(ctx context.Context, templateID string, limit int) (*Report, error) {
	history, err := a.fetch(ctx, templateID, limit)
	if err != nil {
		return nil, err
	}

	stats := sessionStats(history)
	series := make([]float64, 0, len(stats))
	for _, s := range stats {
		if s.Best1RM != nil {
			series = append(series, *s.Best1RM)
		}
	}

	report := &Report{
		TemplateID: templateID,
		Sessions:   stats,
		Trend:      ClassifyTrend(series),
		Records:    RepRecords(history),
	}
	if change, ok := TrendChange(series); ok {
		pct := strength.Round1(change * 100)
		report.ChangePct = &pct
	}
	report.Advice = Advice(report.Trend, len(series))

	a.log.WithFields(logrus.Fields{
		"template_id": templateID,
		"sessions":    len(stats),
		"trend":       report.Trend,
	}).Debug("exercise analysed")

	return report, nil
}

func (a *Analyzer) fetch(ctx context.Context, templateID string, limit int) ([]models.SessionHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	history, err := a.history.RecentFinishedSessionsForExercise(ctx, templateID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", templateID, err)
	}
	return history, nil
}

func sessionStats(history []models.SessionHistory) []SessionStats {
	stats := make([]SessionStats, 0, len(history))
	for _, h := range history {
		stats = append(stats, aggregate(h))
	}
	return stats
}

func aggregate(h models.SessionHistory) SessionStats {
	s := SessionStats{
		SessionID:     h.SessionID,
		Date:          h.Date,
		Name:          h.Name,
		TotalVolumeKg: strength.Round2(strength.Volume(h.Sets, false)),
	}
	for _, set := range h.Sets {
		if set.IsWarmup || !set.IsCompleted {
			continue
		}
		s.SetCount++
		if set.WeightKg != nil && *set.WeightKg > s.MaxWeightKg {
			s.MaxWeightKg = *set.WeightKg
		}
		if est, ok := strength.SetEpley1RM(set); ok && (s.Best1RM == nil || est > *s.Best1RM) {
			best := est
			s.Best1RM = &best
		}
	}
	return s
}
