package app

import (
	"context"

	"resultdesk/domain/result"
	"resultdesk/internal"
	"resultdesk/ports"

	"github.com/montanaflynn/stats"
)

// SummaryService reports what is stored for each class
type SummaryService struct {
	store   ports.ResultStore
	classes []result.ClassLabel
	policy  result.ScoringPolicy
	logger  *internal.Logger
}

// NewSummaryService creates a summary service
func NewSummaryService(store ports.ResultStore, classes []result.ClassLabel, policy result.ScoringPolicy, logger *internal.Logger) *SummaryService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SummaryService{
		store:   store,
		classes: classes,
		policy:  policy,
		logger:  logger.With("SummaryService"),
	}
}

// Summaries returns one summary per configured class, in class order
func (s *SummaryService) Summaries(ctx context.Context) ([]result.ClassSummary, error) {
	summaries := make([]result.ClassSummary, 0, len(s.classes))
	for _, class := range s.classes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summaries = append(summaries, s.summarize(class))
	}
	return summaries, nil
}

func (s *SummaryService) summarize(class result.ClassLabel) result.ClassSummary {
	records := s.store.Records(class)
	summary := result.ClassSummary{
		Class:       class,
		RecordCount: len(records),
		Columns:     []string{},
	}
	if len(records) == 0 {
		return summary
	}

	headers := records[0].Headers()
	roles := result.ClassifyColumns(headers)
	summary.Columns = headers
	summary.RegistrationColumn = roles.RegistrationCol
	summary.Searchable = roles.HasRegistration()

	percentages := make(stats.Float64Data, 0, len(records))
	for _, record := range records {
		marksheet := result.BuildMarksheet(record, roles, class, s.policy)
		if marksheet.Status == result.StatusPass {
			summary.PassCount++
		} else {
			summary.FailCount++
		}
		percentages = append(percentages, marksheet.Percentage)
	}

	summary.MeanPercentage = s.describe("mean", class, percentages, stats.Mean)
	summary.MedianPercentage = s.describe("median", class, percentages, stats.Median)
	summary.MinPercentage = s.describe("min", class, percentages, stats.Min)
	summary.MaxPercentage = s.describe("max", class, percentages, stats.Max)
	return summary
}

func (s *SummaryService) describe(name string, class result.ClassLabel, data stats.Float64Data, fn func(stats.Float64Data) (float64, error)) float64 {
	value, err := fn(data)
	if err != nil {
		s.logger.Warn("Could not compute %s for Class %s: %v", name, class, err)
		return 0
	}
	rounded, err := stats.Round(value, 2)
	if err != nil {
		return value
	}
	return rounded
}
