package services

import (
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/utils"
)

// periodStats summarises the weights of one week or month.
type periodStats struct {
	Avg   float64
	Max   float64
	Min   float64
	Count int
}

// summarize computes avg (one decimal), max and min. An empty period yields zeros.
func summarize(records []models.WeightRecord) periodStats {
	if len(records) == 0 {
		return periodStats{}
	}

	stats := periodStats{
		Max:   records[0].Weight,
		Min:   records[0].Weight,
		Count: len(records),
	}
	sum := 0.0
	for _, r := range records {
		sum += r.Weight
		if r.Weight > stats.Max {
			stats.Max = r.Weight
		}
		if r.Weight < stats.Min {
			stats.Min = r.Weight
		}
	}
	stats.Avg = utils.Round(sum/float64(len(records)), 1)
	return stats
}

// diffAverage is current.Avg - previous.Avg rounded to one decimal, 0 when either
// period has no records.
func diffAverage(current, previous periodStats) float64 {
	if current.Count == 0 || previous.Count == 0 {
		return 0
	}
	return utils.Round(current.Avg-previous.Avg, 1)
}

// diffWeights is a - b rounded to one decimal, 0 when either is missing.
func diffWeights(a, b *float64) float64 {
	if a == nil || b == nil {
		return 0
	}
	return utils.Round(*a-*b, 1)
}
