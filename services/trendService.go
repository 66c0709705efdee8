package services

import (
	"math"
	"sort"
	"time"

	"MedicAid/models"
	"MedicAid/utils"
)

// stabilityThreshold is the absolute delta below which a change is
// reported as stable rather than a clinical shift.
const stabilityThreshold = 0.001

// Reconcile compares a marker of the record at targetTimestamp against its
// most recent prior occurrence in history. The baseline is the record with
// the greatest timestamp strictly before targetTimestamp that contains a
// marker with the same canonical key. Non-numeric values on either side
// disable the comparison: all fields stay null.
func Reconcile(marker models.LabMarker, targetTimestamp int64, history []models.AnalysisRecord) models.TrendDelta {
	key := utils.NormalizeMarkerName(marker.Name)

	var baseline *models.AnalysisRecord
	for i := range history {
		h := &history[i]
		if h.Timestamp >= targetTimestamp {
			continue
		}
		if findMarker(h.Markers, key) == nil {
			continue
		}
		if baseline == nil || h.Timestamp > baseline.Timestamp {
			baseline = h
		}
	}
	if baseline == nil {
		return models.TrendDelta{}
	}

	prevMarker := findMarker(baseline.Markers, key)
	prevValue, ok := utils.ParseMarkerValue(string(prevMarker.Value))
	if !ok {
		return models.TrendDelta{}
	}
	currentValue, ok := utils.ParseMarkerValue(string(marker.Value))
	if !ok {
		return models.TrendDelta{}
	}

	delta := currentValue - prevValue
	result := models.TrendDelta{PreviousValue: &prevValue, Delta: &delta}

	if math.Abs(delta) < stabilityThreshold {
		result.Direction = models.DirectionStable
		return result
	}

	increased := delta > 0
	if utils.HigherIsWorse(marker.Name) {
		if increased {
			result.Direction = models.DirectionDeterioration
		} else {
			result.Direction = models.DirectionImprovement
		}
	} else {
		if increased {
			result.Direction = models.DirectionImprovement
		} else {
			result.Direction = models.DirectionDeterioration
		}
	}
	return result
}

func findMarker(markers []models.LabMarker, canonicalKey string) *models.LabMarker {
	for i := range markers {
		if utils.NormalizeMarkerName(markers[i].Name) == canonicalKey {
			return &markers[i]
		}
	}
	return nil
}

// MarkerSeries returns the chronological (oldest-first) series of readings
// for one canonical marker key, for trend charts. Unparsable values plot
// as zero, matching the original dashboard behaviour.
func MarkerSeries(canonicalKey string, history []models.AnalysisRecord) []models.MarkerPoint {
	var points []models.MarkerPoint
	for _, h := range history {
		m := findMarker(h.Markers, canonicalKey)
		if m == nil {
			continue
		}
		value, _ := utils.ParseMarkerValue(string(m.Value))
		date := h.ReportDate
		if date == "" {
			date = time.UnixMilli(h.Timestamp).Format("Jan 2")
		}
		points = append(points, models.MarkerPoint{
			Date:      date,
			Timestamp: h.Timestamp,
			Value:     value,
			Unit:      m.Unit,
			Name:      m.Name,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
	return points
}

// TrackableMarkers counts marker occurrences across the history by
// canonical key, most frequent first. Ties order alphabetically so the
// result is deterministic.
func TrackableMarkers(history []models.AnalysisRecord) []models.TrackableMarker {
	counts := make(map[string]int)
	for _, h := range history {
		for _, m := range h.Markers {
			counts[utils.NormalizeMarkerName(m.Name)]++
		}
	}
	markers := make([]models.TrackableMarker, 0, len(counts))
	for key, count := range counts {
		markers = append(markers, models.TrackableMarker{Key: key, Count: count})
	}
	sort.Slice(markers, func(i, j int) bool {
		if markers[i].Count != markers[j].Count {
			return markers[i].Count > markers[j].Count
		}
		return markers[i].Key < markers[j].Key
	})
	return markers
}
