package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMarkerName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"hba1c plain", "HbA1c", "hba1c"},
		{"hba1c spelled out", "Hemoglobin A1c", "hba1c"},
		{"hba1c glycated", "Glycated Hemoglobin (HbA1c)", "hba1c"},
		{"glucose fasting", "Fasting Blood Glucose", "bloodglucose"},
		{"glucose sugar alias", "Blood Sugar (Fasting)", "bloodglucose"},
		{"glucose fbs alias", "FBS", "bloodglucose"},
		{"wbc", "WBC Count", "wbc"},
		{"wbc spelled out", "White Blood Cells", "wbc"},
		{"creatinine", "Serum Creatinine", "creatinine"},
		{"hemoglobin alone", "Hemoglobin", "hemoglobin"},
		{"hemoglobin hb", "Hemoglobin (Hb)", "hemoglobin"},
		{"tsh", "TSH", "tsh"},
		{"thyroid alias", "Thyroid Stimulating Hormone", "tsh"},
		{"total cholesterol", "Total Cholesterol", "totalcholesterol"},
		{"unknown passthrough", "Vitamin D, 25-OH", "vitamind25oh"},
		{"punctuation stripped", "  S. Creatinine  ", "creatinine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeMarkerName(tt.raw))
		})
	}
}

func TestNormalizeMarkerNameIdempotent(t *testing.T) {
	for _, raw := range []string{"HbA1c", "Fasting Blood Glucose", "Serum Creatinine", "Something Else"} {
		once := NormalizeMarkerName(raw)
		assert.Equal(t, once, NormalizeMarkerName(once), "normalizing %q twice changed the key", raw)
	}
}

func TestNormalizeMarkerNameRulePriority(t *testing.T) {
	// "Hemoglobin A1c" contains both "hemoglobin" and "hemoglobina1c"; the
	// a1c rule must win.
	assert.Equal(t, "hba1c", NormalizeMarkerName("Hemoglobin A1c"))
	assert.Equal(t, "hemoglobin", NormalizeMarkerName("Hemoglobin"))
}

func TestHigherIsWorse(t *testing.T) {
	assert.True(t, HigherIsWorse("Fasting Blood Glucose"))
	assert.True(t, HigherIsWorse("HbA1c"))
	assert.True(t, HigherIsWorse("Total Cholesterol"))
	assert.True(t, HigherIsWorse("Serum Creatinine"))
	assert.True(t, HigherIsWorse("WBC Count"))

	assert.False(t, HigherIsWorse("Hemoglobin"))
	assert.False(t, HigherIsWorse("Vitamin D"))
	assert.False(t, HigherIsWorse("TSH"))
}

func TestParseMarkerValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"5.2", 5.2, true},
		{"5.2 mg/dL", 5.2, true},
		{"  140 ", 140, true},
		{"-0.5", -0.5, true},
		{"+12", 12, true},
		{".75", 0.75, true},
		{"1e3", 1000, true},
		{"90 (fasting)", 90, true},
		{"Positive", 0, false},
		{"", 0, false},
		{"mg/dL 5.2", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMarkerValue(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.InDelta(t, tt.expected, got, 1e-9, "input %q", tt.input)
		}
	}
}
