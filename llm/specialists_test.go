package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecialistLines(t *testing.T) {
	text := `Here are the top results:
1. Dr. Mehta Endocrine Clinic | Andheri West, Mumbai, India
- "Apollo Hospital Diabetes Centre | Bandra East, Mumbai, India"
* Fortis Endocrinology | Mulund West, Mumbai, India
This line has no separator and is skipped.`

	specialists := ParseSpecialistLines(text)

	require.Len(t, specialists, 3)
	assert.Equal(t, "Dr. Mehta Endocrine Clinic | Andheri West, Mumbai, India", specialists[0].Title)
	assert.Equal(t, "Apollo Hospital Diabetes Centre | Bandra East, Mumbai, India", specialists[1].Title)
	assert.Contains(t, specialists[0].URI, "https://www.google.com/maps/search/?api=1&query=")
	assert.Contains(t, specialists[0].URI, "Mumbai")
}

func TestParseSpecialistLinesEmpty(t *testing.T) {
	assert.Empty(t, ParseSpecialistLines("No results found for that area."))
	assert.Empty(t, ParseSpecialistLines(""))
}
