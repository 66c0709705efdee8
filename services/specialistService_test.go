package services

import (
	"context"
	"errors"
	"testing"

	"MedicAid/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	results   []models.Specialist
	err       error
	lastArea  string
	lastSpec  string
	lastIssue []string
}

func (s *stubSearcher) FindSpecialists(_ context.Context, specialty string, issues []string, area string) ([]models.Specialist, error) {
	s.lastSpec = specialty
	s.lastIssue = issues
	s.lastArea = area
	return s.results, s.err
}

type stubGeocoder struct {
	area string
	err  error
}

func (g *stubGeocoder) ReverseArea(context.Context, float64, float64) (string, error) {
	return g.area, g.err
}

func TestBookingURL(t *testing.T) {
	assert.Equal(t,
		"https://www.practo.com/search/doctors?results_type=doctor&q=Dr.+Mehta+Endocrine+Clinic",
		BookingURL("Dr. Mehta Endocrine Clinic | Andheri West, Mumbai, India"))

	// No separator: whole title becomes the query.
	assert.Equal(t,
		"https://www.practo.com/search/doctors?results_type=doctor&q=Apollo+Hospital",
		BookingURL("Apollo Hospital"))
}

func TestSearchWithAreaName(t *testing.T) {
	searcher := &stubSearcher{results: []models.Specialist{
		{Title: "Dr. Mehta | Andheri West, Mumbai, India", URI: "https://maps.example/1"},
	}}
	service := NewSpecialistService(searcher, &stubGeocoder{err: errors.New("should not be called")})

	results, err := service.Search(context.Background(), SpecialistQuery{
		Specialty: "Endocrinologist",
		Issues:    []string{"elevated glucose"},
		Area:      "Mumbai",
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mumbai", searcher.lastArea)
	assert.Contains(t, results[0].BookingURL, "practo.com")
	assert.Contains(t, results[0].BookingURL, "Dr.+Mehta")
}

func TestSearchResolvesCoordinates(t *testing.T) {
	searcher := &stubSearcher{}
	service := NewSpecialistService(searcher, &stubGeocoder{area: "Andheri, Mumbai, Maharashtra, India"})

	lat, lng := 19.1197, 72.8468
	_, err := service.Search(context.Background(), SpecialistQuery{
		Specialty: "Endocrinologist",
		Lat:       &lat,
		Lng:       &lng,
	})

	require.NoError(t, err)
	assert.Equal(t, "Andheri, Mumbai, Maharashtra, India", searcher.lastArea)
}

func TestSearchRequiresLocation(t *testing.T) {
	service := NewSpecialistService(&stubSearcher{}, &stubGeocoder{})
	_, err := service.Search(context.Background(), SpecialistQuery{Specialty: "Cardiologist"})
	assert.Error(t, err)
}

func TestSearchRequiresSpecialty(t *testing.T) {
	service := NewSpecialistService(&stubSearcher{}, &stubGeocoder{})
	_, err := service.Search(context.Background(), SpecialistQuery{Area: "Mumbai"})
	assert.Error(t, err)
}
