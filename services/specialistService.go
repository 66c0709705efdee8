package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"MedicAid/models"
)

// SpecialistSearcher is the search collaborator boundary; satisfied by
// llm.Client.
type SpecialistSearcher interface {
	FindSpecialists(ctx context.Context, specialty string, issues []string, area string) ([]models.Specialist, error)
}

// Geocoder resolves coordinates to an area name; satisfied by
// geocode.Client.
type Geocoder interface {
	ReverseArea(ctx context.Context, lat, lng float64) (string, error)
}

// SpecialistService finds nearby specialists for a report's recommended
// specialty and annotates each result with a booking-site lookup URL.
type SpecialistService struct {
	searcher SpecialistSearcher
	geocoder Geocoder
}

func NewSpecialistService(searcher SpecialistSearcher, geocoder Geocoder) *SpecialistService {
	return &SpecialistService{searcher: searcher, geocoder: geocoder}
}

// SpecialistQuery is the search input: a specialty, the patient's issues,
// and either coordinates or a free-text area name.
type SpecialistQuery struct {
	Specialty string   `json:"specialty"`
	Issues    []string `json:"issues"`
	Area      string   `json:"area"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
}

// Search resolves the location to an area name when only coordinates were
// given, runs the collaborator search, and derives booking URLs.
func (s *SpecialistService) Search(ctx context.Context, query SpecialistQuery) ([]models.Specialist, error) {
	if query.Specialty == "" {
		return nil, errors.New("specialty is required")
	}

	area := strings.TrimSpace(query.Area)
	if area == "" {
		if query.Lat == nil || query.Lng == nil {
			return nil, errors.New("either an area name or coordinates are required")
		}
		resolved, err := s.geocoder.ReverseArea(ctx, *query.Lat, *query.Lng)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve location: %w", err)
		}
		area = resolved
	}

	specialists, err := s.searcher.FindSpecialists(ctx, query.Specialty, query.Issues, area)
	if err != nil {
		return nil, err
	}
	for i := range specialists {
		specialists[i].BookingURL = BookingURL(specialists[i].Title)
	}
	return specialists, nil
}

// BookingURL derives a booking-site search link from a specialist title by
// taking the portion before the first "|" and URL-encoding it.
func BookingURL(title string) string {
	name := strings.TrimSpace(strings.SplitN(title, "|", 2)[0])
	return "https://www.practo.com/search/doctors?results_type=doctor&q=" + url.QueryEscape(name)
}
