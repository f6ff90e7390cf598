package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CountryResponse struct {
	CountryID uuid.UUID `json:"country_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Interface ---

type CountryService interface {
	GetCountries(ctx context.Context) ([]CountryResponse, error)
	// Normalize maps a free-text country value to its ISO code and canonical
	// name. ok is false when the value is not recognized.
	Normalize(raw string) (code, name string, ok bool)
	// GetOrCreate resolves raw against the countries table, creating the row
	// when the country is recognized but not stored yet. A nil country with a
	// nil error means the value was not recognized.
	GetOrCreate(ctx context.Context, raw string) (country *model.Country, created bool, err error)
}

// --- Implementation ---

type countryService struct {
	countryRepo repository.CountryRepository
}

func NewCountryService(countryRepo repository.CountryRepository) CountryService {
	return &countryService{countryRepo: countryRepo}
}

// canonicalCountry is one recognized country with the spellings the directory
// is known to contain for it.
type canonicalCountry struct {
	Code    string
	Name    string
	Aliases []string
}

var knownCountries = []canonicalCountry{
	{Code: "US", Name: "United States", Aliases: []string{"UNITED STATES", "UNITED STATES OF AMERICA", "USA", "US", "AMERICA", "ESTADOS UNIDOS"}},
	{Code: "PR", Name: "Puerto Rico", Aliases: []string{"PUERTO RICO", "PR"}},
	{Code: "DO", Name: "Dominican Republic", Aliases: []string{"DOMINICAN REPUBLIC", "REPUBLICA DOMINICANA", "REPÚBLICA DOMINICANA", "DO"}},
	{Code: "MX", Name: "Mexico", Aliases: []string{"MEXICO", "MÉXICO", "MX"}},
	{Code: "CA", Name: "Canada", Aliases: []string{"CANADA", "CA"}},
	{Code: "ES", Name: "Spain", Aliases: []string{"SPAIN", "ESPAÑA", "ESPANA", "ES"}},
	{Code: "FR", Name: "France", Aliases: []string{"FRANCE", "FR"}},
	{Code: "DE", Name: "Germany", Aliases: []string{"GERMANY", "DEUTSCHLAND", "DE"}},
	{Code: "IT", Name: "Italy", Aliases: []string{"ITALY", "ITALIA", "IT"}},
	{Code: "GB", Name: "United Kingdom", Aliases: []string{"UNITED KINGDOM", "GREAT BRITAIN", "UK", "GB", "ENGLAND"}},
}

// countryAliases is built once from knownCountries, keyed by uppercased alias.
var countryAliases = func() map[string]canonicalCountry {
	m := make(map[string]canonicalCountry)
	for _, c := range knownCountries {
		for _, alias := range c.Aliases {
			m[alias] = c
		}
	}
	return m
}()

func (s *countryService) Normalize(raw string) (string, string, bool) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if key == "" {
		return "", "", false
	}
	c, ok := countryAliases[key]
	if !ok {
		return "", "", false
	}
	return c.Code, c.Name, true
}

func (s *countryService) GetOrCreate(ctx context.Context, raw string) (*model.Country, bool, error) {
	code, name, ok := s.Normalize(raw)
	if !ok {
		return nil, false, nil
	}

	country, err := s.countryRepo.GetByCode(ctx, code)
	if err == nil {
		return country, false, nil
	}

	country = &model.Country{Code: code, Name: name}
	if err := s.countryRepo.Create(ctx, country); err != nil {
		return nil, false, fmt.Errorf("failed to create country %s: %w", code, err)
	}
	return country, true, nil
}

func (s *countryService) GetCountries(ctx context.Context) ([]CountryResponse, error) {
	countries, err := s.countryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}

	res := make([]CountryResponse, 0, len(countries))
	for _, c := range countries {
		res = append(res, toCountryResponse(c))
	}
	return res, nil
}

// --- Response mappers ---

func toCountryResponse(c model.Country) CountryResponse {
	return CountryResponse{
		CountryID: c.ID,
		Code:      c.Code,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
