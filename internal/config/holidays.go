package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/model"
)

// ErrInvalidHoliday is returned when a configured holiday cannot be used.
var ErrInvalidHoliday = errors.New("invalid holiday")

// DefaultHolidays is the built-in catalog of off-campus breaks, in display order.
var DefaultHolidays = []model.HolidayDefinition{
	{Label: "Labor Day", Dates: []caldate.Key{"20250830", "20250831", "20250901"}},
	{Label: "Columbus Day", Dates: []caldate.Key{"20251011", "20251012", "20251013"}},
	{Label: "Veterans Day", Dates: []caldate.Key{"20251111"}},
	{Label: "Thanksgiving", Dates: []caldate.Key{"20251126", "20251127", "20251128", "20251129", "20251130"}},
	{Label: "Presidents' Day", Dates: []caldate.Key{"20260214", "20260215", "20260216"}},
	{Label: "Spring Recess", Dates: []caldate.Key{
		"20260314", "20260315", "20260316", "20260317", "20260318",
		"20260319", "20260320", "20260321", "20260322",
	}},
	{Label: "Memorial Day", Dates: []caldate.Key{"20260523", "20260524", "20260525"}},
}

// Catalog returns the holiday catalog: the config's [[holidays]] tables when
// any are present, the built-in list otherwise. The result is a fresh copy.
// Each holiday's dates come back sorted and without duplicates.
func Catalog(cfg Config) ([]model.HolidayDefinition, error) {
	if len(cfg.Holidays) == 0 {
		return cloneCatalog(DefaultHolidays), nil
	}

	seen := make(map[string]struct{}, len(cfg.Holidays))
	out := make([]model.HolidayDefinition, 0, len(cfg.Holidays))
	for i, h := range cfg.Holidays {
		label := strings.TrimSpace(h.Label)
		if label == "" {
			return nil, fmt.Errorf("%w: entry %d has no label", ErrInvalidHoliday, i+1)
		}
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidHoliday, label)
		}
		seen[label] = struct{}{}

		def := model.HolidayDefinition{Label: label, Dates: make([]caldate.Key, 0, len(h.Dates))}
		for _, raw := range h.Dates {
			d, err := caldate.Parse(caldate.Key(strings.TrimSpace(raw)))
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidHoliday, label, err)
			}
			def.Dates = append(def.Dates, d.Key())
		}
		slices.Sort(def.Dates)
		def.Dates = slices.Compact(def.Dates)
		out = append(out, def)
	}
	return out, nil
}

// CatalogLabels returns the labels of catalog in order.
func CatalogLabels(catalog []model.HolidayDefinition) []string {
	labels := make([]string, len(catalog))
	for i, h := range catalog {
		labels[i] = h.Label
	}
	return labels
}

func cloneCatalog(src []model.HolidayDefinition) []model.HolidayDefinition {
	out := make([]model.HolidayDefinition, len(src))
	for i, h := range src {
		out[i] = model.HolidayDefinition{
			Label: h.Label,
			Dates: append([]caldate.Key(nil), h.Dates...),
		}
	}
	return out
}
