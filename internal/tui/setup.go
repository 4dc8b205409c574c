package tui

import (
	"errors"
	"math"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/config"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues are the answers collected by the setup form. Both the
// first-run wizard in the dashboard and the setup command fill them.
type SetupValues struct {
	Start     string
	End       string
	Total     string
	Remaining string
	Theme     string
	WeekStart string
	Holidays  []string
}

// NewSetupValues seeds the form from the current config and planner state.
func NewSetupValues(cfg config.Config, s model.PlannerState) SetupValues {
	weekStart := strings.ToLower(cfg.Calendar.WeekStart)
	if weekStart != "monday" {
		weekStart = "sunday"
	}
	return SetupValues{
		Start:     string(s.StartDate),
		End:       string(s.EndDate),
		Total:     s.TotalSwipes,
		Remaining: s.RemainingSwipes,
		Theme:     theme.ByName(cfg.Appearance.Theme).Name,
		WeekStart: weekStart,
		Holidays:  s.SelectedHolidays.Sorted(),
	}
}

// ApplyConfig copies the appearance and calendar answers into cfg.
func (v SetupValues) ApplyConfig(cfg *config.Config) {
	cfg.Appearance.Theme = v.Theme
	cfg.Calendar.WeekStart = v.WeekStart
}

// ApplyState copies the semester answers into s. Holidays outside the
// catalog are kept as they were, since the form cannot show them.
func (v SetupValues) ApplyState(s *model.PlannerState) {
	s.StartDate = caldate.Key(strings.TrimSpace(v.Start))
	s.EndDate = caldate.Key(strings.TrimSpace(v.End))
	s.TotalSwipes = strings.TrimSpace(v.Total)
	s.RemainingSwipes = strings.TrimSpace(v.Remaining)
	s.SelectedHolidays = model.NewStringSet(v.Holidays...)
}

// NewSetupForm builds the huh form that edits vals in place.
func NewSetupForm(vals *SetupValues, catalog []model.HolidayDefinition) *huh.Form {
	holidayOpts := make([]huh.Option[string], 0, len(catalog))
	chosen := model.NewStringSet(vals.Holidays...)
	for _, h := range catalog {
		opt := huh.NewOption(h.Label, h.Label).Selected(chosen.Has(h.Label))
		holidayOpts = append(holidayOpts, opt)
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to swipeplan").
				Description("Tell us about your meal plan. Everything can be changed later."),
			huh.NewInput().
				Title("First day of the semester").
				Description("YYYYMMDD").
				CharLimit(caldate.KeyLen).
				Validate(validateDate).
				Value(&vals.Start),
			huh.NewInput().
				Title("Last day of the semester").
				Description("YYYYMMDD").
				CharLimit(caldate.KeyLen).
				Validate(validateDate).
				Value(&vals.End),
			huh.NewInput().
				Title("Swipes in your plan").
				Validate(validateSwipes).
				Value(&vals.Total),
			huh.NewInput().
				Title("Swipes left right now").
				Validate(validateSwipes).
				Value(&vals.Remaining),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Holidays you will spend away from campus").
				Options(holidayOpts...).
				Value(&vals.Holidays),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewSelect[string]().
				Title("Weeks start on").
				Options(
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Monday", "monday"),
				).
				Value(&vals.WeekStart),
		),
	).WithShowHelp(true)
}

func validateDate(s string) error {
	_, err := caldate.Parse(caldate.Key(strings.TrimSpace(s)))
	return err
}

func validateSwipes(s string) error {
	if math.IsNaN(planner.ParseSwipes(s)) {
		return errors.New("enter a whole number of swipes")
	}
	return nil
}
