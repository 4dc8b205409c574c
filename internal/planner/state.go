package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/model"
)

// StateKey is the fixed identifier the planner state is stored under.
const StateKey = "meal_swipe_local_save"

// StateStore persists opaque blobs by key. Load returns nil, nil for a
// missing key.
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Defaults are the values used for any state field that is missing or unreadable.
type Defaults struct {
	StartDate       caldate.Key
	EndDate         caldate.Key
	TotalSwipes     string
	RemainingSwipes string
}

// BuiltinDefaults are used when the config does not provide any.
var BuiltinDefaults = Defaults{
	StartDate:       "20250824",
	EndDate:         "20251222",
	TotalSwipes:     "283",
	RemainingSwipes: "50",
}

// DefaultState returns a fresh state with every catalog holiday selected.
func DefaultState(def Defaults, catalog []model.HolidayDefinition) model.PlannerState {
	selected := make(model.StringSet, len(catalog))
	for _, h := range catalog {
		selected[h.Label] = struct{}{}
	}
	return model.PlannerState{
		StartDate:        def.StartDate,
		EndDate:          def.EndDate,
		TotalSwipes:      def.TotalSwipes,
		RemainingSwipes:  def.RemainingSwipes,
		SelectedHolidays: selected,
		CustomDates:      make(model.KeySet),
	}
}

// savedState is the persisted blob layout.
type savedState struct {
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	TotalMeal        string   `json:"totalMeal"`
	RemainMeal       string   `json:"remainMeal"`
	SelectedHolidays []string `json:"selectedHolidays"`
	CustomDates      []string `json:"customDates"`
}

// EncodeState serializes s with sorted arrays so equal states encode equally.
func EncodeState(s model.PlannerState) ([]byte, error) {
	out := savedState{
		StartDate:        string(s.StartDate),
		EndDate:          string(s.EndDate),
		TotalMeal:        s.TotalSwipes,
		RemainMeal:       s.RemainingSwipes,
		SelectedHolidays: s.SelectedHolidays.Sorted(),
		CustomDates:      make([]string, 0, len(s.CustomDates)),
	}
	for _, k := range s.CustomDates.Sorted() {
		out.CustomDates = append(out.CustomDates, string(k))
	}
	return json.Marshal(out)
}

// DecodeState reads a persisted blob. Every field that is missing, empty or
// of the wrong type falls back to its default independently. A blob that is
// not a JSON object yields the full default state and a non-nil error the
// caller may report; the returned state is always usable.
func DecodeState(blob []byte, def Defaults, catalog []model.HolidayDefinition) (model.PlannerState, error) {
	s := DefaultState(def, catalog)
	if len(blob) == 0 {
		return s, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return s, fmt.Errorf("decoding saved state: %w", err)
	}
	if raw == nil {
		return s, errors.New("decoding saved state: not an object")
	}

	if v, ok := decodeText(raw["startDate"]); ok {
		s.StartDate = caldate.Key(v)
	}
	if v, ok := decodeText(raw["endDate"]); ok {
		s.EndDate = caldate.Key(v)
	}
	if v, ok := decodeText(raw["totalMeal"]); ok {
		s.TotalSwipes = v
	}
	if v, ok := decodeText(raw["remainMeal"]); ok {
		s.RemainingSwipes = v
	}

	// "selected" is the key older saves used.
	selRaw, ok := raw["selectedHolidays"]
	if !ok {
		selRaw = raw["selected"]
	}
	if labels, ok := decodeList(selRaw); ok {
		s.SelectedHolidays = model.NewStringSet(labels...)
	}

	if dates, ok := decodeList(raw["customDates"]); ok {
		for _, d := range dates {
			if parsed, err := caldate.Parse(caldate.Key(d)); err == nil {
				s.CustomDates[parsed.Key()] = struct{}{}
			}
		}
	}

	return s, nil
}

// decodeText accepts a non-empty JSON string or a JSON number.
func decodeText(msg json.RawMessage) (string, bool) {
	if len(msg) == 0 {
		return "", false
	}
	var str string
	if err := json.Unmarshal(msg, &str); err == nil {
		return str, str != ""
	}
	var num json.Number
	if err := json.Unmarshal(msg, &num); err == nil {
		if i, err := num.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		return num.String(), true
	}
	return "", false
}

func decodeList(msg json.RawMessage) ([]string, bool) {
	if len(msg) == 0 {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal(msg, &list); err != nil || list == nil {
		return nil, false
	}
	return list, true
}

// LoadState reads the saved state from store. Read and decode failures are
// recovered by falling back to defaults; the returned error only describes
// what was recovered from.
func LoadState(ctx context.Context, store StateStore, def Defaults, catalog []model.HolidayDefinition) (model.PlannerState, error) {
	blob, err := store.Load(ctx, StateKey)
	if err != nil {
		return DefaultState(def, catalog), fmt.Errorf("reading saved state: %w", err)
	}
	return DecodeState(blob, def, catalog)
}

// SaveState writes s to store under StateKey.
func SaveState(ctx context.Context, store StateStore, s model.PlannerState) error {
	blob, err := EncodeState(s)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return store.Save(ctx, StateKey, blob)
}
