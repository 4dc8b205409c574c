package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/store"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState(BuiltinDefaults, testCatalog)
	if s.StartDate != "20250824" || s.EndDate != "20251222" {
		t.Errorf("range = %s-%s", s.StartDate, s.EndDate)
	}
	if s.TotalSwipes != "283" || s.RemainingSwipes != "50" {
		t.Errorf("swipes = %s/%s, want 283/50", s.TotalSwipes, s.RemainingSwipes)
	}
	if len(s.SelectedHolidays) != len(testCatalog) {
		t.Errorf("selected = %v, want every catalog label", s.SelectedHolidays.Sorted())
	}
	if s.CustomDates == nil || len(s.CustomDates) != 0 {
		t.Errorf("CustomDates = %v, want empty non-nil", s.CustomDates)
	}
}

func TestEncodeDecodeState(t *testing.T) {
	s := DefaultState(BuiltinDefaults, testCatalog)
	s.StartDate = "20260112"
	s.RemainingSwipes = "41"
	s.ToggleHoliday("Thanksgiving")
	_, _ = s.ToggleCustomDate("20260201")

	blob, err := EncodeState(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"startDate"`, `"endDate"`, `"totalMeal"`, `"remainMeal"`, `"selectedHolidays"`, `"customDates"`} {
		if !strings.Contains(string(blob), key) {
			t.Errorf("encoded blob %s missing %s", blob, key)
		}
	}

	got, err := DecodeState(blob, BuiltinDefaults, testCatalog)
	if err != nil {
		t.Fatal(err)
	}
	if got.StartDate != "20260112" || got.RemainingSwipes != "41" {
		t.Errorf("decoded = %+v", got)
	}
	if got.SelectedHolidays.Has("Thanksgiving") || !got.SelectedHolidays.Has("Labor Day") {
		t.Errorf("selected = %v", got.SelectedHolidays.Sorted())
	}
	if !got.CustomDates.Has("20260201") || len(got.CustomDates) != 1 {
		t.Errorf("custom = %v", got.CustomDates.Sorted())
	}
}

func TestDecodeState_EmptySelectionIsKept(t *testing.T) {
	s := DefaultState(BuiltinDefaults, testCatalog)
	s.SelectedHolidays = model.NewStringSet()
	blob, err := EncodeState(s)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := DecodeState(blob, BuiltinDefaults, testCatalog)
	if len(got.SelectedHolidays) != 0 {
		t.Fatalf("selected = %v, want empty", got.SelectedHolidays.Sorted())
	}
}

func TestDecodeState_PerFieldFallback(t *testing.T) {
	blob := []byte(`{"startDate":"","endDate":20251201,"totalMeal":300,"remainMeal":["x"],"selected":["Labor Day"],"customDates":["20251003","garbage"]}`)
	got, err := DecodeState(blob, BuiltinDefaults, testCatalog)
	if err != nil {
		t.Fatal(err)
	}
	if got.StartDate != BuiltinDefaults.StartDate {
		t.Errorf("StartDate = %q, want default", got.StartDate)
	}
	if got.EndDate != "20251201" {
		t.Errorf("EndDate = %q, want 20251201 from number", got.EndDate)
	}
	if got.TotalSwipes != "300" {
		t.Errorf("TotalSwipes = %q, want 300", got.TotalSwipes)
	}
	if got.RemainingSwipes != BuiltinDefaults.RemainingSwipes {
		t.Errorf("RemainingSwipes = %q, want default", got.RemainingSwipes)
	}
	if len(got.SelectedHolidays) != 1 || !got.SelectedHolidays.Has("Labor Day") {
		t.Errorf("legacy selected = %v, want [Labor Day]", got.SelectedHolidays.Sorted())
	}
	if len(got.CustomDates) != 1 || !got.CustomDates.Has("20251003") {
		t.Errorf("custom = %v, want [20251003]", got.CustomDates.Sorted())
	}
}

func TestDecodeState_Garbage(t *testing.T) {
	for _, blob := range []string{"not json", "[1,2]", "null"} {
		got, err := DecodeState([]byte(blob), BuiltinDefaults, testCatalog)
		if err == nil {
			t.Errorf("DecodeState(%q) err = nil, want error", blob)
		}
		if got.StartDate != BuiltinDefaults.StartDate || len(got.SelectedHolidays) != len(testCatalog) {
			t.Errorf("DecodeState(%q) did not fall back to defaults: %+v", blob, got)
		}
	}
}

type failingStore struct{ err error }

func (f failingStore) Load(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Save(context.Context, string, []byte) error  { return f.err }

func TestLoadSaveState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	s, err := LoadState(ctx, kv, BuiltinDefaults, testCatalog)
	if err != nil {
		t.Fatalf("LoadState on empty store: %v", err)
	}
	s.TotalSwipes = "200"
	if err := SaveState(ctx, kv, s); err != nil {
		t.Fatal(err)
	}

	again, err := LoadState(ctx, kv, BuiltinDefaults, testCatalog)
	if err != nil {
		t.Fatal(err)
	}
	if again.TotalSwipes != "200" {
		t.Errorf("TotalSwipes = %q, want 200", again.TotalSwipes)
	}

	boom := errors.New("boom")
	got, err := LoadState(ctx, failingStore{boom}, BuiltinDefaults, testCatalog)
	if !errors.Is(err, boom) {
		t.Errorf("LoadState err = %v, want boom", err)
	}
	if got.StartDate != BuiltinDefaults.StartDate {
		t.Error("LoadState failure should fall back to defaults")
	}
	if err := SaveState(ctx, failingStore{boom}, s); !errors.Is(err, boom) {
		t.Errorf("SaveState err = %v, want boom", err)
	}
}
