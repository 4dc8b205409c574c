package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/swipeplan/internal/caldate"
)

// writeList creates a file under dir and returns its path.
func writeList(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse_LinesCommasComments(t *testing.T) {
	res := Parse(strings.NewReader(strings.Join([]string{
		"# fall trips",
		"20251010",
		"20251017, 20251018 # weekend away",
		"",
		"  20251024\t20251010",
	}, "\n")))
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", res.Errors)
	}
	want := []caldate.Key{"20251010", "20251017", "20251018", "20251024"}
	if len(res.Keys) != len(want) {
		t.Fatalf("Keys = %v, want %v", res.Keys, want)
	}
	for i := range want {
		if res.Keys[i] != want[i] {
			t.Errorf("Keys[%d] = %s, want %s", i, res.Keys[i], want[i])
		}
	}
}

func TestParse_ReportsBadTokens(t *testing.T) {
	res := Parse(strings.NewReader("20251010\n2025-10-11,20250231\n20251012\n"))
	if len(res.Keys) != 2 {
		t.Errorf("Keys = %v, want 2 valid", res.Keys)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("Errors = %v, want 2", res.Errors)
	}
	if res.Errors[0].Line != 2 || res.Errors[0].Token != "2025-10-11" {
		t.Errorf("Errors[0] = %+v", res.Errors[0])
	}
	if !errors.Is(res.Errors[1], caldate.ErrInvalidDate) {
		t.Errorf("Errors[1] should wrap ErrInvalidDate, got %v", res.Errors[1].Err)
	}
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	res := Parse(strings.NewReader("\ufeff20250901\n20250902\n"))
	if len(res.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", res.Errors)
	}
	if len(res.Keys) != 2 || res.Keys[0] != "20250901" || res.Keys[1] != "20250902" {
		t.Errorf("Keys = %v, want [20250901 20250902]", res.Keys)
	}
}

func TestParseFile_Missing(t *testing.T) {
	res := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	if res.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseFile_ErrorsCarryPath(t *testing.T) {
	path := writeList(t, t.TempDir(), "trip.txt", "oops")
	res := ParseFile(path)
	if len(res.Errors) != 1 || res.Errors[0].Path != path {
		t.Fatalf("Errors = %v, want one error with path", res.Errors)
	}
	if !strings.HasPrefix(res.Errors[0].Error(), path+":1:") {
		t.Errorf("Error() = %q", res.Errors[0].Error())
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "b.txt", "20251010")
	writeList(t, dir, "a.dates", "20251011")
	writeList(t, dir, "notes.md", "20251012")
	writeList(t, dir, ".hidden/c.txt", "20251013")
	writeList(t, dir, "sub/d.csv", "20251014")

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	if got := strings.Join(names, ","); got != "a,b,d" {
		t.Errorf("names = %s, want a,b,d", got)
	}

	none, err := ScanDir(filepath.Join(dir, "missing"))
	if err != nil || none != nil {
		t.Errorf("ScanDir(missing) = %v, %v; want nil, nil", none, err)
	}
}

func TestParsePaths_MergesAndDedups(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "lists/one.txt", "20251010,20251011")
	writeList(t, dir, "lists/two.txt", "20251011\n20251012")
	extra := writeList(t, dir, "extra.txt", "20251012,20251013")

	res := ParsePaths(filepath.Join(dir, "lists"), extra)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	want := []caldate.Key{"20251010", "20251011", "20251012", "20251013"}
	if len(res.Keys) != len(want) {
		t.Fatalf("Keys = %v, want %v", res.Keys, want)
	}
	for i := range want {
		if res.Keys[i] != want[i] {
			t.Errorf("Keys[%d] = %s, want %s", i, res.Keys[i], want[i])
		}
	}
}
