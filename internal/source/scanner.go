package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// listExts are the extensions ScanDir treats as date lists.
var listExts = map[string]bool{
	".txt":   true,
	".dates": true,
	".csv":   true,
}

// ScanDir walks dir and returns every date list in it, sorted by path.
// A missing directory yields no files and no error.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !listExts[ext] {
			return nil
		}
		files = append(files, DiscoveredFile{
			Path: path,
			Name: strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// ParsePaths parses every path, expanding directories with ScanDir, and
// merges the results in order. Duplicate keys across files collapse.
func ParsePaths(paths ...string) ParseResult {
	var merged ParseResult
	seen := make(map[string]struct{})

	add := func(res ParseResult) {
		for _, k := range res.Keys {
			if _, dup := seen[string(k)]; dup {
				continue
			}
			seen[string(k)] = struct{}{}
			merged.Keys = append(merged.Keys, k)
		}
		merged.Errors = append(merged.Errors, res.Errors...)
		if merged.Err == nil {
			merged.Err = res.Err
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			files, err := ScanDir(p)
			if err != nil {
				add(ParseResult{Err: err})
				continue
			}
			for _, f := range files {
				add(ParseFile(f.Path))
			}
			continue
		}
		add(ParseFile(p))
	}
	return merged
}
