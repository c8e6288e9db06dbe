// Package timestamps extracts chapter markers from processed markdown.
//
// Processed lesson files carry headings or lines prefixed with an
// [HH:MM:SS] marker; the extractor collects them into a JSON timestamp file
// consumed by the feed generator.
package timestamps

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"coursecast/internal/services"
)

// Entry is one chapter marker.
type Entry struct {
	Time  string `json:"time"`
	Title string `json:"title"`
}

// markerPattern matches lines like "[12:34] Title" or "[1:02:34] Title".
var markerPattern = regexp.MustCompile(`^\s*\[(\d{1,2}:)?\d{1,2}:\d{2}\]\s*(.*)`)

// timePattern extracts the bracketed time itself.
var timePattern = regexp.MustCompile(`\[((\d{1,2}:)?\d{1,2}:\d{2})\]`)

// Extract parses chapter markers from a processed markdown file.
func Extract(processedPath string) ([]Entry, error) {
	file, err := os.Open(processedPath)
	if err != nil {
		return nil, fmt.Errorf("open processed file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !markerPattern.MatchString(line) {
			continue
		}
		timeMatch := timePattern.FindStringSubmatch(line)
		if timeMatch == nil {
			continue
		}
		title := strings.TrimSpace(timePattern.ReplaceAllString(line, ""))
		title = strings.TrimLeft(title, "#- ")
		entries = append(entries, Entry{Time: normalizeTime(timeMatch[1]), Title: title})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan processed file: %w", err)
	}
	return entries, nil
}

// Generate extracts markers from a processed file and writes them as a JSON
// timestamp file, returning its path. A file without markers yields a single
// entry covering the whole lesson so downstream steps always have a chapter
// list to work with.
func Generate(processedPath, outputDir string) (string, error) {
	entries, err := Extract(processedPath)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "timestamps_generated", "extract", filepath.Base(processedPath), err)
	}
	if len(entries) == 0 {
		base := strings.TrimSuffix(filepath.Base(processedPath), filepath.Ext(processedPath))
		entries = []Entry{{Time: "00:00:00", Title: base}}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure timestamps directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(processedPath), filepath.Ext(processedPath))
	dest := filepath.Join(outputDir, base+".json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal timestamps: %w", err)
	}
	if err := os.WriteFile(dest, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write timestamp file: %w", err)
	}
	return dest, nil
}

// normalizeTime pads a marker to HH:MM:SS.
func normalizeTime(value string) string {
	parts := strings.Split(value, ":")
	for len(parts) < 3 {
		parts = append([]string{"0"}, parts...)
	}
	for i, part := range parts {
		if len(part) < 2 {
			parts[i] = "0" + part
		}
	}
	return strings.Join(parts, ":")
}
