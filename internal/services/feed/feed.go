// Package feed generates the podcast RSS document for a course.
package feed

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"coursecast/internal/services"
)

// Episode is one feed item, usually one narrated lesson.
type Episode struct {
	Title       string
	Description string
	AudioPath   string
	AudioURL    string
	SizeBytes   int64
	Published   time.Time
}

// Settings carries channel-level feed fields.
type Settings struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Email       string
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string       `xml:"title"`
	Description string       `xml:"description"`
	GUID        string       `xml:"guid"`
	PubDate     string       `xml:"pubDate"`
	Enclosure   rssEnclosure `xml:"enclosure"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// Generate writes the RSS document for a course into outputDir and returns
// its path. Episodes without an explicit URL get one derived from the base
// URL and their file name.
func Generate(settings Settings, episodes []Episode, outputDir string) (string, error) {
	if strings.TrimSpace(settings.Title) == "" {
		return "", services.Wrap(services.ErrValidation, "xml_updated", "generate", "feed title required", nil)
	}

	channel := rssChannel{
		Title:         settings.Title,
		Link:          settings.BaseURL,
		Description:   settings.Description,
		LastBuildDate: time.Now().Format(time.RFC1123Z),
	}
	for _, episode := range episodes {
		url := episode.AudioURL
		if url == "" && settings.BaseURL != "" {
			url = strings.TrimSuffix(settings.BaseURL, "/") + "/" + filepath.Base(episode.AudioPath)
		}
		published := episode.Published
		if published.IsZero() {
			published = time.Now()
		}
		channel.Items = append(channel.Items, rssItem{
			Title:       episode.Title,
			Description: episode.Description,
			GUID:        url,
			PubDate:     published.Format(time.RFC1123Z),
			Enclosure: rssEnclosure{
				URL:    url,
				Length: episode.SizeBytes,
				Type:   "audio/mpeg",
			},
		})
	}

	doc := rssDoc{Version: "2.0", Channel: channel}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal feed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure xml directory: %w", err)
	}
	dest := filepath.Join(outputDir, "feed.xml")
	payload := append([]byte(xml.Header), data...)
	payload = append(payload, '\n')
	if err := os.WriteFile(dest, payload, 0o644); err != nil {
		return "", fmt.Errorf("write feed: %w", err)
	}
	return dest, nil
}
