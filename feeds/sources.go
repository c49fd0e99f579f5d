package feeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source represents one feed to poll.
type Source struct {
	URL string `yaml:"url"`
}

// sourcesFile represents the structure of the feeds.yaml config file.
type sourcesFile struct {
	Feeds []Source `yaml:"feeds"`
}

// LoadSources loads the feed source list from a YAML file. Entries without a
// url are skipped rather than erroring; a file with no feeds key yields an
// empty list. A missing or unparseable file is an error.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed config: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feed config: %w", err)
	}

	sources := make([]Source, 0, len(file.Feeds))
	for _, s := range file.Feeds {
		if s.URL == "" {
			continue
		}
		sources = append(sources, s)
	}

	return sources, nil
}
