package scraper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSelectors reads selectors from a YAML file on top of DefaultSelectors.
func LoadSelectors(filePath string) (*Selectors, error) {
	if filePath == "" {
		return nil, fmt.Errorf("selectors file path is empty")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() { _ = file.Close() }()

	selectors := DefaultSelectors()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(selectors); err != nil {
		return nil, err
	}

	return selectors, nil
}

// validateSelectors checks that the minimum selector set is present.
func validateSelectors(s *Selectors) error {
	if s.CardSelectors == "" {
		return fmt.Errorf("card_selectors is required")
	}
	if len(s.TitleSelectors) == 0 {
		return fmt.Errorf("title_selectors is required")
	}
	if len(s.URLSelectors) == 0 {
		return fmt.Errorf("url_selectors is required")
	}
	if len(s.DateSelectors) == 0 {
		return fmt.Errorf("date_selectors is required")
	}
	if s.DetailContainer == "" {
		return fmt.Errorf("detail_container is required")
	}
	return nil
}
