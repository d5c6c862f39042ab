package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"betfast-props-scraper/internal/auth"
	"betfast-props-scraper/internal/browser"
	"betfast-props-scraper/internal/nav"
	"betfast-props-scraper/internal/scrape"
)

// Selectors bind every site-specific element the pipeline touches. When the
// portal shuffles its markup, the fix is an edit to this YAML, not to code.
type Selectors struct {
	Login      auth.LoginSelectors `yaml:"login"`
	Navigation []nav.Step          `yaml:"navigation"`
	Ready      browser.Selector    `yaml:"ready"`
	Table      scrape.TableSpec    `yaml:"table"`
}

func LoadSelectors(filePath string) (*Selectors, error) {
	if filePath == "" {
		return nil, fmt.Errorf("selectors file path is empty")
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("selectors file not found: %s: %w", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close selectors file: %v\n", closeErr)
		}
	}()

	var selectors Selectors
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(&selectors); err != nil {
		return nil, err
	}

	return &selectors, nil
}

// LoadSelectorsFile resolves the configured selectors path, relative paths
// being taken against the configs directory.
func (c *Config) LoadSelectorsFile() (*Selectors, error) {
	filePath := c.SelectorsFile
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join("configs", filePath)
	}

	return LoadSelectors(filePath)
}

func validateSelectors(s *Selectors) error {
	if s.Login.UsernameField.IsZero() {
		return fmt.Errorf("login.username_field is required")
	}
	if s.Login.PasswordField.IsZero() {
		return fmt.Errorf("login.password_field is required")
	}
	if s.Login.SubmitButton.IsZero() {
		return fmt.Errorf("login.submit_button is required")
	}
	if s.Login.Landing.IsZero() {
		return fmt.Errorf("login.landing is required")
	}
	if len(s.Navigation) == 0 {
		return fmt.Errorf("navigation must list at least one step")
	}
	for i, step := range s.Navigation {
		if step.Name == "" {
			return fmt.Errorf("navigation[%d].name is required", i)
		}
		if step.Selector.IsZero() {
			return fmt.Errorf("navigation[%d].selector is required", i)
		}
	}
	if s.Ready.IsZero() {
		return fmt.Errorf("ready is required")
	}
	if s.Table.Root.IsZero() {
		return fmt.Errorf("table.root is required")
	}
	if s.Table.RowQuery == "" {
		return fmt.Errorf("table.row_query is required")
	}
	if len(s.Table.Columns) == 0 {
		return fmt.Errorf("table.columns is required")
	}

	return nil
}
