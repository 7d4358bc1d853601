package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles replaces inline prompt overrides with the content of
// their *File counterparts
func (c *Config) loadPromptsFromFiles() error {
	prompts := &c.AI.CustomPrompts
	targets := []struct {
		name   string
		file   string
		target *string
	}{
		{"system", prompts.SystemFile, &prompts.System},
		{"summary", prompts.SummaryFile, &prompts.Summary},
		{"experience", prompts.ExperienceFile, &prompts.Experience},
	}

	loaded := 0
	for _, t := range targets {
		if t.file == "" {
			continue
		}
		content, err := loadPromptFromFile(t.file, t.name)
		if err != nil {
			return err
		}
		*t.target = content
		loaded++
	}

	if loaded == 0 {
		log.Println("[CONFIG] No custom prompt files configured - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded from files: %d", loaded)
	}
	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, name string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s prompt file '%s': %w", name, filePath, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s prompt file '%s': %w", name, absPath, err)
	}

	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s prompt file '%s' is empty", name, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s prompt from file: %s (%d characters)",
		name, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, name string) {
		if filePath == "" {
			return
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s prompt: %s", name, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s prompt file not found: %s", name, absPath))
		}
	}

	validateFile(c.AI.CustomPrompts.SystemFile, "system")
	validateFile(c.AI.CustomPrompts.SummaryFile, "summary")
	validateFile(c.AI.CustomPrompts.ExperienceFile, "experience")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}
