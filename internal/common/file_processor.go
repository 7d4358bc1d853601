package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"resumebuilder/internal/errors"
	"resumebuilder/internal/resume"
	"resumebuilder/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	if logger == nil {
		logger = errors.Discard()
	}
	return &FileProcessor{logger: logger}
}

// ReadFile reads content from a file with proper error handling
func (fp *FileProcessor) ReadFile(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}

	return content, nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}

// ReadDocument reads, schema-checks and validates a document file. YAML
// files are accepted and checked against the same schema as JSON.
func (fp *FileProcessor) ReadDocument(filename string) (resume.Document, error) {
	if err := utils.ValidateInputFile(filename); err != nil {
		return resume.Document{}, errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	format, err := utils.DocumentFormatOf(filename)
	if err != nil {
		return resume.Document{}, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Cannot import %s", filename), err)
	}

	content, err := fp.ReadFile(filename)
	if err != nil {
		return resume.Document{}, err
	}
	fp.logger.Debug("Read document file",
		"filename", filename,
		"format", format,
		"size", utils.FormatFileSize(int64(len(content))))

	if format == utils.FormatYAML {
		if content, err = yamlToJSON(content); err != nil {
			return resume.Document{}, errors.NewValidationError(errors.ErrCodeDocumentInvalid,
				fmt.Sprintf("Invalid YAML in %s", filename), err)
		}
	}

	doc, err := resume.Decode(content)
	if err == nil {
		err = resume.Validate(doc)
	}
	if err != nil {
		return resume.Document{}, errors.NewValidationError(errors.ErrCodeDocumentInvalid,
			fmt.Sprintf("Invalid document %s", filename), err)
	}
	return doc, nil
}

func yamlToJSON(content []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, err
	}
	var value any
	if root.Kind != 0 {
		retagScalars(&root, "")
		if err := root.Decode(&value); err != nil {
			return nil, err
		}
	}
	return json.Marshal(value)
}

// retagScalars marks every non-null scalar as a string so that values such
// as 3.8, 5550100 or 2020-01-15 keep their written form. The "current" flag
// is the only boolean field and keeps its resolved type.
func retagScalars(node *yaml.Node, key string) {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			retagScalars(child, key)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			retagScalars(node.Content[i+1], node.Content[i].Value)
		}
	case yaml.ScalarNode:
		if key != "current" && node.Tag != "!!null" {
			node.Tag = "!!str"
		}
	}
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
