package common

import (
	"context"

	"resumebuilder/internal/errors"
	"resumebuilder/internal/resume"
)

// DocumentLoader returns the persisted document
type DocumentLoader func(ctx context.Context) (resume.Document, error)

// ProduceFunc derives the command output from a document
type ProduceFunc func(doc resume.Document) (any, error)

// RunDocumentCommand encapsulates the common logic of commands that read a
// document from an optional file argument, or from the store when none is
// given, and print something derived from it.
func RunDocumentCommand(
	ctx context.Context,
	logger *errors.Logger,
	out *OutputHandler,
	cmdConfig CommandConfig,
	args []string,
	load DocumentLoader,
	produce ProduceFunc,
) error {
	var doc resume.Document
	var err error
	if len(args) > 0 {
		doc, err = NewFileProcessor(logger).ReadDocument(args[0])
	} else {
		doc, err = load(ctx)
	}
	if err != nil {
		return err
	}

	result, err := produce(doc)
	if err != nil {
		return err
	}
	return out.HandleOutput(result, cmdConfig)
}
