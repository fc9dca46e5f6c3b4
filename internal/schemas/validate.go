// Package schemas provides JSON Schema validation for the input datasets.
package schemas

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/jonathan/brand-insights/internal/types"
	schemafiles "github.com/jonathan/brand-insights/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Document names one of the seven input datasets.
type Document string

// Input documents, named after their file in the data directory.
const (
	SearchVolume     Document = "search-volume"
	Trend            Document = "trend"
	KeywordClusters  Document = "keyword-clusters"
	ConsumerJourney  Document = "consumer-journey"
	AISov            Document = "ai-sov"
	ReviewsSentiment Document = "reviews-sentiment"
	StrategyMatrix   Document = "strategy-matrix"
)

// Documents lists every input document in load order.
var Documents = []Document{
	SearchVolume,
	Trend,
	KeywordClusters,
	ConsumerJourney,
	AISov,
	ReviewsSentiment,
	StrategyMatrix,
}

// FileName returns the data-directory file name for the document.
func (d Document) FileName() string {
	return string(d) + ".json"
}

// SchemaFile returns the embedded schema file name for the document.
func (d Document) SchemaFile() string {
	return strings.ReplaceAll(string(d), "-", "_") + ".schema.json"
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []types.FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	compiledMu sync.Mutex
	compiled   = map[Document]*gojsonschema.Schema{}
)

// schemaFor compiles the embedded schema for doc once and caches it.
func schemaFor(doc Document) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[doc]; ok {
		return s, nil
	}

	raw, err := fs.ReadFile(schemafiles.FS, doc.SchemaFile())
	if err != nil {
		return nil, &SchemaLoadError{Path: doc.SchemaFile(), Message: "schema not embedded", Cause: err}
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Path: doc.SchemaFile(), Message: "invalid schema", Cause: err}
	}
	compiled[doc] = s
	return s, nil
}

// ValidateDocument validates raw JSON content against the embedded schema for doc.
// A document that is not valid JSON is reported as a ValidationError at (root).
func ValidateDocument(doc Document, content []byte) error {
	s, err := schemaFor(doc)
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return &ValidationError{Errors: []types.FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]types.FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, types.FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
