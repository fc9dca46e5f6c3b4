package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/brand-insights/internal/schemas"
	"github.com/jonathan/brand-insights/internal/types"
	"github.com/sirupsen/logrus"
)

// datasetNamespace scopes dataset version UUIDs.
var datasetNamespace = uuid.MustParse("6f1c7c2e-4b8e-5d8a-9a53-1f0e2c9b7d41")

// shareTolerance is how far the cluster share sum may drift from 100 before a warning is logged.
const shareTolerance = 2.0

var validate = validator.New()

// Load reads the seven documents from dir, validates them, and returns an immutable dataset.
// Any SchemaViolation aborts the load; nothing is computed from a partially valid directory.
func Load(dir string, roster types.Roster, log logrus.FieldLogger) (*types.Dataset, error) {
	if len(roster.Brands) != types.TrackedBrandCount {
		return nil, fmt.Errorf("roster must track exactly %d brands, got %d", types.TrackedBrandCount, len(roster.Brands))
	}

	raw := make(map[schemas.Document][]byte, len(schemas.Documents))
	for _, doc := range schemas.Documents {
		content, err := readDocument(dir, doc)
		if err != nil {
			return nil, err
		}
		raw[doc] = content
	}

	ds := &types.Dataset{
		Version:         Version(raw),
		Roster:          roster,
		SearchVolume:    &types.SearchVolume{},
		Trend:           &types.Trend{},
		KeywordClusters: &types.KeywordClusters{},
		Journey:         &types.ConsumerJourney{},
		AISov:           &types.AISov{},
		Sentiment:       &types.ReviewsSentiment{},
		Strategy:        &types.StrategyMatrix{},
	}

	targets := map[schemas.Document]any{
		schemas.SearchVolume:     ds.SearchVolume,
		schemas.Trend:            ds.Trend,
		schemas.KeywordClusters:  ds.KeywordClusters,
		schemas.ConsumerJourney:  ds.Journey,
		schemas.AISov:            ds.AISov,
		schemas.ReviewsSentiment: ds.Sentiment,
		schemas.StrategyMatrix:   ds.Strategy,
	}
	for _, doc := range schemas.Documents {
		if err := decodeDocument(doc, raw[doc], targets[doc]); err != nil {
			return nil, err
		}
	}

	if err := checkRosterCoverage(ds); err != nil {
		return nil, err
	}

	normalize(ds, log)

	log.WithFields(logrus.Fields{
		"version": ds.Version,
		"dir":     dir,
		"focal":   roster.Focal.Name,
	}).Info("dataset loaded")

	return ds, nil
}

func readDocument(dir string, doc schemas.Document) ([]byte, error) {
	path := filepath.Join(dir, doc.FileName())
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return content, nil
}

// decodeDocument runs the three boundary checks in order: JSON schema, typed decode, struct validation.
func decodeDocument(doc schemas.Document, content []byte, target any) error {
	if err := schemas.ValidateDocument(doc, content); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return &types.SchemaViolation{Source: doc.FileName(), Errors: ve.Errors}
		}
		return fmt.Errorf("failed to validate %s: %w", doc.FileName(), err)
	}

	if err := json.Unmarshal(content, target); err != nil {
		return &types.SchemaViolation{Source: doc.FileName(), Cause: err}
	}

	if err := validate.Struct(target); err != nil {
		return structViolation(doc.FileName(), err)
	}
	return nil
}

func structViolation(source string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &types.SchemaViolation{Source: source, Cause: err}
	}
	fieldErrs := make([]types.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, types.FieldError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed on '%s' (value %v)", fe.Tag(), fe.Value()),
		})
	}
	return &types.SchemaViolation{Source: source, Errors: fieldErrs}
}

// checkRosterCoverage enforces that every tracked brand appears in the two cross-brand ratio sources.
// SOS and AI SOV are only meaningful over the full five-brand set.
func checkRosterCoverage(ds *types.Dataset) error {
	var fieldErrs []types.FieldError
	for _, name := range ds.Roster.Names() {
		if _, ok := ds.SearchVolume.Current.Brands[name]; !ok {
			fieldErrs = append(fieldErrs, types.FieldError{
				Field:   "current.brands." + name,
				Message: "tracked brand missing from search volume",
			})
		}
	}
	if len(fieldErrs) > 0 {
		return &types.SchemaViolation{Source: schemas.SearchVolume.FileName(), Errors: fieldErrs}
	}

	for _, name := range ds.Roster.Names() {
		if _, ok := ds.AISov.SovScore.Brands[name]; !ok {
			fieldErrs = append(fieldErrs, types.FieldError{
				Field:   "sov_score.brands." + name,
				Message: "tracked brand missing from AI share of voice",
			})
		}
	}
	if len(fieldErrs) > 0 {
		return &types.SchemaViolation{Source: schemas.AISov.FileName(), Errors: fieldErrs}
	}
	return nil
}

// normalize applies the load-time derivations: fractional cluster shares and strategy tiers.
func normalize(ds *types.Dataset, log logrus.FieldLogger) {
	if ds.KeywordClusters.NormalizeShares() {
		log.WithField("source", schemas.KeywordClusters.FileName()).Debug("cluster shares were fractions; scaled to percent")
	}
	if n := len(ds.KeywordClusters.Clusters); n > 0 {
		if sum := ds.KeywordClusters.ShareSum(); math.Abs(sum-100) > shareTolerance {
			log.WithFields(logrus.Fields{
				"source":    schemas.KeywordClusters.FileName(),
				"share_sum": sum,
			}).Warn("cluster shares do not sum to 100")
		}
	}

	for i := range ds.Strategy.Items {
		item := &ds.Strategy.Items[i]
		item.Priority = types.DerivePriority(item.Impact, item.Feasibility)
	}
}

// Version derives a deterministic dataset identifier from the documents' bytes.
func Version(raw map[schemas.Document][]byte) string {
	var buf bytes.Buffer
	for _, doc := range schemas.Documents {
		buf.WriteString(string(doc))
		buf.WriteByte(0)
		buf.Write(raw[doc])
		buf.WriteByte(0)
	}
	return uuid.NewSHA1(datasetNamespace, buf.Bytes()).String()
}
