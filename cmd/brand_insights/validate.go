package main

import (
	"github.com/jonathan/brand-insights/internal/schemas"
	"github.com/jonathan/brand-insights/internal/types"
	"github.com/spf13/cobra"
)

// validationResult is the output of a successful validate run.
type validationResult struct {
	Valid     bool         `json:"valid"`
	Version   string       `json:"version"`
	Roster    types.Roster `json:"roster"`
	Documents []string     `json:"documents"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the input documents against their schemas",
	Long:  "Loads every input document, validates it against its JSON schema and the tracked roster, and prints the dataset version.",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	eng, err := a.engine()
	if err != nil {
		return err
	}

	docs := make([]string, 0, len(schemas.Documents))
	for _, d := range schemas.Documents {
		docs = append(docs, d.FileName())
	}
	return writeJSON(cmd, validationResult{
		Valid:     true,
		Version:   eng.Version(),
		Roster:    eng.Dataset().Roster,
		Documents: docs,
	})
}
