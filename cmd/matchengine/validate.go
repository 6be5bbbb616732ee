package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bapt252/Commitment--sub002/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check candidate and job offer JSON files against the bundled schemas",
	Long: "Check candidate and job offer JSON files against the bundled JSON Schemas before running a match. " +
		"Each file may hold a single record or an array of records.",
	RunE: runValidate,
}

var (
	validateCandidates []string
	validateJobs       []string
)

func init() {
	validateCmd.Flags().StringArrayVar(&validateCandidates, "candidate", nil, "Candidate JSON file to check (repeatable)")
	validateCmd.Flags().StringArrayVar(&validateJobs, "job", nil, "Job offer JSON file to check (repeatable)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if len(validateCandidates) == 0 && len(validateJobs) == 0 {
		return fmt.Errorf("nothing to validate; provide --candidate or --job files")
	}

	failed := 0
	check := func(schemaRelPath, file string) {
		schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
		if schemaPath == "" {
			fmt.Fprintf(os.Stderr, "FAIL  %s: schema %s not found; run from the repository root\n", file, schemaRelPath)
			failed++
			return
		}
		if err := schemas.ValidateRecords(schemaPath, file); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL  %s\n%v\n", file, err)
			failed++
			return
		}
		fmt.Fprintf(os.Stdout, "OK    %s\n", file)
	}

	for _, file := range validateCandidates {
		check(schemas.CandidateSchema, file)
	}
	for _, file := range validateJobs {
		check(schemas.JobOfferSchema, file)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}
