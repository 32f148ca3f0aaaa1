package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clustrace/internal/annotate"
)

var (
	annotateNetwork    string
	annotateAttributes string
	annotateSchema     string
	annotateOutput     string
	annotateIDField    string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Attach per-patient attributes and a schema to a network document",
	RunE: func(cmd *cobra.Command, args []string) error {
		networkJSON, err := os.ReadFile(annotateNetwork)
		if err != nil {
			return fmt.Errorf("reading network document: %w", err)
		}
		attributesJSON, err := os.ReadFile(annotateAttributes)
		if err != nil {
			return fmt.Errorf("reading attributes: %w", err)
		}
		schemaJSON, err := os.ReadFile(annotateSchema)
		if err != nil {
			return fmt.Errorf("reading schema: %w", err)
		}

		out, err := annotate.Annotate(string(networkJSON), string(attributesJSON), string(schemaJSON), annotateIDField)
		if err != nil {
			return err
		}

		if err := os.WriteFile(annotateOutput, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Printf("Annotated network written to %s\n", annotateOutput)
		return nil
	},
}

func init() {
	annotateCmd.Flags().StringVar(&annotateNetwork, "network", "", "Path to a trace_results JSON document")
	annotateCmd.Flags().StringVar(&annotateAttributes, "attributes", "", "Path to a JSON array of attribute records")
	annotateCmd.Flags().StringVar(&annotateSchema, "schema", "", "Path to a JSON attribute schema")
	annotateCmd.Flags().StringVar(&annotateOutput, "output", "", "Destination for the annotated document")
	annotateCmd.Flags().StringVar(&annotateIDField, "id-field", "", `Patient-ID key in attribute records (default "ehars_uid")`)
	annotateCmd.MarkFlagRequired("network")
	annotateCmd.MarkFlagRequired("attributes")
	annotateCmd.MarkFlagRequired("schema")
	annotateCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(annotateCmd)
}
