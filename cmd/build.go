package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"clustrace/internal/decode"
	"clustrace/internal/ingest"
	"clustrace/internal/netgraph"
	"clustrace/internal/report"
)

var (
	buildInput     string
	buildThreshold float64
	buildOutput    string
	buildFormat    string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a transmission network from pairwise distances",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := report.ParseFormat(buildFormat)
		if err != nil {
			return err
		}

		in, err := os.Open(buildInput)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer in.Close()

		var rows ingest.RowReader
		switch strings.ToLower(filepath.Ext(buildInput)) {
		case ".json":
			rows, err = decode.JSONRows(in)
			if err != nil {
				return err
			}
		default:
			rows = decode.CSVReader(in)
		}

		g, err := ingest.Ingest(rows, buildThreshold)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", buildInput, err)
		}

		doc, err := report.Render(g, f)
		if err != nil {
			return err
		}

		if err := os.WriteFile(buildOutput, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		printBuildSummary(g)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildInput, "input", "", "Path to a CSV or JSON distance file")
	buildCmd.Flags().Float64Var(&buildThreshold, "threshold", 0, "Distance admission threshold")
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "Destination for the rendered JSON document")
	buildCmd.Flags().StringVar(&buildFormat, "format", "plain", "Output layout: plain or object")
	buildCmd.MarkFlagRequired("input")
	buildCmd.MarkFlagRequired("threshold")
	buildCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(buildCmd)
}

func printBuildSummary(g *netgraph.Graph) {
	singletons := 0
	for _, n := range g.Nodes() {
		if n.Cluster == 0 {
			singletons++
		}
	}
	fmt.Printf("Built network: %s nodes, %s edges, %s clusters (%s singletons)\n",
		humanize.Comma(int64(g.NodeCount())),
		humanize.Comma(int64(g.EdgeCount())),
		humanize.Comma(int64(g.ClusterCount())),
		humanize.Comma(int64(singletons)),
	)
}
