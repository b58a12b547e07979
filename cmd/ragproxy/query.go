package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RichardKnop/ragproxy"
)

var (
	queryStoreName   string
	queryMaxChunks   int
	queryTemperature float64
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a grounded question against the file search store",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryStoreName, "store", "", "store resource name (defaults to the configured store)")
	queryCmd.Flags().IntVar(&queryMaxChunks, "max-chunks", 0, "maximum number of grounding chunks")
	queryCmd.Flags().Float64Var(&queryTemperature, "temperature", -1, "generation temperature")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rp, err := buildProxy(ctx)
	if err != nil {
		return err
	}

	params := ragproxy.AskParams{
		StoreID:   queryStoreName,
		MaxChunks: queryMaxChunks,
	}
	if cmd.Flags().Changed("temperature") {
		params.Temperature = &queryTemperature
	}

	result, err := rp.Ask(ctx, args[0], params)
	if err != nil {
		return fmt.Errorf("asking question: %w", err)
	}

	cmd.Println(result.Answer)

	if len(result.Citations) == 0 {
		return nil
	}

	cmd.Println("--- Citations ---")
	for _, citation := range result.Citations {
		label := citation.Title
		if label == "" {
			label = citation.ChunkReference
		}
		cmd.Printf("- %s: %s\n", label, citation.URI)
	}

	return nil
}
