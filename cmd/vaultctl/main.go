package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonclaudedotnet/vectorvault/pkg/core"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vaultctl",
	Short: "CLI tool for the multimodal vector store",
	Long:  `A command-line interface for storing and querying timestamped feature vectors in a SQLite database.`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new vector database",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		fmt.Printf("Vector database initialized at %s\n", dbPath)
		return nil
	},
}

// ingestFile is the JSON shape produced by the feature extractors:
// {"vectors": [{"timestamp": ..., "dense_vector": [...], "features": {...}}]}
type ingestFile struct {
	Vectors []ingestVector `json:"vectors"`
}

type ingestVector struct {
	Timestamp   float64        `json:"timestamp"`
	DenseVector []float64      `json:"dense_vector"`
	Vector      []float64      `json:"vector"`
	Features    map[string]any `json:"features"`
	Metadata    map[string]any `json:"metadata"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <vectors.json>",
	Short: "Ingest a JSON file of extracted feature vectors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceType, _ := cmd.Flags().GetString("source-type")
		sourceFile, _ := cmd.Flags().GetString("source-file")
		if sourceType == "" {
			return fmt.Errorf("--source-type is required")
		}
		if sourceFile == "" {
			sourceFile = args[0]
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		var input ingestFile
		if err := json.Unmarshal(data, &input); err != nil {
			return fmt.Errorf("invalid input JSON: %w", err)
		}

		obs := make([]core.Observation, 0, len(input.Vectors))
		for _, v := range input.Vectors {
			vector := v.DenseVector
			if vector == nil {
				vector = v.Vector
			}
			metadata := v.Features
			if metadata == nil {
				metadata = v.Metadata
			}
			obs = append(obs, core.Observation{
				Timestamp: v.Timestamp,
				Vector:    vector,
				Metadata:  metadata,
			})
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		count, err := store.StoreBatch(context.Background(), sourceType, sourceFile, obs)
		if err != nil {
			return fmt.Errorf("failed to store batch: %w", err)
		}

		fmt.Printf("Stored %d %s vectors from %s\n", count, sourceType, sourceFile)
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query records within a time range",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetFloat64("start")
		end, _ := cmd.Flags().GetFloat64("end")
		sourceType, _ := cmd.Flags().GetString("source-type")
		outputJSON, _ := cmd.Flags().GetBool("json")

		if !cmd.Flags().Changed("end") {
			end = math.Inf(1)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.QueryRange(context.Background(), start, end, sourceType)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}

		if outputJSON {
			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		for _, r := range records {
			fmt.Printf("%6d  %-10s %10.2fs  dim=%d  %s\n", r.ID, r.SourceType, r.Timestamp, len(r.Vector), r.SourceFile)
		}
		fmt.Printf("%d records\n", len(records))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-source-type statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputJSON, _ := cmd.Flags().GetBool("json")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Summarize(context.Background())
		if err != nil {
			return fmt.Errorf("summarize failed: %w", err)
		}

		if outputJSON {
			data, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Total vectors: %d\n", summary.TotalVectors)
		fmt.Printf("Duration: %.1f seconds\n", summary.Duration)

		types := make([]string, 0, len(summary.Sources))
		for sourceType := range summary.Sources {
			types = append(types, sourceType)
		}
		sort.Strings(types)

		for _, sourceType := range types {
			info := summary.Sources[sourceType]
			fmt.Printf("\n%s vectors:\n", sourceType)
			fmt.Printf("  Count: %d\n", info.Count)
			fmt.Printf("  Duration: %.1fs\n", info.Duration)
			fmt.Printf("  Time range: %.1fs - %.1fs\n", info.MinTimestamp, info.MaxTimestamp)
		}
		return nil
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Find moments similar to a target timestamp",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, _ := cmd.Flags().GetFloat64("at")
		window, _ := cmd.Flags().GetFloat64("window")
		sourceType, _ := cmd.Flags().GetString("source-type")
		outputJSON, _ := cmd.Flags().GetBool("json")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		moments, err := store.FindSimilar(context.Background(), at, window, sourceType)
		if err != nil {
			return fmt.Errorf("similarity search failed: %w", err)
		}

		if outputJSON {
			data, err := json.MarshalIndent(moments, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		for i, m := range moments {
			fmt.Printf("%2d. %10.1fs  similarity=%.3f\n", i+1, m.Timestamp, m.Similarity)
		}
		return nil
	},
}

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List recorded ingest batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputJSON, _ := cmd.Flags().GetBool("json")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		batches, err := store.Batches(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list batches: %w", err)
		}

		if outputJSON {
			data, err := json.MarshalIndent(batches, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		for _, b := range batches {
			fmt.Printf("%s  %-10s %6d records  %s\n", b.ID, b.SourceType, b.RecordCount, b.SourceFile)
		}
		return nil
	},
}

var rmBatchCmd = &cobra.Command{
	Use:   "rm-batch <batch-id>",
	Short: "Remove every record from one ingest batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteBatch(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete batch: %w", err)
		}

		fmt.Printf("Batch %s deleted\n", args[0])
		return nil
	},
}

func openStore() (*core.SQLiteStore, error) {
	config := core.DefaultConfig()
	config.Path = dbPath
	if verbose {
		config.Logger = core.NewStdLogger(core.LevelDebug)
	}

	store, err := core.NewWithConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	if err := store.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return store, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "vectorvault.db", "Path to the SQLite database file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	ingestCmd.Flags().String("source-type", "", "Source type tag (audio, visual, semantic, email, ...)")
	ingestCmd.Flags().String("source-file", "", "Originating artifact (defaults to the input file)")

	queryCmd.Flags().Float64("start", 0, "Range start in seconds (inclusive)")
	queryCmd.Flags().Float64("end", 0, "Range end in seconds (inclusive, unbounded if omitted)")
	queryCmd.Flags().String("source-type", "", "Filter to one source type")
	queryCmd.Flags().Bool("json", false, "Output as JSON")

	summaryCmd.Flags().Bool("json", false, "Output as JSON")

	similarCmd.Flags().Float64("at", 0, "Target timestamp in seconds")
	similarCmd.Flags().Float64("window", 30.0, "Temporal exclusion radius in seconds")
	similarCmd.Flags().String("source-type", "", "Filter to one source type")
	similarCmd.Flags().Bool("json", false, "Output as JSON")

	batchesCmd.Flags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(initCmd, ingestCmd, queryCmd, summaryCmd, similarCmd, batchesCmd, rmBatchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
