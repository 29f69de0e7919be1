// Package main provides the docsearch CLI entry point.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docsearch/docsearch-go/internal/logging"
	"github.com/docsearch/docsearch-go/pkg/search"
	"github.com/docsearch/docsearch-go/pkg/types"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var (
	flagConfig    string
	flagStopWords string
	flagDocs      string
	flagPageSize  int
	flagParallel  bool
	flagDedupe    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "docsearch",
		Short: "docsearch - in-memory TF-IDF document search",
		Long: `docsearch is an in-memory inverted-index search engine over short
text documents. It ranks with TF-IDF, supports minus-words for exclusion,
stop-word filtering and parallel query execution.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("docsearch v%s (%s)\n", version, commit)
		},
	})

	queryCmd := &cobra.Command{
		Use:   "query [flags] QUERY...",
		Short: "Ingest documents and run ranked queries",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runQuery,
	}
	queryCmd.Flags().StringVar(&flagConfig, "config", "", "path to a YAML config file")
	queryCmd.Flags().StringVar(&flagStopWords, "stop-words", "", "space-separated stop words")
	queryCmd.Flags().StringVar(&flagDocs, "docs", "", "path to a JSONL document file")
	queryCmd.Flags().IntVar(&flagPageSize, "page-size", 5, "results per printed page")
	queryCmd.Flags().BoolVar(&flagParallel, "parallel", false, "rank queries with the parallel strategy")
	queryCmd.Flags().BoolVar(&flagDedupe, "dedupe", false, "remove duplicate documents before querying")
	rootCmd.AddCommand(queryCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// docRecord is one line of the JSONL document file.
type docRecord struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Status  string `json:"status"`
	Ratings []int  `json:"ratings"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := types.DefaultConfig()
	if flagConfig != "" {
		loaded, err := types.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.With(zap.String("run_id", uuid.NewString()))

	srv, err := search.New(flagStopWords, search.WithConfig(cfg), search.WithLogger(log))
	if err != nil {
		return err
	}

	if flagDocs != "" {
		n, err := ingest(srv, flagDocs)
		if err != nil {
			return err
		}
		log.Info("documents ingested", zap.Int("count", n))
	}

	if flagDedupe {
		removed := search.RemoveDuplicates(srv)
		log.Info("duplicates removed", zap.Int("count", len(removed)))
	}

	queue := search.NewRequestQueue(srv)
	for _, raw := range args {
		var docs []types.Document
		if flagParallel {
			docs, err = srv.FindTopDocumentsExec(search.Parallel, raw, nil)
		} else {
			docs, err = queue.AddFindRequest(raw)
		}
		if err != nil {
			return err
		}

		fmt.Printf("query: %s\n", raw)
		for i, page := range search.Paginate(docs, flagPageSize) {
			fmt.Printf("  page %d\n", i+1)
			for _, doc := range page {
				fmt.Printf("    %s\n", doc)
			}
		}
		if len(docs) == 0 {
			fmt.Println("  no results")
		}
	}

	fmt.Printf("documents: %d\n", srv.DocumentCount())
	if !flagParallel {
		fmt.Printf("requests without results: %d\n", queue.NoResultRequests())
	}
	return nil
}

// ingest loads JSONL documents into the server and returns how many were added.
func ingest(srv *search.Server, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	added := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec docRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return added, fmt.Errorf("parse document line: %w", err)
		}
		status := types.StatusActual
		if rec.Status != "" {
			status, err = types.ParseDocumentStatus(rec.Status)
			if err != nil {
				return added, err
			}
		}
		if err := srv.AddDocument(rec.ID, rec.Text, status, rec.Ratings); err != nil {
			return added, err
		}
		added++
	}
	if err := scanner.Err(); err != nil {
		return added, err
	}
	return added, nil
}
