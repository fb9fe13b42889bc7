package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/core/services"
	"github.com/custodia-labs/medrag-cli/internal/logger"
	"github.com/custodia-labs/medrag-cli/internal/pipeline"
)

var (
	ingestRecreate bool
	ingestWatch    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Index documents into the vector store",
	Long: `Processes documents and indexes them for retrieval.
Paths may be files or directories; directories are walked recursively
for .txt and .md files. With --watch, directories are monitored and
changed files are re-ingested until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestRecreate, "recreate", false, "drop and recreate the collection first")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "keep watching directories and re-ingest changed files")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ingest, err := newIngestService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if ingestRecreate {
		vector, err := res.vectorIndex()
		if err != nil {
			return err
		}
		cmd.Println("Dropping existing collection...")
		if err := vector.Drop(ctx); err != nil {
			return fmt.Errorf("drop collection: %w", err)
		}
	}

	if err := ingest.EnsureCollection(ctx); err != nil {
		return err
	}

	files, err := collectDocumentFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 && !ingestWatch {
		cmd.Println("No documents found.")
		return nil
	}

	if len(files) > 0 {
		if err := ingestFiles(ctx, cmd, ingest, files); err != nil {
			return err
		}
	}

	if ingestWatch {
		return watchAndIngest(ctx, cmd, ingest, args)
	}
	return nil
}

// ingestFiles indexes the given files with a progress bar.
func ingestFiles(ctx context.Context, cmd *cobra.Command, ingest *services.IngestService, files []string) error {
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	totalChunks := 0
	failures := 0
	for _, file := range files {
		chunks, err := ingestFile(ctx, ingest, file)
		if err != nil {
			logger.Warn("skipping %s: %v", file, err)
			failures++
		} else {
			totalChunks += chunks
		}
		_ = bar.Add(1)
	}

	cmd.Printf("Indexed %d chunks from %d files", totalChunks, len(files)-failures)
	if failures > 0 {
		cmd.Printf(" (%d failed)", failures)
	}
	cmd.Println()
	return nil
}

// ingestFile reads, decodes and indexes a single file.
func ingestFile(ctx context.Context, ingest *services.IngestService, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	raw := domain.RawDocument{
		Content: pipeline.DecodeText(content),
		Metadata: map[string]any{
			"source": filepath.Base(path),
			"path":   path,
		},
	}
	return ingest.IngestDocument(ctx, raw)
}

// collectDocumentFiles expands paths into the list of ingestable files.
// Directories are walked recursively; only .txt and .md files qualify.
func collectDocumentFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isDocumentFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}
	return files, nil
}

// isDocumentFile reports whether the path has an ingestable extension.
func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}

// watchAndIngest monitors the given paths and re-ingests documents as
// they are created or modified, until the process is interrupted.
// Events are debounced because editors produce bursts of writes for a
// single save.
func watchAndIngest(ctx context.Context, cmd *cobra.Command, ingest *services.IngestService, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		watchPath := path
		if !info.IsDir() {
			watchPath = filepath.Dir(path)
		}
		if err := watcher.Add(watchPath); err != nil {
			return fmt.Errorf("watching %s: %w", watchPath, err)
		}
		logger.Debug("Watching %s", watchPath)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	cmd.Println("Watching for changes (Ctrl+C to stop)...")

	const debounce = 500 * time.Millisecond
	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerCh <-chan time.Time // nil until the first event

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isDocumentFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			for path := range pending {
				chunks, err := ingestFile(ctx, ingest, path)
				if err != nil {
					logger.Warn("re-ingest %s: %v", path, err)
					continue
				}
				cmd.Printf("Re-indexed %s (%d chunks)\n", path, chunks)
			}
			pending = make(map[string]struct{})
			timerCh = nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-sigCh:
			cmd.Println("\nStopping watch.")
			return nil

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
