package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Index course documents from a directory",
	Long: `Reads course documents (.txt files) from a directory and adds them
to the catalog and the vector index. Courses already in the catalog
are skipped, so re-running over the same directory is cheap.

With --watch the command keeps running and ingests new or changed
documents as they appear.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "keep watching the directory for new documents")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if ingestService == nil {
		if err := initIndex(); err != nil {
			return err
		}
	}

	if ingestWatch {
		cmd.Printf("Watching %s for course documents. Ctrl-C to stop.\n", dir)
		if err := ingestService.Watch(cmd.Context(), dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		return nil
	}

	report, err := ingestService.IngestDirectory(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", dir, err)
	}

	cmd.Printf("Added %d courses (%d chunks).\n", report.CoursesAdded, report.ChunksAdded)
	if report.Skipped > 0 {
		cmd.Printf("Skipped %d already indexed.\n", report.Skipped)
	}
	if report.Failed > 0 {
		cmd.Printf("Failed to process %d documents.\n", report.Failed)
	}
	return nil
}
