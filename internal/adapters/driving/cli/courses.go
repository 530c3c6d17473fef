package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var coursesJSON bool

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the indexed courses",
	RunE:  runCourses,
}

func init() {
	coursesCmd.Flags().BoolVar(&coursesJSON, "json", false, "output the catalog as JSON")
	rootCmd.AddCommand(coursesCmd)
}

func runCourses(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		if err := initCatalog(); err != nil {
			return err
		}
	}

	stats, err := catalogService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	if coursesJSON {
		type statsInfo struct {
			TotalCourses int      `json:"total_courses"`
			CourseTitles []string `json:"course_titles"`
		}
		info := statsInfo{TotalCourses: stats.TotalCourses, CourseTitles: stats.CourseTitles}
		if info.CourseTitles == nil {
			info.CourseTitles = []string{}
		}

		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if stats.TotalCourses == 0 {
		cmd.Println("No courses indexed. Run `tutor ingest <directory>` first.")
		return nil
	}

	cmd.Printf("%d courses indexed:\n", stats.TotalCourses)
	for _, title := range stats.CourseTitles {
		cmd.Printf("  %s\n", title)
	}
	return nil
}
