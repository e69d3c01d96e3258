package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"narsil/internal"
)

var (
	statsFormatFlag string
	statsLogFlag    string
)

// LibraryStats summarizes the audit log of all runs so far.
type LibraryStats struct {
	TotalPlaced     int            `json:"total_placed"`
	Duplicates      int            `json:"duplicates"`
	TimestampsFixed int            `json:"timestamps_fixed"`
	ByDevice        map[string]int `json:"by_device"`
	ByCategory      map[string]int `json:"by_category"`
	ByYear          map[string]int `json:"by_year"`
	LibraryBytes    uint64         `json:"library_bytes"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the audit log: devices, categories, years, duplicates",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		logPath := conf.LogFile
		if statsLogFlag != "" {
			logPath = statsLogFlag
		}

		records, err := internal.ReadAuditLog(logPath)
		if err != nil {
			return fmt.Errorf("failed to read audit log %s: %w", logPath, err)
		}

		stats := collectStats(records)

		if statsFormatFlag == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}
		displayStats(stats)
		return nil
	},
}

func collectStats(records []internal.AuditRecord) *LibraryStats {
	stats := &LibraryStats{
		ByDevice:   make(map[string]int),
		ByCategory: make(map[string]int),
		ByYear:     make(map[string]int),
	}

	for _, rec := range records {
		stats.TotalPlaced++
		if rec.Duplicate {
			stats.Duplicates++
		}
		if rec.TimestampFixed {
			stats.TimestampsFixed++
		}
		stats.ByDevice[rec.Device]++
		if rec.Category != "" {
			stats.ByCategory[rec.Category]++
		}
		if !rec.Date.IsZero() {
			stats.ByYear[rec.Date.Format("2006")]++
		}

		// Destinations may have been curated away since the run; only
		// surviving files count towards the library size.
		if info, err := os.Stat(rec.Destination); err == nil {
			stats.LibraryBytes += uint64(info.Size())
		}
	}
	return stats
}

func displayStats(stats *LibraryStats) {
	fmt.Println("Library statistics")
	fmt.Println("==================")
	fmt.Printf("Files placed:     %d\n", stats.TotalPlaced)
	fmt.Printf("Duplicates:       %d\n", stats.Duplicates)
	fmt.Printf("Timestamps fixed: %d\n", stats.TimestampsFixed)
	fmt.Printf("Library size:     %s\n", humanize.Bytes(stats.LibraryBytes))

	fmt.Println("\nBy device:")
	for _, line := range sortedCounts(stats.ByDevice) {
		fmt.Println(line)
	}
	if len(stats.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, line := range sortedCounts(stats.ByCategory) {
			fmt.Println(line)
		}
	}
	fmt.Println("\nBy year:")
	for _, line := range sortedCounts(stats.ByYear) {
		fmt.Println(line)
	}
}

// sortedCounts renders a count map as aligned lines, largest first, ties
// broken by key so output stays stable.
func sortedCounts(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %-24s %d", k, counts[k]))
	}
	return lines
}

func init() {
	statsCmd.Flags().StringVar(&statsFormatFlag, "format", "table", "Output format: table, json")
	statsCmd.Flags().StringVar(&statsLogFlag, "log", "", "Audit log to summarize (default from config)")

	rootCmd.AddCommand(statsCmd)
}
