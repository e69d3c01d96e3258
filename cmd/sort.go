package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"narsil/internal"
)

var (
	outputFlag        string
	logFlag           string
	dryRunFlag        bool
	noFixFlag         bool
	useExifToolFlag   bool
	keepJunkFlag      bool
	keepLeftoversFlag bool
)

var sortCmd = &cobra.Command{
	Use:   "sort [folder]",
	Short: "Sort media files from folder into the library",
	Long: `Move every photo and video under the given folder into the output
library, organized by device and capture date, then relocate leftovers,
delete junk files and prune empty directories.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}

		folder := conf.Source
		if len(args) == 1 {
			folder = args[0]
		}
		if outputFlag != "" {
			conf.Output = outputFlag
		}
		if logFlag != "" {
			conf.LogFile = logFlag
		}
		if useExifToolFlag {
			conf.UseTool = true
		}
		if noFixFlag {
			conf.FixDates = false
		}

		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("folder does not exist or is not a directory: %s", folder)
		}

		// Traversal failure is the one fatal condition: nothing has
		// been touched yet, so halting here is safe.
		files, err := internal.ScanMediaFiles(folder, conf)
		if err != nil {
			return err
		}

		fmt.Printf("Found %d media files\n", len(files))
		if dryRunFlag {
			fmt.Println("Dry run mode: no files will be moved")
		}

		sorter, cleanupFn, err := newSorter(conf, dryRunFlag)
		if err != nil {
			return err
		}
		defer cleanupFn()

		errStats := runSort(sorter, files)

		if dryRunFlag {
			return nil
		}

		if !keepLeftoversFlag {
			moved, err := internal.MoveLeftovers(folder, conf.Output)
			if err != nil {
				fmt.Printf("Leftover pass incomplete: %v\n", err)
			}
			if moved > 0 {
				fmt.Printf("Moved %d leftover files\n", moved)
			}
		}
		if !keepJunkFlag {
			if deleted := internal.DeleteJunkFiles(folder, conf.JunkNames); deleted > 0 {
				fmt.Printf("Deleted %d junk files\n", deleted)
			}
		}
		if pruned := internal.RemoveEmptyDirs(folder); pruned > 0 {
			fmt.Printf("Removed %d empty folders\n", pruned)
		}

		stats := sorter.Stats()
		fmt.Printf("\nSorted %d files (%d duplicates, %d timestamps fixed)\n",
			stats.Placed, stats.Duplicates, stats.TimestampsFixed)
		if errStats.Total > 0 {
			fmt.Print(errStats.GenerateReport())
		}
		return nil
	},
}

// newSorter wires the sorter's collaborators from config: tag reader,
// timestamp repairer and audit log. The returned cleanup closes them.
func newSorter(conf *internal.Config, dryRun bool) (*internal.Sorter, func(), error) {
	reader, err := internal.NewTagReader(conf.UseTool)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start tag reader: %w", err)
	}

	var repairer internal.Repairer = internal.DisabledRepairer{}
	if conf.FixDates {
		et := internal.NewExifToolRepairer()
		if !et.Available() {
			fmt.Println("WARNING: exiftool is not installed, timestamp repair will be skipped")
		}
		repairer = et
	}

	var auditLog *internal.AuditLog
	if !dryRun {
		auditLog, err = internal.OpenAuditLog(conf.LogFile)
		if err != nil {
			reader.Close()
			return nil, nil, err
		}
	}

	sorter := internal.NewSorter(conf, reader, repairer, auditLog)
	sorter.DryRun = dryRun

	cleanup := func() {
		reader.Close()
		if auditLog != nil {
			auditLog.Close()
		}
	}
	return sorter, cleanup, nil
}

// runSort feeds every scanned file through the sorter. Per-file errors are
// reported and counted; they never stop the loop.
func runSort(sorter *internal.Sorter, files []string) *internal.ErrorStats {
	errStats := internal.NewErrorStats()
	bar := progressbar.Default(int64(len(files)), "sorting")

	for _, f := range files {
		if err := sorter.ProcessFile(f); err != nil {
			procErr := internal.CategorizeError(f, err)
			errStats.Add(procErr)
			sorter.CountError()
			fmt.Printf("\nError processing %s: %v\n", f, err)
		}
		bar.Add(1)
	}
	bar.Finish()

	return errStats
}

func init() {
	sortCmd.Flags().StringVar(&outputFlag, "output", "", "Library root the sorted files are moved into")
	sortCmd.Flags().StringVar(&logFlag, "log", "", "Path of the CSV audit log")
	sortCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be moved without touching anything")
	sortCmd.Flags().BoolVar(&noFixFlag, "no-fix", false, "Disable timestamp repair")
	sortCmd.Flags().BoolVar(&useExifToolFlag, "exiftool", false, "Read metadata through the exiftool binary")
	sortCmd.Flags().BoolVar(&keepJunkFlag, "keep-junk", false, "Skip the junk file cleanup pass")
	sortCmd.Flags().BoolVar(&keepLeftoversFlag, "keep-leftovers", false, "Skip the leftover relocation pass")

	rootCmd.AddCommand(sortCmd)
}
