package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"narsil/internal"
)

var (
	watchOutputFlag string
	watchLogFlag    string
	watchNoFixFlag  bool
	watchToolFlag   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Watch a folder and sort media files as they arrive",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}

		folder := conf.Source
		if len(args) == 1 {
			folder = args[0]
		}
		if watchOutputFlag != "" {
			conf.Output = watchOutputFlag
		}
		if watchLogFlag != "" {
			conf.LogFile = watchLogFlag
		}
		if watchToolFlag {
			conf.UseTool = true
		}
		if watchNoFixFlag {
			conf.FixDates = false
		}

		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("folder does not exist or is not a directory: %s", folder)
		}

		sorter, cleanupFn, err := newSorter(conf, false)
		if err != nil {
			return err
		}
		defer cleanupFn()

		watcher, err := internal.NewWatcher(folder, conf)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", folder, err)
		}
		defer watcher.Close()

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", folder)

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)

		for {
			select {
			case path := <-watcher.Events():
				if err := sorter.ProcessFile(path); err != nil {
					sorter.CountError()
					fmt.Printf("Error processing %s: %v\n", path, err)
					continue
				}
				fmt.Printf("Sorted %s\n", path)
			case err := <-watcher.Errors():
				fmt.Printf("Watcher error: %v\n", err)
			case <-interrupt:
				stats := sorter.Stats()
				fmt.Printf("\nSorted %d files (%d duplicates, %d timestamps fixed, %d errors)\n",
					stats.Placed, stats.Duplicates, stats.TimestampsFixed, stats.Errors)
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchOutputFlag, "output", "", "Library root the sorted files are moved into")
	watchCmd.Flags().StringVar(&watchLogFlag, "log", "", "Path of the CSV audit log")
	watchCmd.Flags().BoolVar(&watchNoFixFlag, "no-fix", false, "Disable timestamp repair")
	watchCmd.Flags().BoolVar(&watchToolFlag, "exiftool", false, "Read metadata through the exiftool binary")

	rootCmd.AddCommand(watchCmd)
}
