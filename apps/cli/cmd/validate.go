package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>...",
	Short: "Validate network files for syntax errors",
	Long: `Validate network files for syntax errors.

Examples:
  marlea validate network.crn
  marlea validate ./networks/
  marlea validate ./networks/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

var watchFlag bool

func init() {
	validateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-validate")
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	failed := validateFiles(cmd.OutOrStdout(), cmd.ErrOrStderr(), files)
	if !watchFlag {
		return parseFailure(failed, len(files))
	}

	watcher, err := newWatcher(files, args)
	if err != nil {
		return withExitCode(ExitFailure, err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")
	watchLoop(ctx, watcher, cfg.GetWatchDebounce(), func(changed string) {
		log.Printf("file changed: %s", changed)
		current, err := collectFiles(args)
		if err != nil {
			log.Printf("watch: %v", err)
			return
		}
		validateFiles(cmd.OutOrStdout(), cmd.ErrOrStderr(), current)
	})
	return nil
}

func validateFiles(out, errOut io.Writer, files []string) int {
	results, failed := parseFiles(files)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "Error in %s: %v\n", r.Path, r.Err)
		} else {
			fmt.Fprintf(out, "Valid: %s\n", r.Path)
		}
	}
	return failed
}

// newWatcher watches the directories holding files plus every directory
// below the directory arguments.
func newWatcher(files, args []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watched := make(map[string]bool)
	add := func(dir string) {
		if watched[dir] {
			return
		}
		watched[dir] = true
		if err := watcher.Add(dir); err != nil {
			log.Printf("failed to watch %s: %v", dir, err)
		}
	}

	for _, file := range files {
		add(filepath.Dir(file))
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			continue
		}
		_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return watcher, nil
}

// watchLoop calls onChange once per burst of writes to network files,
// after debounce has passed without a further event. It returns when
// ctx is done or the watcher is closed.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, onChange func(path string)) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		changed string
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !cfg.IsNetworkFile(event.Name) {
				continue
			}
			changed = event.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(changed)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}
