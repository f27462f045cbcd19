package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchDebounce coalesces the burst of events a save produces (create of the
// temp file, rename over the book) into a single reload.
const watchDebounce = 200 * time.Millisecond

// watchCmd re-renders the birthday report whenever the book file changes on
// disk, e.g. when another terminal adds a contact.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the address book and re-print upcoming birthdays on change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := bookPath()
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory, not the file: the atomic save replaces the
		// file by rename, which would drop a watch on the file itself.
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		printReport(path)

		var timer *time.Timer
		pending := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("address book changed", zap.String("event", ev.String()))
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			case <-pending:
				printReport(path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", zap.Error(err))
			}
		}
	},
}

func printReport(path string) {
	b, err := loadBook(path)
	if err != nil {
		logger.Warn("could not reload address book", zap.Error(err))
		return
	}
	fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
	fmt.Println(renderBirthdays(b.UpcomingBirthdays(time.Now())))
}
