// contactbook is a personal address-book CLI. Contacts carry validated
// 10-digit phone numbers and an optional DD-MM-YYYY birthday; the book is
// persisted as a JSON document between invocations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"contactbook/internal/book"
	"contactbook/internal/config"
	"contactbook/internal/store"
)

var (
	// Global flags
	verbose  bool
	cfgPath  string
	dataFile string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "contactbook",
	Short: "contactbook - personal address book with birthday reminders",
	Long: `contactbook manages a personal address book.

Contacts hold one or more 10-digit phone numbers and an optional birthday
in DD-MM-YYYY form. The book is stored as a JSON file (default
~/.contactbook/address_book.json) and rewritten after every change.

Run "contactbook birthdays" to see whose birthday falls in the next seven
days; weekend birthdays are reported under Monday.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.contactbook/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "address book file (overrides config)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(changeCmd)
	rootCmd.AddCommand(phoneCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(removePhoneCmd)
	rootCmd.AddCommand(addBirthdayCmd)
	rootCmd.AddCommand(showBirthdayCmd)
	rootCmd.AddCommand(birthdaysCmd)
	rootCmd.AddCommand(watchCmd)
}

// bookPath resolves the address book location: --file flag, then config.
func bookPath() (string, error) {
	if dataFile != "" {
		return dataFile, nil
	}
	path := cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}
	if cfg.Verbose {
		verbose = true
	}
	return cfg.DataFile, nil
}

// loadBook reads the persisted book. A missing or unreadable file starts an
// empty book, matching save-on-every-change semantics; a structurally valid
// file with invalid field values is a hard error so a save cannot silently
// drop records.
func loadBook(path string) (*book.AddressBook, error) {
	b, err := store.Load(path)
	if err != nil {
		if errors.Is(err, store.ErrLoadFailed) {
			logger.Warn("starting with an empty address book", zap.String("path", path), zap.Error(err))
			return book.New(), nil
		}
		return nil, err
	}
	logger.Debug("address book loaded", zap.String("path", path), zap.Int("records", b.Len()))
	return b, nil
}

func saveBook(b *book.AddressBook, path string) error {
	if err := store.Save(b, path); err != nil {
		return err
	}
	logger.Debug("address book saved", zap.String("path", path), zap.Int("records", b.Len()))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
