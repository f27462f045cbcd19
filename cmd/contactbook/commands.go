package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"contactbook/internal/book"
)

// addCmd adds a phone to a contact, creating the contact if needed.
var addCmd = &cobra.Command{
	Use:   "add [name] [phone]",
	Short: "Add a contact, or another phone to an existing contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBook(func(b *book.AddressBook) (string, error) {
			name, phone := args[0], args[1]
			rec, ok := b.Find(name)
			if !ok {
				var err error
				rec, err = book.NewRecord(name)
				if err != nil {
					return "", err
				}
			}
			if err := rec.AddPhone(phone); err != nil {
				return "", err
			}
			b.AddRecord(rec)
			return "Contact added.", nil
		})
	},
}

var changeCmd = &cobra.Command{
	Use:   "change [name] [old-phone] [new-phone]",
	Short: "Replace one of a contact's phone numbers",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBook(func(b *book.AddressBook) (string, error) {
			rec, ok := b.Find(args[0])
			if !ok {
				return "Error: Name not found.", nil
			}
			if err := rec.EditPhone(args[1], args[2]); err != nil {
				return "", err
			}
			return "Contact updated.", nil
		})
	},
}

var phoneCmd = &cobra.Command{
	Use:   "phone [name]",
	Short: "Show a contact's phone numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return readBook(func(b *book.AddressBook) (string, error) {
			rec, ok := b.Find(args[0])
			if !ok {
				return "Error: Name not found.", nil
			}
			phones := rec.Phones()
			values := make([]string, len(phones))
			for i, p := range phones {
				values[i] = p.String()
			}
			return strings.Join(values, "; "), nil
		})
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List every contact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return readBook(func(b *book.AddressBook) (string, error) {
			if b.Len() == 0 {
				return "No contacts found.", nil
			}
			var lines []string
			for _, rec := range b.Records() {
				lines = append(lines, rec.String())
			}
			return strings.Join(lines, "\n"), nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBook(func(b *book.AddressBook) (string, error) {
			b.Delete(args[0])
			return "Contact deleted.", nil
		})
	},
}

var removePhoneCmd = &cobra.Command{
	Use:   "remove-phone [name] [phone]",
	Short: "Remove a phone number from a contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBook(func(b *book.AddressBook) (string, error) {
			rec, ok := b.Find(args[0])
			if !ok {
				return "Error: Name not found.", nil
			}
			rec.RemovePhone(args[1])
			return "Contact updated.", nil
		})
	},
}

var addBirthdayCmd = &cobra.Command{
	Use:   "add-birthday [name] [DD-MM-YYYY]",
	Short: "Set a contact's birthday",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBook(func(b *book.AddressBook) (string, error) {
			rec, ok := b.Find(args[0])
			if !ok {
				return "Error: Name not found.", nil
			}
			if err := rec.AddBirthday(args[1]); err != nil {
				return "", err
			}
			return "Birthday added successfully.", nil
		})
	},
}

var showBirthdayCmd = &cobra.Command{
	Use:   "show-birthday [name]",
	Short: "Show a contact's birthday",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return readBook(func(b *book.AddressBook) (string, error) {
			name := args[0]
			rec, ok := b.Find(name)
			if !ok {
				return fmt.Sprintf("Error: %s's birthday not found.", name), nil
			}
			bd, ok := rec.Birthday()
			if !ok {
				return fmt.Sprintf("Error: %s's birthday not found.", name), nil
			}
			return fmt.Sprintf("%s's birthday: %s", name, bd), nil
		})
	},
}

var birthdaysCmd = &cobra.Command{
	Use:   "birthdays",
	Short: "Show birthdays falling in the next seven days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return readBook(func(b *book.AddressBook) (string, error) {
			return renderBirthdays(b.UpcomingBirthdays(time.Now())), nil
		})
	},
}

// renderBirthdays formats the report with days in a fixed weekday order so
// repeated runs print identically.
func renderBirthdays(byDay map[string][]string) string {
	if len(byDay) == 0 {
		return "No birthdays found next week."
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return weekdayIndex(days[i]) < weekdayIndex(days[j]) })

	var lines []string
	for _, day := range days {
		lines = append(lines, fmt.Sprintf("%s: %s", day, strings.Join(byDay[day], ", ")))
	}
	return strings.Join(lines, "\n")
}

func weekdayIndex(name string) int {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return int(d)
		}
	}
	return 7
}

// withBook runs a mutating operation: load, apply, save, print the outcome.
func withBook(fn func(*book.AddressBook) (string, error)) error {
	path, err := bookPath()
	if err != nil {
		return err
	}
	b, err := loadBook(path)
	if err != nil {
		return err
	}
	msg, err := fn(b)
	if err != nil {
		return err
	}
	if err := saveBook(b, path); err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

// readBook runs a read-only operation: load, apply, print. Nothing is saved.
func readBook(fn func(*book.AddressBook) (string, error)) error {
	path, err := bookPath()
	if err != nil {
		return err
	}
	b, err := loadBook(path)
	if err != nil {
		return err
	}
	msg, err := fn(b)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
