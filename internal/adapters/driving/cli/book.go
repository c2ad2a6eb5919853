package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuchat/internal/core/domain"
)

var (
	bookName  string
	bookEmail string
	bookDate  string
	bookTime  string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book an interview directly",
	Long:  `Records an interview booking without going through a chat session.`,
	RunE:  runBook,
}

func init() {
	bookCmd.Flags().StringVar(&bookName, "name", "", "candidate name (required)")
	bookCmd.Flags().StringVar(&bookEmail, "email", "", "candidate email (required)")
	bookCmd.Flags().StringVar(&bookDate, "date", "", "interview date")
	bookCmd.Flags().StringVar(&bookTime, "time", "", "interview time")
	rootCmd.AddCommand(bookCmd)
}

func runBook(cmd *cobra.Command, _ []string) error {
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	id, err := conversationService.BookInterview(context.Background(), domain.Booking{
		Name:  bookName,
		Email: bookEmail,
		Date:  bookDate,
		Time:  bookTime,
	})
	if err != nil {
		return fmt.Errorf("booking interview: %w", err)
	}

	cmd.Printf("Interview booked for %s (%s)\n", bookName, bookEmail)
	cmd.Printf("  Booking ID: %s\n", id)
	return nil
}
