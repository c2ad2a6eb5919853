package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session over your documents",
	Long: `Opens a conversational loop against the ingested corpus.
Type /clear to drop the session history and /exit to leave.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSession, "session", "", "session id (random when omitted)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	sessionID := chatSession
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	ctx := context.Background()

	cmd.Printf("Session %s. /clear resets history, /exit leaves.\n", sessionID)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/exit":
			return nil
		case line == "/clear":
			if err := conversationService.ClearSession(ctx, sessionID); err != nil {
				cmd.PrintErrf("clearing session: %v\n", err)
				continue
			}
			cmd.Println("Session history cleared.")
			continue
		}

		answer, err := conversationService.Answer(ctx, line, sessionID)
		if err != nil {
			return fmt.Errorf("answering query: %w", err)
		}

		cmd.Printf("\n%s\n", answer.Response)
		if len(answer.Sources) > 0 {
			cmd.Println("\nSources:")
			for _, source := range answer.Sources {
				cmd.Printf("  - %s\n", source)
			}
		}
		if answer.BookingID != "" {
			cmd.Printf("\nBooking id: %s\n", answer.BookingID)
		}
		cmd.Println()
	}
	return scanner.Err()
}
