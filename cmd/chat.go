package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganderhq/gander/internal/conversation"
)

var chatID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question answering session",
	Long: `Chat starts an interactive session. Type /ask to pose a question;
the next message is answered from the ingested documents.

The session state is persisted per chat id, so an interrupted session
resumes where it left off.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatID, "chat", "local", "chat id for persisted session state")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := setupApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	state, err := a.Conversations.State(ctx, chatID)
	if err != nil {
		return fmt.Errorf("loading conversation state: %w", err)
	}

	if state == conversation.StateAwaitingQuestion {
		fmt.Println("Resuming: what is your question?")
	} else {
		fmt.Println("Type /ask to ask a question, /exit to quit.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break // EOF (Ctrl+D)
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch state {
		case conversation.StateIdle:
			switch line {
			case "/ask":
				state = conversation.StateAwaitingQuestion
				if err := a.Conversations.SetState(ctx, chatID, state); err != nil {
					return fmt.Errorf("saving conversation state: %w", err)
				}
				fmt.Println("What is your question?")
			case "/exit", "/quit":
				return nil
			default:
				fmt.Println("Unknown command. Type /ask to ask a question, /exit to quit.")
			}

		case conversation.StateAwaitingQuestion:
			answer, err := a.Answerer.Answer(ctx, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			} else {
				fmt.Println(answer)
			}

			state = conversation.StateIdle
			if err := a.Conversations.SetState(ctx, chatID, state); err != nil {
				return fmt.Errorf("saving conversation state: %w", err)
			}
		}
	}

	return scanner.Err()
}
