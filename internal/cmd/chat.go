package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/bloodworks-io/phlox-cli/internal/api"
	"github.com/bloodworks-io/phlox-cli/internal/config"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the Phlox assistant a one-off question",
	Long: `Send a single message to the server's chat engine and print the reply.
The reply is rendered as markdown.

Chat must be enabled in the local config (chatEnabled).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.Get().ChatEnabled {
			return fmt.Errorf("chat is disabled; enable it with 'phlox config set chatEnabled true'")
		}

		message := strings.Join(args, " ")
		client := newClient()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		resp, err := client.Chat(ctx, []api.ChatMessage{
			{Role: "user", Content: message},
		})
		if err != nil {
			return err
		}

		out, err := glamour.Render(resp.Message, "dark")
		if err != nil {
			fmt.Println(resp.Message)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
