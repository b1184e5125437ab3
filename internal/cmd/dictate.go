package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bloodworks-io/phlox-cli/internal/api"
)

var dictateCmd = &cobra.Command{
	Use:   "dictate <file>",
	Short: "Transcribe an audio file to plain text",
	Long: `Upload an audio file for dictation-style transcription. Unlike 'record',
the server returns the raw transcription without drafting a clinical note,
which suits letters and free-form dictation.

The text is printed to stdout so it can be piped or redirected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		client := newClient(api.WithTimeout(uploadTimeout))

		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()

		text, err := client.Dictate(ctx, filepath.Base(path), f)
		if err != nil {
			return err
		}

		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dictateCmd)
}
