package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
)

var (
	templatesLetters    bool
	templatesSetDefault string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List note and letter templates",
	Long: `List the clinical note templates on the server, or letter templates
with --letters. Use --set-default to change the default template: pass a
template key for notes, or a numeric template id for letters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if templatesLetters {
			return runLetterTemplates(ctx)
		}

		if templatesSetDefault != "" {
			if err := client.SetDefaultTemplate(ctx, templatesSetDefault); err != nil {
				return err
			}
			fmt.Println(styles.Green("Default note template set to ") + styles.Value.Render(templatesSetDefault))
			return nil
		}

		templates, err := client.Templates(ctx)
		if err != nil {
			return err
		}

		fmt.Println(styles.Title.Render("Note Templates"))
		fmt.Println()
		fmt.Println("  " + styles.TableHeader.Render(fmt.Sprintf(" %-20s %-40s ", "KEY", "NAME")))
		for i, t := range templates {
			fmt.Println("  " + styles.TableRow(i%2 == 0).Render(fmt.Sprintf(" %-20s %-40s ", t.Key, t.Name)))
		}
		return nil
	},
}

func runLetterTemplates(ctx context.Context) error {
	client := newClient()

	if templatesSetDefault != "" {
		id, err := strconv.Atoi(templatesSetDefault)
		if err != nil {
			return fmt.Errorf("letter templates are addressed by numeric id, got %q", templatesSetDefault)
		}
		if err := client.SetDefaultLetterTemplate(ctx, id); err != nil {
			return err
		}
		fmt.Println(styles.Green("Default letter template set to ") + styles.Value.Render(templatesSetDefault))
		return nil
	}

	templates, err := client.LetterTemplates(ctx)
	if err != nil {
		return err
	}

	fmt.Println(styles.Title.Render("Letter Templates"))
	fmt.Println()
	fmt.Println("  " + styles.TableHeader.Render(fmt.Sprintf(" %-6s %-40s ", "ID", "NAME")))
	for i, t := range templates {
		fmt.Println("  " + styles.TableRow(i%2 == 0).Render(fmt.Sprintf(" %-6d %-40s ", t.ID, t.Name)))
	}
	return nil
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesLetters, "letters", false, "work with letter templates instead of note templates")
	templatesCmd.Flags().StringVar(&templatesSetDefault, "set-default", "", "set the default template (key, or id with --letters)")
	rootCmd.AddCommand(templatesCmd)
}
