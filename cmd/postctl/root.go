package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hoanghai1803/postdesk/internal/form"
	"github.com/hoanghai1803/postdesk/internal/logger"
	"github.com/hoanghai1803/postdesk/internal/models"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	server   string
	token    string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "postctl",
		Short:        "Create blog posts on a postdesk server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := logger.Install(opts.logLevel, "console"); err != nil {
				return err
			}
			if opts.token == "" {
				opts.token = os.Getenv("POSTDESK_TOKEN")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", "http://localhost:8080", "postdesk server base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "admin credential (defaults to $POSTDESK_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(
		newCreateCmd(opts),
		newImportCmd(opts),
		newHashTokenCmd(),
		newTokenCmd(),
	)
	return cmd
}

// newForm wires a form to the configured server and prints notifications to
// the command output.
func (o *rootOptions) newForm(cmd *cobra.Command) *form.Form {
	out := cmd.OutOrStdout()
	return form.New(
		form.NewHTTPClient(o.server, o.token),
		colorNotifier{out: out},
		form.WithOnCreated(func(p *models.BlogPost) {
			if p != nil {
				fmt.Fprintf(out, "id=%d slug=%s\n", p.ID, p.Slug)
			}
		}),
	)
}

type colorNotifier struct {
	out io.Writer
}

func (n colorNotifier) Notify(note form.Notification) {
	paint := color.New(color.FgGreen, color.Bold).SprintFunc()
	if note.Kind == form.KindFailure {
		paint = color.New(color.FgRed, color.Bold).SprintFunc()
	}
	fmt.Fprintf(n.out, "%s %s\n", paint(note.Title+":"), note.Description)
}
