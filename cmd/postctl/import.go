package main

import (
	"fmt"

	"github.com/hoanghai1803/postdesk/internal/feeds"
	"github.com/spf13/cobra"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	var (
		item     int
		author   string
		estimate bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import <feed-url>",
		Short: "Create a blog post from an RSS or Atom feed item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := feeds.NewImporter().Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if item < 0 || item >= len(entries) {
				return fmt.Errorf("feed has %d usable items, --item %d is out of range", len(entries), item)
			}

			f := root.newForm(cmd)
			f.Prefill(entries[item])
			if author != "" {
				f.SetAuthor(author)
			}
			if estimate {
				f.EstimateReadTime()
			}

			if dryRun {
				v := f.Values()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "title:     %s\n", v.Title)
				fmt.Fprintf(out, "slug:      %s\n", v.Slug)
				fmt.Fprintf(out, "excerpt:   %s\n", v.Excerpt)
				fmt.Fprintf(out, "author:    %s\n", v.Author)
				fmt.Fprintf(out, "cover:     %s\n", v.CoverImage)
				fmt.Fprintf(out, "read time: %s\n", v.ReadTime)
				return nil
			}

			_, err = f.Submit(cmd.Context())
			return err
		},
	}

	cmd.Flags().IntVar(&item, "item", 0, "index of the feed item to import")
	cmd.Flags().StringVar(&author, "author", "", "author name (overrides the feed author)")
	cmd.Flags().BoolVar(&estimate, "estimate-read-time", true, "fill the read time from the content")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the draft without submitting it")

	return cmd
}
