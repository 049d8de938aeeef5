package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type draftFlags struct {
	title       string
	slug        string
	excerpt     string
	content     string
	contentFile string
	coverImage  string
	author      string
	readTime    string
	estimate    bool
}

func newCreateCmd(root *rootOptions) *cobra.Command {
	var d draftFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a blog post",
		Example: `postctl create --title "Hello, World!" --excerpt "First post" \
  --content-file post.md --author Ada --estimate-read-time`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if d.contentFile != "" {
				b, err := os.ReadFile(d.contentFile)
				if err != nil {
					return fmt.Errorf("reading content file: %w", err)
				}
				d.content = string(b)
			}

			f := root.newForm(cmd)
			f.SetTitle(d.title)
			if d.slug != "" {
				f.SetSlug(d.slug)
			}
			f.SetExcerpt(d.excerpt)
			f.SetContent(d.content)
			f.SetCoverImage(d.coverImage)
			f.SetAuthor(d.author)
			f.SetReadTime(d.readTime)
			if d.estimate {
				f.EstimateReadTime()
			}

			_, err := f.Submit(cmd.Context())
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&d.title, "title", "", "post title")
	fl.StringVar(&d.slug, "slug", "", "URL slug (derived from the title when empty)")
	fl.StringVar(&d.excerpt, "excerpt", "", "short summary")
	fl.StringVar(&d.content, "content", "", "post body")
	fl.StringVar(&d.contentFile, "content-file", "", "read the post body from a file")
	fl.StringVar(&d.coverImage, "cover-image", "", "cover image URL")
	fl.StringVar(&d.author, "author", "", "author name")
	fl.StringVar(&d.readTime, "read-time", "", `read time label, e.g. "4 min read"`)
	fl.BoolVar(&d.estimate, "estimate-read-time", false, "fill an empty read time from the content")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")

	return cmd
}
