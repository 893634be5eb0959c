package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/export"
	"github.com/shodgson/article-go/markdown"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/transform"
)

func (a *app) convertCmd() *cobra.Command {
	var id, to string
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert the unit with the given id to another kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := a.load(args[0])
			if err != nil {
				return err
			}
			el := findID(nodes, id)
			if el == nil {
				return fmt.Errorf("no unit with id %q", id)
			}
			n, err := transform.New(a.factory).Convert(el, model.Kind(strings.ToUpper(to)))
			if err != nil {
				return err
			}
			if n == nil {
				return fmt.Errorf("%s cannot be converted to %s", id, to)
			}
			if el.Parent == nil && n != el {
				for i := range nodes {
					if nodes[i] == el {
						nodes[i] = n
					}
				}
			}
			return export.HTML(cmd.OutOrStdout(), nodes, export.Options{Minify: a.cfg.Minify})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "id of the unit to convert")
	cmd.Flags().StringVar(&to, "to", "", "target kind")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write serialized units as normalized HTML, Markdown or Notion blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := a.load(args[0])
			if err != nil {
				return err
			}
			switch format {
			case "html":
				return export.HTML(cmd.OutOrStdout(), nodes, export.Options{Minify: a.cfg.Minify})
			case "markdown", "md":
				_, err := fmt.Fprintln(cmd.OutOrStdout(), markdown.DefaultSerializer.SerializeNodes(nodes))
				return err
			case "notion":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"children": export.DefaultNotionSerializer.SerializePage(nodes),
				})
			}
			return fmt.Errorf("unknown format %q", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html|markdown|notion")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.md",
		Short: "Build an article from Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := markdown.NewParser(a.factory).Parse(src)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return export.HTML(cmd.OutOrStdout(), []*html.Node{doc}, export.Options{Minify: a.cfg.Minify})
		},
	}
}

func findID(nodes []*html.Node, id string) *html.Node {
	var found *html.Node
	for _, n := range nodes {
		model.Walk(n, func(c *html.Node) bool {
			if found == nil && c.Type == html.ElementNode && model.Attr(c, "id") == id {
				found = c
			}
			return found == nil
		})
	}
	return found
}
