package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

func (a *app) kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the unit kinds with their tag, class and content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := article.Schema
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tTAG\tCLASS\tFLAGS\tCHILDREN")
			for _, k := range schema.Kinds() {
				spec, _ := schema.Spec(k)
				class, _ := schema.Class(k)
				children, _ := schema.AllowedChildren(k)
				tag := spec.Tag
				if spec.Role {
					tag += "[role=" + k.Role() + "]"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", k, tag, class, spec.Flags, joinKinds(children))
			}
			return w.Flush()
		},
	}
}

func (a *app) optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options KIND...",
		Short: "List the kinds insertable under every given kind",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := make([]model.Kind, len(args))
			for i, arg := range args {
				kinds[i] = model.Kind(strings.ToUpper(arg))
			}
			options, err := article.Schema.Options(kinds...)
			if err != nil {
				return err
			}
			for _, k := range options {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func joinKinds(kinds []model.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, " ")
}
