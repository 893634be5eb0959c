package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

var errInvalid = errors.New("invalid units found")

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate serialized units against the grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]error, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Workers)
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					results[i] = a.checkFile(path)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			invalid := false
			for i, err := range results {
				if err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[i])
					continue
				}
				invalid = true
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%v\n", args[i], err)
			}
			if invalid {
				return errInvalid
			}
			return nil
		},
	}
}

func (a *app) checkFile(path string) error {
	nodes, err := a.load(path)
	if err != nil {
		return err
	}
	var errs []error
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		if err := a.factory.Schema().Check(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// load parses a file holding serialized units.
func (a *app) load(path string) ([]*html.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	nodes, err := a.factory.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}
