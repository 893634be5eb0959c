package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/highlight"
	"github.com/shodgson/article-go/internal/config"
	"github.com/shodgson/article-go/schema/article"
)

type app struct {
	cfg     *config.Config
	factory *factory.Factory
}

func main() {
	a := &app{cfg: config.ReadConfig()}
	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "articlectl",
		Short:         "Inspect, check and transform article units",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setup()
		},
	}
	root.PersistentFlags().BoolVar(&a.cfg.Trace, "trace", a.cfg.Trace, "log at debug level")
	root.PersistentFlags().BoolVar(&a.cfg.Sanitize, "sanitize", a.cfg.Sanitize, "sanitize pasted and imported HTML")
	root.PersistentFlags().BoolVar(&a.cfg.Highlight, "highlight", a.cfg.Highlight, "highlight code units")
	root.PersistentFlags().BoolVar(&a.cfg.Minify, "minify", a.cfg.Minify, "minify written HTML")

	root.AddCommand(
		a.kindsCmd(),
		a.optionsCmd(),
		a.checkCmd(),
		a.convertCmd(),
		a.exportCmd(),
		a.importCmd(),
	)
	return root
}

func (a *app) setup() {
	level := slog.LevelInfo
	if a.cfg.Trace {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	a.cfg.Log(slog.Default())

	opts := []factory.Option{factory.WithSanitizer(a.cfg.Sanitize)}
	if a.cfg.Highlight {
		opts = append(opts, factory.WithHighlighter(highlight.New(highlight.WithAnalysis(a.cfg.HighlightAnalysis))))
	}
	a.factory = factory.New(article.Schema, opts...)
	slog.Debug("Factory ready", "sanitize", a.cfg.Sanitize, "highlight", a.cfg.Highlight)
}
