package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/danmuck/sigmactl/internal/config"
	"github.com/danmuck/sigmactl/internal/logging"
	"github.com/danmuck/sigmactl/internal/output"
	"github.com/danmuck/sigmactl/internal/protocol/header"
	"github.com/danmuck/sigmactl/internal/protocol/variant"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "sigmactl.toml"

// app is the state shared by all subcommands after PersistentPreRunE.
type app struct {
	cfgFile      string
	variantFlag  string
	outputFormat string

	cfg       config.Config
	gen       header.Generator
	formatter output.Formatter
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "sigmactl",
		Short:         "Inspect and build SigmaStudio packet headers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./"+defaultConfigPath+" when present)")
	root.PersistentFlags().StringVar(&a.variantFlag, "variant", "", "header variant: "+fmt.Sprint(variant.Names()))
	root.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", "", "output format: table|json|yaml")

	root.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newLayoutCmd(a),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) load() error {
	cfg := config.DefaultConfig()
	path := a.cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if a.variantFlag != "" {
		cfg.Variant = a.variantFlag
	}
	if a.outputFormat != "" {
		cfg.Output = a.outputFormat
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}

	gen, err := variant.Lookup(cfg.Variant)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.gen = gen
	a.formatter = output.NewFormatter(cfg.Output)
	log.Debug().Str("config", path).Str("variant", cfg.Variant).Msg("sigmactl loaded")
	return nil
}

func (a *app) print(cmd *cobra.Command, views ...output.HeaderView) error {
	s, err := a.formatter.Format(views...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), s)
	return err
}
