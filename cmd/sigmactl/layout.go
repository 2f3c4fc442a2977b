package main

import (
	"github.com/danmuck/sigmactl/internal/output"
	"github.com/danmuck/sigmactl/internal/protocol/header"
	"github.com/spf13/cobra"
)

func newLayoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "layout [operation]...",
		Short: "Show the header layouts of the selected variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := header.OperationKeys()
			if len(args) > 0 {
				keys = keys[:0]
				for _, arg := range args {
					k, err := parseOperation(arg)
					if err != nil {
						return err
					}
					keys = append(keys, k)
				}
			}
			views := make([]output.HeaderView, 0, len(keys))
			for _, k := range keys {
				h, err := header.NewHeaderForOperation(a.gen, k)
				if err != nil {
					return err
				}
				views = append(views, output.NewHeaderView(a.cfg.Variant, h, nil))
			}
			return a.print(cmd, views...)
		},
	}
}
