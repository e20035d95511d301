package main

import (
	"fmt"

	"cutfield/internal/export"
	"cutfield/internal/geometry"

	"github.com/spf13/cobra"
)

func newBlockCmd(opts *options) *cobra.Command {
	p := geometry.DefaultParams()
	var (
		cut  string
		path string
	)
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Export a single cut block as STL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := geometry.ParseCutType(cut)
			if err != nil {
				return err
			}
			p.CutType = ct

			m, err := geometry.Build(p)
			if err != nil {
				return err
			}
			if err := export.SaveSTL(path, m); err != nil {
				return err
			}
			opts.log.Info("block written", "path", path, "cut", p.CutType, "triangles", len(m.Triangles),
				"back_height", fmt.Sprintf("%.4f", geometry.BackHeight(p)))
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&p.Width, "width", p.Width, "footprint along X")
	f.Float64Var(&p.Depth, "depth", p.Depth, "footprint along Z")
	f.Float64Var(&p.BaseHeight, "height", p.BaseHeight, "height of the low edge")
	f.Float64Var(&p.CutAngle, "angle", p.CutAngle, "cut angle in degrees")
	f.StringVar(&cut, "cut", p.CutType.String(), "cut type: edge or corner")
	f.StringVar(&path, "stl", "block.stl", "output path")
	return cmd
}
