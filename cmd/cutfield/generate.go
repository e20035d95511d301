package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"cutfield/internal/config"
	"cutfield/internal/export"
	"cutfield/internal/instructions"
	"cutfield/internal/layout"
	"cutfield/internal/meshing"
	"cutfield/internal/profiling"

	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		seed    uint64
		workers int
		out     config.OutputSection
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a field and write its instructions",
		Long: "Generate lays out a field from the design file, prints the piece\n" +
			"counts and placement grid, and optionally renders a PNG sheet and\n" +
			"an STL model of the whole field.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("seed") {
				d.Seed = &seed
			}
			if flags.Changed("workers") {
				d.Workers = workers
			}
			if flags.Changed("text") {
				d.Output.Text = out.Text
			}
			if flags.Changed("png") {
				d.Output.PNG = out.PNG
			}
			if flags.Changed("stl") {
				d.Output.STL = out.STL
			}
			if d.Output.Text == "" {
				d.Output.Text = "-"
			}
			return generate(cmd.Context(), d, opts, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.Uint64Var(&seed, "seed", 0, "layout seed (random when unset)")
	f.IntVar(&workers, "workers", 0, "mesh workers, 0 for one per CPU")
	f.StringVar(&out.Text, "text", "", `text instructions path, "-" for stdout`)
	f.StringVar(&out.PNG, "png", "", "instruction sheet PNG path")
	f.StringVar(&out.STL, "stl", "", "binary STL path for the whole field")
	return cmd
}

func generate(ctx context.Context, d *config.Design, opts *options, stdout io.Writer) error {
	log := opts.log
	profiling.Reset()

	cfg, err := d.Layout()
	if err != nil {
		return err
	}
	seed := d.ResolveSeed()
	grid, err := func() (*layout.Grid, error) {
		defer profiling.Track("layout.Generate")()
		return layout.Generate(cfg, layout.NewSource(seed))
	}()
	if err != nil {
		return err
	}
	log.Info("field laid out", "id", grid.ID, "seed", seed, "width", grid.Width, "height", grid.Height)

	summary, err := func() (*instructions.Summary, error) {
		defer profiling.Track("instructions.Summarize")()
		return instructions.Summarize(grid)
	}()
	if err != nil {
		return err
	}

	if err := writeText(d.Output.Text, summary, stdout); err != nil {
		return err
	}
	if d.Output.PNG != "" {
		if err := writeFile(d.Output.PNG, func(w io.Writer) error {
			defer profiling.Track("instructions.WritePNG")()
			return instructions.WritePNG(w, summary)
		}); err != nil {
			return err
		}
		log.Info("sheet written", "path", d.Output.PNG)
	}

	if d.Output.STL != "" {
		pool := meshing.NewPool(d.Workers, log)
		defer pool.Close()

		gen, err := pool.Load(ctx, grid)
		if err != nil {
			return err
		}
		if err := func() error {
			defer profiling.Track("export.SaveSTL")()
			return export.SaveSTL(d.Output.STL, gen.Meshes()...)
		}(); err != nil {
			return err
		}
		log.Info("model written", "path", d.Output.STL, "triangles", gen.TriangleCount())
	}

	log.Debug("timings", "top", profiling.TopN(5))
	return nil
}

func writeText(path string, s *instructions.Summary, stdout io.Writer) error {
	if path == "-" {
		return instructions.WriteText(stdout, s)
	}
	return writeFile(path, func(w io.Writer) error {
		return instructions.WriteText(w, s)
	})
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
