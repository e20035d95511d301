package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"cutfield/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
	"github.com/xlab/closer"
)

const (
	windowWidth  = 1100
	windowHeight = 700
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var (
		configPath string
		seed       uint64
		workers    int
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:           "cutfield-viewer",
		Short:         "Preview a generated cut-block field in 3D",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
			design, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				design.Seed = &seed
			}
			if cmd.Flags().Changed("workers") {
				design.Workers = workers
			}
			return run(design, log)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "design file (default $"+config.EnvConfigPath+")")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "layout seed for the first field")
	cmd.Flags().IntVar(&workers, "workers", 0, "mesh workers, 0 for one per CPU")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := cmd.Execute(); err != nil {
		log.Error("viewer failed", "err", err)
		closer.Exit(1)
	}
}

func run(design *config.Design, log *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		return err
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	log.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	v, err := newViewer(window, design, log)
	if err != nil {
		return err
	}
	// signals bypass the render loop; GL objects go with the process
	closer.Bind(func() {
		log.Info("viewer stopped")
	})
	defer v.Close()

	if err := v.Regenerate(); err != nil {
		return err
	}
	v.Loop()
	return nil
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "cutfield", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	return window, nil
}
