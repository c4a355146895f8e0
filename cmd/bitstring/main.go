// Command bitstring draws a fixed bit pattern as rows of instanced triangle
// strips, exercising shader compilation, debug output and uniform blocks.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"gl-bitstring/core"
	"gl-bitstring/internal/config"
	"gl-bitstring/internal/glcore"
	"gl-bitstring/internal/logging"
	"gl-bitstring/internal/opengl"
	"gl-bitstring/shaders"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "initial window width in pixels",
		Value: config.DefaultWindowConfig().Width,
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "initial window height in pixels",
		Value: config.DefaultWindowConfig().Height,
	}
	titleFlag = &cli.StringFlag{
		Name:  "title",
		Usage: "window title",
		Value: config.DefaultWindowConfig().Title,
	}
	shaderDirFlag = &cli.StringFlag{
		Name:  "shaders",
		Usage: "directory holding " + shaders.VertexFile + " and " + shaders.FragmentFile + " (default: built in)",
	}
	noDebugFlag = &cli.BoolFlag{
		Name:  "no-debug",
		Usage: "do not request a debug context",
	}
	syncDebugFlag = &cli.BoolFlag{
		Name:  "sync-debug",
		Usage: "deliver driver debug messages synchronously",
	}
	checkErrorsFlag = &cli.BoolFlag{
		Name:  "check-errors",
		Usage: "query the GL error flag after every draw",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level (debug, info, warn, error)",
		Value: "info",
	}
)

func main() {
	app := &cli.App{
		Name:  "bitstring",
		Usage: "render a bit pattern with instanced OpenGL draws",
		Flags: []cli.Flag{
			configFlag,
			widthFlag,
			heightFlag,
			titleFlag,
			shaderDirFlag,
			noDebugFlag,
			syncDebugFlag,
			checkErrorsFlag,
			verbosityFlag,
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func makeConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if ctx.IsSet(configFlag.Name) {
		if err := config.Load(ctx.String(configFlag.Name), &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(widthFlag.Name) {
		cfg.Window.Width = ctx.Int(widthFlag.Name)
	}
	if ctx.IsSet(heightFlag.Name) {
		cfg.Window.Height = ctx.Int(heightFlag.Name)
	}
	if ctx.IsSet(titleFlag.Name) {
		cfg.Window.Title = ctx.String(titleFlag.Name)
	}
	if ctx.IsSet(shaderDirFlag.Name) {
		cfg.Render.ShaderDir = ctx.String(shaderDirFlag.Name)
	}
	if ctx.Bool(noDebugFlag.Name) {
		cfg.Window.Debug = false
	}
	if ctx.Bool(syncDebugFlag.Name) {
		cfg.Render.SyncDebug = true
	}
	if ctx.Bool(checkErrorsFlag.Name) {
		cfg.Render.CheckErrors = true
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.String(verbosityFlag.Name)
	}
	return cfg, cfg.Validate()
}

func run(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	logger, err := logging.Setup(cfg.Log.Verbosity)
	if err != nil {
		return err
	}

	src, err := shaders.Load(cfg.Render.ShaderDir)
	if err != nil {
		return err
	}

	window, err := core.NewWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.LogContext(logger)

	funcs, err := glcore.New()
	if err != nil {
		return err
	}
	caps, err := opengl.Probe(funcs)
	if err != nil {
		return fmt.Errorf("capability probe: %w", err)
	}
	logger.Info("OpenGL Version: "+caps.Version, "renderer", caps.Renderer, "glsl", caps.ShadingVersion)

	router := opengl.NewDebugRouter(logger)
	if opengl.EnableDebugOutput(funcs, caps, router, cfg.Render.SyncDebug) {
		logger.Debug("Debug output enabled", "extension", opengl.DebugExtension)
	} else {
		logger.Debug("Debug output unavailable",
			"extension", caps.SupportsDebugExtension, "debug_context", caps.DebugContextFlagSet)
	}

	renderer, err := opengl.NewRenderer(funcs, opengl.Options{
		VertexSource:   src.Vertex,
		FragmentSource: src.Fragment,
		Size:           opengl.Dimensions{Width: window.Width, Height: window.Height},
		CheckErrors:    cfg.Render.CheckErrors,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	return window.Run(renderer)
}
