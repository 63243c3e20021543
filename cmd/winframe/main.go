package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/1broseidon/winframe/internal/config"
	"github.com/1broseidon/winframe/internal/logging"
	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "render":
		os.Exit(runRender(os.Args[2:]))
	case "hittest":
		os.Exit(runHitTest(os.Args[2:]))
	case "screens":
		os.Exit(runScreens(os.Args[2:]))
	case "track":
		os.Exit(runTrack(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winframe <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render              Render the scene's decorated windows to PNG")
	fmt.Fprintln(w, "  hittest X Y         Report which window and frame part is at a point")
	fmt.Fprintln(w, "  screens             List X11 monitors with work areas and scales")
	fmt.Fprintln(w, "  track               Follow the X11 pointer over the scene and show resize cursors")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winframe <command> --help' for command-specific options.")
}

// configFlags registers the flags every command uses to find its
// configuration.
type configFlags struct {
	path  *string
	scene *string
}

func addConfigFlags(fs *flag.FlagSet) configFlags {
	return configFlags{
		path:  fs.String("path", "", "Config file path (default: ~/.config/winframe/config.yaml)"),
		scene: fs.String("scene", "", "YAML file layered over the config, usually holding a scene"),
	}
}

func (f configFlags) load() (*config.LoadResult, error) {
	path := *f.path
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	if *f.scene != "" {
		return config.LoadFromPaths(path, *f.scene)
	}
	return config.LoadFromPath(path)
}

// setupLogging installs a text slog handler at the configured level for
// the decoration packages and for gg.
func setupLogging(cfg *config.Config) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	}))
	logging.SetLogger(logger)
	gg.SetLogger(logger)
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  winframe config validate [--path PATH] [--scene FILE]")
		fmt.Fprintln(os.Stderr, "  winframe config print [--path PATH] [--scene FILE] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  winframe config explain [--path PATH] [--scene FILE] <yaml.path>")
		fmt.Fprintln(os.Stderr, "  winframe config colors")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		cf := addConfigFlags(fs)
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		res, err := cf.load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, f := range res.Files {
			fmt.Printf("loaded: %s\n", f)
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		cf := addConfigFlags(fs)
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			_ = printEffective // default
			res, err := cf.load()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		cf := addConfigFlags(fs)
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := cf.load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	case "colors":
		for _, name := range config.ColorNames() {
			fmt.Println(name)
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceBuiltin:
		if src.Name != "" {
			return "preset:" + src.Name
		}
		return "preset"
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}

// fatalf logs through the standard logger, like the rest of the CLI
// output, and returns the failure exit code.
func fatalf(format string, args ...any) int {
	log.Printf(format, args...)
	return 1
}
