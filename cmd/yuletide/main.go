// Command yuletide shows the festive particle scene in a window or in the
// terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/phanxgames/yuletide"
	"github.com/phanxgames/yuletide/jingle"
	"github.com/phanxgames/yuletide/term"
	"go.uber.org/zap"
)

const envPrefix = "YULETIDE"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	return buildCLI(stdout).ParseAndRun(context.Background(), args)
}

// sceneFlags are shared by every subcommand that builds a scene.
type sceneFlags struct {
	cfg    yuletide.Config
	mode   string
	music  bool
	debug  bool
	script string
	shots  string
}

func (f *sceneFlags) register(fs *flag.FlagSet) {
	f.cfg = yuletide.DefaultConfig()
	c := &f.cfg
	fs.IntVar(&c.Particles, "particles", c.Particles, "tree particle count")
	fs.Float64Var(&c.FocalLength, "focal-length", c.FocalLength, "perspective focal length")
	fs.Float64Var(&c.RotationSpeed, "rotation-speed", c.RotationSpeed, "tree rotation per frame in radians")
	fs.Float64Var(&c.FastFactor, "fast-factor", c.FastFactor, "rotation multiplier while music plays")
	fs.Float64Var(&c.TimeStep, "time-step", c.TimeStep, "animation clock advance per frame")
	fs.IntVar(&c.Snowflakes, "snowflakes", c.Snowflakes, "snowflake count")
	fs.IntVar(&c.Stars, "stars", c.Stars, "background star count")
	fs.IntVar(&c.FogBlobs, "fog", c.FogBlobs, "fog blob count")
	fs.Float64Var(&c.TwinkleLow, "twinkle-low", c.TwinkleLow, "lowest background star opacity")
	fs.Float64Var(&c.TwinkleHigh, "twinkle-high", c.TwinkleHigh, "highest background star opacity")
	fs.IntVar(&c.FireworkDelay, "firework-delay", c.FireworkDelay, "minimum frames between firework launches")
	fs.Float64Var(&c.FireworkChance, "firework-chance", c.FireworkChance, "per-frame launch probability after the delay")
	fs.IntVar(&c.MeteorDelay, "meteor-delay", c.MeteorDelay, "minimum idle frames between meteors")
	fs.Float64Var(&c.MeteorChance, "meteor-chance", c.MeteorChance, "per-frame meteor probability after the delay")
	fs.IntVar(&c.SantaDelay, "santa-delay", c.SantaDelay, "frames between sleigh flybys")
	fs.Uint64Var(&c.Seed, "seed", 0, "random seed, 0 picks one")

	fs.StringVar(&f.mode, "mode", yuletide.ModeClassic.String(), "theme: "+modeNames())
	fs.BoolVar(&f.music, "music", false, "start with music and fast rotation on")
	fs.BoolVar(&f.debug, "debug", false, "debug logging and per-frame stats")
	fs.StringVar(&f.script, "script", "", "JSON script to replay")
	fs.StringVar(&f.shots, "screenshots", "screenshots", "directory for screenshots")
	fs.String("config", "", "config file (flag per line)")
}

func modeNames() string {
	var names []string
	for _, m := range yuletide.Modes() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

func ffOptions() []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	}
}

// build creates the logger, the scene and the optional player.
func (f *sceneFlags) build(logPath string) (*yuletide.Scene, *jingle.Player, *zap.Logger, error) {
	log, err := newLogger(f.debug, logPath)
	if err != nil {
		return nil, nil, nil, err
	}
	mode, err := yuletide.ParseMode(f.mode)
	if err != nil {
		return nil, nil, nil, err
	}
	scene, err := yuletide.NewScene(f.cfg, yuletide.WithLogger(log))
	if err != nil {
		return nil, nil, nil, err
	}
	scene.SetDebugMode(f.debug)
	scene.SetMode(mode)
	scene.ScreenshotDir = f.shots

	if f.script != "" {
		data, err := os.ReadFile(f.script)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read script: %w", err)
		}
		sc, err := yuletide.LoadScript(data)
		if err != nil {
			return nil, nil, nil, err
		}
		scene.SetScript(sc)
	}

	player := jingle.NewPlayer(log.Named("jingle"))
	scene.OnWishSent(player.Chime)
	if f.music {
		scene.SetMusic(true)
		player.SetPlaying(true)
	}
	return scene, player, log, nil
}

func newLogger(debug bool, path string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

func buildCLI(stdout io.Writer) *ffcli.Command {
	// window
	var win sceneFlags
	winFlags := flag.NewFlagSet("yuletide window", flag.ExitOnError)
	win.register(winFlags)
	width := winFlags.Int("width", 1280, "window width")
	height := winFlags.Int("height", 720, "window height")
	showFPS := winFlags.Bool("fps", false, "show the FPS overlay")
	exitScripted := winFlags.Bool("exit-after-script", false, "close the window once the script finishes")

	windowCmd := &ffcli.Command{
		Name:       "window",
		ShortUsage: "yuletide window [flags]",
		ShortHelp:  "Open the scene in a window",
		FlagSet:    winFlags,
		Options:    ffOptions(),
		Exec: func(_ context.Context, _ []string) error {
			scene, player, log, err := win.build("")
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			defer player.Close()
			return yuletide.Run(scene, yuletide.RunConfig{
				Width:            *width,
				Height:           *height,
				ShowFPS:          *showFPS,
				Resizable:        true,
				OnMusic:          player.SetPlaying,
				ExitWhenScripted: *exitScripted,
			})
		},
	}

	// term
	var tty sceneFlags
	termFlags := flag.NewFlagSet("yuletide term", flag.ExitOnError)
	tty.register(termFlags)
	fps := termFlags.Int("fps", term.DefaultFPS, "frame rate")
	logPath := termFlags.String("log", "yuletide.log", "log file, the terminal is busy drawing")
	frames := termFlags.Int("frames", 0, "quit after this many frames, 0 runs until q")

	termCmd := &ffcli.Command{
		Name:       "term",
		ShortUsage: "yuletide term [flags]",
		ShortHelp:  "Draw the scene in the terminal with half-block cells",
		FlagSet:    termFlags,
		Options:    ffOptions(),
		Exec: func(ctx context.Context, _ []string) error {
			scene, player, log, err := tty.build(*logPath)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			defer player.Close()
			return term.Run(ctx, scene, term.Options{
				FPS:     *fps,
				OnMusic: player.SetPlaying,
				Frames:  *frames,
			})
		},
	}

	// themes
	themesCmd := &ffcli.Command{
		Name:       "themes",
		ShortUsage: "yuletide themes",
		ShortHelp:  "Print the color swatches of every theme",
		Exec: func(_ context.Context, _ []string) error {
			return printThemes(stdout)
		},
	}

	rootFlags := flag.NewFlagSet("yuletide", flag.ExitOnError)
	return &ffcli.Command{
		ShortUsage:  "yuletide <subcommand> [flags]",
		ShortHelp:   "A rotating particle Christmas tree",
		LongHelp:    "Controls:\n  M  music and fast rotation\n  T  cycle theme\n  W  make a wish\n  F  FPS overlay (window)\n  P  screenshot (window)\n  Q  quit (terminal)\n\nEvery flag can also be set as " + envPrefix + "_<FLAG> or in the -config file.",
		FlagSet:     rootFlags,
		Subcommands: []*ffcli.Command{windowCmd, termCmd, themesCmd},
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
	}
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(10)
	hexStyle   = lipgloss.NewStyle().Faint(true)
)

func swatch(c yuletide.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
}

// printThemes writes one block per theme: the named colors with a swatch
// and their hex code.
func printThemes(w io.Writer) error {
	for _, m := range yuletide.Modes() {
		p := m.Palette()
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Bold(true).Underline(true).Render(m.String()))
		b.WriteString("\n")

		row := func(name string, cs ...yuletide.Color) {
			b.WriteString(labelStyle.Render(name))
			for _, c := range cs {
				b.WriteString(swatch(c))
				b.WriteString(" ")
				b.WriteString(hexStyle.Render(c.Hex()))
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
		row("foliage", p.Foliage...)
		row("core", p.Trunk...)
		row("ornament", p.Ornament, p.Ribbon, p.Orbiter)
		row("glow", p.StarGlow, p.Moon, p.Window)
		row("sky", p.SkyTop, p.SkyBase)

		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
