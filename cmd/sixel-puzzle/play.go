package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jerch/sixel-puzzle/internal/config"
	"github.com/jerch/sixel-puzzle/internal/core"
	"github.com/jerch/sixel-puzzle/internal/games/puzzle"
	"github.com/jerch/sixel-puzzle/internal/platform/tty"
	"github.com/jerch/sixel-puzzle/internal/platform/tui"
	"github.com/jerch/sixel-puzzle/internal/raster"
	"github.com/jerch/sixel-puzzle/internal/storage"
	"github.com/jerch/sixel-puzzle/internal/termcap"
	"github.com/jerch/sixel-puzzle/internal/tiles"
)

// statusRows is the number of text rows kept below the picture.
const statusRows = 1

var (
	flagSeed    int64
	flagEncoder string
)

var (
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func init() {
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagEncoder, "encoder", "", "Sixel encoder backend (see 'sixel-puzzle encoders')")
}

// validLevelArg checks the optional level argument.
func validLevelArg(_ *cobra.Command, args []string) error {
	if len(args) < 2 {
		return nil
	}
	if _, err := parseLevel(args[1]); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("level %q is not a number", s)
	}
	if n < core.MinLevel {
		return 0, fmt.Errorf("level must be at least %d, got %d", core.MinLevel, n)
	}
	return n, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	// Past argument checks, errors are not usage problems
	cmd.SilenceUsage = true

	cfg, err := config.LoadPuzzle(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rc := core.RuntimeConfig{
		ImagePath: args[0],
		Level:     cfg.Level,
		Seed:      flagSeed,
	}
	if len(args) == 2 {
		rc.Level, _ = parseLevel(args[1])
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if flagEncoder != "" {
		cfg.Encoder.Backend = flagEncoder
		cfg.Encoder.Path = ""
		cfg.Encoder.Args = nil
	}

	// Log to a file when asked; otherwise hold the log until the
	// terminal is back to normal.
	var held bytes.Buffer
	logOut, closeLog, err := openLog(firstNonEmpty(flagLog, cfg.Log.File), &held)
	if err != nil {
		return err
	}
	defer closeLog()
	defer func() { io.Copy(os.Stderr, &held) }()

	level, _ := cfg.Log.LogLevel()
	if logOut == io.Writer(&held) {
		// Only problems are worth repeating on stderr after the game
		level = max(level, log.WarnLevel)
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "sixel-puzzle",
		Level:           level,
	})

	err = play(cmd.Context(), rc, cfg, logger)
	if errors.Is(err, termcap.ErrNoSixel) || errors.Is(err, termcap.ErrNoGeometry) || errors.Is(err, termcap.ErrPalette) {
		// The terminal cannot show the puzzle, which is not a program failure
		fmt.Fprintln(os.Stderr, noticeStyle.Render(err.Error()))
		return nil
	}
	return err
}

// play prepares everything that can fail without touching the terminal,
// then negotiates capabilities and runs the session.
func play(ctx context.Context, rc core.RuntimeConfig, cfg config.PuzzleConfig, logger *log.Logger) error {
	src, err := tiles.Load(rc.ImagePath)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(rc.Seed))
	game, err := puzzle.New(rng, rc.Level)
	if err != nil {
		return err
	}
	logger.Debug("board shuffled", "level", rc.Level, "seed", rc.Seed, "board", game.Board().String())

	encoder, err := raster.New(cfg.Encoder.Backend, cfg.Encoder.Path, cfg.Encoder.Args)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(encoder.Path); err != nil {
		return fmt.Errorf("%w %s: %v", raster.ErrEncoderStart, encoder.Path, err)
	}
	logger.Debug("encoder", "command", encoder.String())

	store, best := openStore(cfg, rc.Level, logger)
	if store != nil {
		defer store.Close()
	}

	console, err := tty.Open()
	if err != nil {
		return err
	}
	defer console.Close()

	fg, bg, _ := cfg.Terminal.Colors()
	caps, err := negotiate(console, termcap.Options{
		Timeout:    cfg.Terminal.QueryTimeout(),
		Foreground: fg,
		Background: bg,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	logger.Info("terminal", "geometry", fmt.Sprintf("%+v", caps.Geometry), "palette", caps.PaletteSize)

	width, height := caps.Canvas(statusRows)
	fitted, err := tiles.Fit(src, width, height, rc.Level)
	if err != nil {
		return err
	}
	set, err := tiles.Slice(fitted, rc.Level, tiles.Palette{Foreground: caps.Foreground, Background: caps.Background})
	if err != nil {
		return err
	}

	session := &tui.Session{
		Game:   game,
		Tiles:  set,
		Caps:   caps,
		Raster: encoder,
		Out:    console,
		Logger: logger,
		Image:  absPath(rc.ImagePath),
		Best:   best,
	}
	if store != nil {
		session.Store = store
	}

	return tty.WithSession(console, func() error {
		return tui.Run(ctx, session, console.File())
	})
}

// negotiate queries the terminal in raw mode and restores the mode
// afterwards, so a failed negotiation leaves the terminal as it was.
func negotiate(t *tty.TTY, opts termcap.Options) (termcap.Capabilities, error) {
	if err := t.MakeRaw(); err != nil {
		return termcap.Capabilities{}, err
	}
	caps, err := termcap.Negotiate(t, opts)
	if rerr := t.Restore(); rerr != nil && err == nil {
		err = rerr
	}
	return caps, err
}

// openStore opens the records database. The game works without it.
func openStore(cfg config.PuzzleConfig, level int, logger *log.Logger) (*storage.Store, int) {
	path := firstNonEmpty(flagDBPath, cfg.Storage.Path, config.UserPath("records.db"))
	if path == "" {
		return nil, 0
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		return nil, 0
	}
	best, ok, err := store.BestMoves(level)
	if err != nil || !ok {
		return store, 0
	}
	return store, best
}

// openLog returns the log destination and a function that closes it.
func openLog(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
