package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"jigsaw/src/logx"
	"jigsaw/src/puzzle"
	"jigsaw/src/storage"
	clic "jigsaw/ui/cli"
	"jigsaw/ui/gui"
	"jigsaw/ui/gui/gbase/gconf"
	"jigsaw/ui/sound"
	"jigsaw/ui/tui"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"
)

const (
	logfile     string = "jigsaw.log"
	defaultSlot string = "autosave"
)

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("dev"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

// session is what every host needs: a board restored or shuffled,
// a random source and an optional save store
type session struct {
	board  *puzzle.Board
	rng    puzzle.Rand
	store  *storage.Store
	slot   string
	cfg    *gconf.Config
	logger *logx.Logx
	file   *os.File
}

// slotFlag is the save slot asked for, the default one when left empty
func slotFlag(c *cli.Command) string {
	if slot := strings.TrimSpace(c.String("slot")); slot != "" {
		return slot
	}
	return defaultSlot
}

func newSession(ctx context.Context, c *cli.Command) (*session, error) {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error open logfile: %w", err)
	}
	s := &session{file: file, slot: slotFlag(c)}
	s.logger = GetLogger(file, c)

	s.cfg, err = gconf.NewGUIConfig(c.String("config"))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("error read config: %w", err)
	}

	seed := c.Uint64("seed")
	if seed == 0 {
		seed = rand.Uint64()
	}
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s.logger.Debugf("shuffle seed %d", seed)

	s.board = puzzle.Classic()

	if !c.Bool("no-save") {
		s.store, err = storage.Open(s.cfg.SavePath)
		if err != nil {
			// play on without saving
			s.logger.Warnf("saving disabled: %v", err)
			s.store = nil
		}
	}

	if c.Bool("fresh") || !s.restore(ctx) {
		s.board.Shuffle(s.rng)
	}
	return s, nil
}

// restore loads the slot into the board, false when there was nothing to load
func (s *session) restore(ctx context.Context) bool {
	if s.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	saved, err := s.store.Load(ctx, s.slot)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return false
	}
	if err != nil {
		s.logger.Errorf("error load slot %q: %v", s.slot, err)
		return false
	}
	if len(saved) == 0 {
		// nothing placed, start from a shuffle
		return false
	}
	s.board.Restore(saved)
	s.logger.Infof("restored slot %q, %d of %d snapped", s.slot, s.board.SnappedCount(), s.board.Len())
	return true
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Errorf("error close store: %v", err)
	}
	s.logger.Sync()
	s.file.Close()
}

func RunGUI(ctx context.Context, c *cli.Command) error {
	s, err := newSession(ctx, c)
	if err != nil {
		return err
	}
	defer s.Close()

	if c.Bool("dev") {
		s.cfg.Debug = true
	}
	g, err := gui.NewGUI(s.board, s.rng, s.store, s.slot, s.cfg, s.logger)
	if err != nil {
		s.logger.Errorf("error init GUI: %v", err)
		return err
	}
	if err := g.Run(); err != nil {
		return err
	}
	if err := s.cfg.Save(); err != nil {
		s.logger.Errorf("error save config: %v", err)
	}
	return nil
}

func RunTUI(ctx context.Context, c *cli.Command) error {
	s, err := newSession(ctx, c)
	if err != nil {
		return err
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	var player *sound.Player
	if s.cfg.Sound {
		player = sound.NewPlayer()
		if err := player.Initialize(); err != nil {
			s.logger.Warnf("sound disabled: %v", err)
			player = nil
		}
		defer player.Close()
	}
	return tui.NewTUI(screen, s.board, s.rng, s.store, s.slot, s.cfg.SnapDistance, player, s.logger).Run(ctx)
}

func RunCLI(ctx context.Context, c *cli.Command) error {
	s, err := newSession(ctx, c)
	if err != nil {
		return err
	}
	defer s.Close()

	clic.EnableANSI()
	return clic.NewCLI(s.board, s.rng, s.store, s.slot, s.cfg.SnapDistance, s.logger).Run(ctx)
}

func RunJigsaw() error {
	return newApp().Run(context.Background(), os.Args)
}

// newApp builds the command tree. Flags live on the root and are inherited
// by the host subcommands.
func newApp() *cli.Command {
	df := &cli.BoolFlag{
		Name:    "dev",
		Aliases: []string{"d"},
		Usage:   "enable development logger and debug overlay",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Value:   "info",
		Usage:   "logger level (debug, info, warn, error)",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding to stdout",
	}
	sf := &cli.Uint64Flag{
		Name:  "seed",
		Usage: "shuffle seed, 0 picks a random one",
	}
	slf := &cli.StringFlag{
		Name:  "slot",
		Value: defaultSlot,
		Usage: "save slot restored on start and written on exit",
	}
	conf := &cli.StringFlag{
		Name:  "config",
		Value: gconf.DefaultFile,
		Usage: "path to the JSON config",
	}
	ff := &cli.BoolFlag{
		Name:  "fresh",
		Usage: "ignore the saved slot and start shuffled",
	}
	nf := &cli.BoolFlag{
		Name:  "no-save",
		Usage: "do not open the save database",
	}
	flags := []cli.Flag{df, lf, cf, sf, slf, conf, ff, nf}

	report := func(host string, run cli.ActionFunc) cli.ActionFunc {
		return func(ctx context.Context, c *cli.Command) error {
			if err := run(ctx, c); err != nil {
				fmt.Printf("error %s: %v\n", host, err)
			}
			return nil
		}
	}

	return &cli.Command{
		Name:  "jigsaw",
		Usage: "drag-and-snap jigsaw puzzle",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:   "gui",
				Usage:  "play in a window",
				Action: report("GUI", RunGUI),
			},
			{
				Name:   "tui",
				Usage:  "play in the terminal with the mouse",
				Action: report("TUI", RunTUI),
			},
			{
				Name:   "cli",
				Usage:  "play with typed pointer commands",
				Action: report("CLI", RunCLI),
			},
		},
		Action: report("GUI", RunGUI),
	}
}
