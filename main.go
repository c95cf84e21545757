// Command pushfight runs the push-fight rules engine.
//
// It supports these commands:
//  1. "play" (default) - interactive board on stdin/stdout
//  2. "move" - apply "r1,c1:r2,c2" moves to a fresh board and print the result
//  3. "mcp" - serve the game as MCP tools over stdio
//  4. "layouts", "validate", "init-layouts" - manage layout files
//
// Flags and PUSHFIGHT_* environment variables (a .env file is honored)
// control the layout directory, the default layout and logging.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/pushfight/game/config"
	"github.com/wricardo/pushfight/game/diag"
	"github.com/wricardo/pushfight/game/engine"
	"github.com/wricardo/pushfight/game/service"
	"github.com/wricardo/pushfight/game/session"
	"github.com/wricardo/pushfight/transport/mcp"
	"github.com/wricardo/pushfight/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Push Fight"
)

// main loads .env, then hands off to the command tree.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "pushfight",
		Usage:   "Push Fight rules engine",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "layout-dir",
				Value:   "layouts",
				Usage:   "Directory containing layout JSON files",
				Sources: cli.EnvVars("PUSHFIGHT_LAYOUT_DIR"),
			},
			&cli.StringFlag{
				Name:    "layout",
				Value:   config.ReferenceName,
				Usage:   "Default layout for new games",
				Sources: cli.EnvVars("PUSHFIGHT_LAYOUT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("PUSHFIGHT_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "Log format (text, json)",
				Sources: cli.EnvVars("PUSHFIGHT_LOG_FORMAT"),
			},
		},
		Action: runPlay,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "Play interactively; enter moves as \"r1 c1 r2 c2\"",
				Action: runPlay,
			},
			{
				Name:      "move",
				Usage:     "Apply moves to a fresh board and print the result",
				ArgsUsage: "r1,c1:r2,c2 ...",
				Action:    runMoves,
			},
			{
				Name:  "mcp",
				Usage: "Serve MCP tools over stdio",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "session-ttl",
						Value:   time.Hour,
						Usage:   "Drop sessions idle for longer than this (0 disables)",
						Sources: cli.EnvVars("PUSHFIGHT_SESSION_TTL"),
					},
				},
				Action: runMCP,
			},
			{
				Name:   "layouts",
				Usage:  "List available layouts",
				Action: runLayouts,
			},
			{
				Name:      "validate",
				Usage:     "Validate layout files",
				ArgsUsage: "[dir]",
				Action:    runValidate,
			},
			{
				Name:   "init-layouts",
				Usage:  "Write the reference layout into the layout directory",
				Action: runInitLayouts,
			},
		},
	}
}

// app bundles the services every command needs.
type app struct {
	log      *logrus.Logger
	configs  *config.Manager
	sessions *session.Manager
	games    service.GameService
}

// initializeServices sets up logging, layouts, sessions and the game service.
func initializeServices(cmd *cli.Command) (*app, error) {
	logger, err := diag.NewLogger(cmd.String("log-level"), cmd.String("log-format"))
	if err != nil {
		return nil, err
	}

	configs, err := config.NewManager(cmd.String("layout-dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to create layout manager: %w", err)
	}
	if name := cmd.String("layout"); name != "" {
		if err := configs.SetDefault(name); err != nil {
			return nil, fmt.Errorf("failed to set default layout %q: %w", name, err)
		}
	}

	sessions := session.NewManagerWithSink(func(id string) engine.Sink {
		return diag.NewLogrusSink(logger.WithField("session", id))
	})

	return &app{
		log:      logger,
		configs:  configs,
		sessions: sessions,
		games:    service.NewGameService(sessions, configs),
	}, nil
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	a, err := initializeServices(cmd)
	if err != nil {
		return err
	}
	return a.play(ctx, cmd.Root().Reader, cmd.Root().Writer)
}

// play runs the interactive loop until quit or end of input.
func (a *app) play(ctx context.Context, in io.Reader, out io.Writer) error {
	info, err := a.games.CreateSession(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s v%s - session %s (%s)\n", AppName, Version, info.ID, info.LayoutName)
	fmt.Fprintln(out, `Type "help" for commands.`)
	printBoard(out, info.Board)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			printHelp(out)
		case "board":
			board, err := a.games.GetBoard(ctx, info.ID)
			if err != nil {
				return err
			}
			printBoard(out, board)
		case "legal":
			a.printLegal(ctx, out, info.ID, fields[1:])
		case "new":
			layout := ""
			if len(fields) > 1 {
				layout = fields[1]
			}
			next, err := a.games.CreateSession(ctx, layout)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			a.games.DeleteSession(ctx, info.ID)
			info = next
			fmt.Fprintf(out, "session %s (%s)\n", info.ID, info.LayoutName)
			printBoard(out, info.Board)
		case "layouts":
			a.configs.RefreshCache()
			printLayouts(ctx, out, a.games)
		default:
			req, err := service.ParseMove(line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			result, err := a.games.Move(ctx, info.ID, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, result.Message)
			if result.Applied {
				printBoard(out, result.Board)
			}
		}
	}
}

func (a *app) printLegal(ctx context.Context, out io.Writer, sessionID string, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(out, "usage: legal <row> <col>")
		return
	}
	row, errR := strconv.Atoi(args[0])
	col, errC := strconv.Atoi(args[1])
	if errR != nil || errC != nil {
		fmt.Fprintln(out, "usage: legal <row> <col>")
		return
	}

	moves, err := a.games.LegalMoves(ctx, sessionID, engine.Coord{Row: row, Col: col})
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "%s at %s\n", moves.Cell, moves.At)
	targets := make([]string, len(moves.Relocations))
	for i, c := range moves.Relocations {
		targets[i] = c.String()
	}
	fmt.Fprintf(out, "  slide to: %s\n", orNone(strings.Join(targets, " ")))
	pushes := make([]string, len(moves.Pushes))
	for i, p := range moves.Pushes {
		pushes[i] = fmt.Sprintf("%s via %s", p.Direction, p.Target)
	}
	fmt.Fprintf(out, "  push: %s\n", orNone(strings.Join(pushes, ", ")))
}

func runMoves(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return cli.Exit("move needs at least one \"r1,c1:r2,c2\" argument", 2)
	}
	a, err := initializeServices(cmd)
	if err != nil {
		return err
	}
	return a.applyMoves(ctx, cmd.Args().Slice(), cmd.Root().Writer)
}

// applyMoves plays moves on a fresh board and prints each outcome and the
// final board.
func (a *app) applyMoves(ctx context.Context, args []string, out io.Writer) error {
	moves := make([]service.MoveRequest, 0, len(args))
	for _, arg := range args {
		req, err := service.ParseMove(arg)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		moves = append(moves, req)
	}

	info, err := a.games.CreateSession(ctx, "")
	if err != nil {
		return err
	}
	defer a.games.DeleteSession(ctx, info.ID)

	result, err := a.games.BulkMove(ctx, info.ID, moves)
	if err != nil {
		return err
	}
	for i, r := range result.Results {
		fmt.Fprintf(out, "%d. %s: %s\n", i+1, r.Kind, r.Message)
	}
	if result.Truncated {
		fmt.Fprintf(out, "only the first %d moves were applied\n", result.Limit)
	}
	printBoard(out, result.Board)
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	a, err := initializeServices(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if ttl := cmd.Duration("session-ttl"); ttl > 0 {
		go a.sweepSessions(ctx, ttl)
	}

	a.log.WithField("layout_dir", cmd.String("layout-dir")).Info("serving MCP over stdio")
	return mcp.NewServer(a.games, a.log).ServeStdio()
}

// sweepSessions drops idle sessions until ctx is done.
func (a *app) sweepSessions(ctx context.Context, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.sessions.CleanupExpiredSessions(ttl); n > 0 {
				a.log.WithField("removed", n).Info("expired sessions removed")
			}
		}
	}
}

func runLayouts(ctx context.Context, cmd *cli.Command) error {
	a, err := initializeServices(cmd)
	if err != nil {
		return err
	}
	return printLayouts(ctx, cmd.Root().Writer, a.games)
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("layout-dir")
	if cmd.Args().Present() {
		dir = cmd.Args().First()
	}

	results, err := validate.Dir(dir)
	if err != nil {
		return err
	}
	if !validate.Report(cmd.Root().Writer, results) {
		return cli.Exit("", 1)
	}
	return nil
}

func runInitLayouts(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("layout-dir")
	configs, err := config.NewManager(dir)
	if err != nil {
		return err
	}
	if err := configs.SaveLayout(config.ReferenceName, engine.ReferenceLayout()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "wrote %s/%s.json\n", dir, config.ReferenceName)
	return nil
}

func printLayouts(ctx context.Context, out io.Writer, games service.GameService) error {
	layouts, err := games.ListLayouts(ctx)
	if err != nil {
		return err
	}
	for _, l := range layouts {
		fmt.Fprintf(out, "%-16s %dx%d  %s\n", l.LayoutID, l.Width, l.Height, l.Description)
	}
	return nil
}

func printBoard(out io.Writer, board *service.BoardView) {
	fmt.Fprint(out, "   ")
	for c := 0; c < board.Width; c++ {
		fmt.Fprintf(out, "%d", c%10)
	}
	fmt.Fprintln(out)
	for r, row := range board.Rows {
		fmt.Fprintf(out, "%2d %s\n", r, row)
	}
	fmt.Fprintf(out, "light %d, dark %d\n", board.LightCount, board.DarkCount)
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  r1 c1 r2 c2     move or push (also r1,c1:r2,c2)
  legal r c       show what the piece at (r,c) can do
  board           redraw the board
  new [layout]    start over, optionally with another layout
  layouts         list layouts
  quit            leave
Legend: . empty  # void  P/M light pusher/mover  p/m dark  A/a anchored
`)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
