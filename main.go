package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	app "github.com/rocketscienceinc/mastermind/internal"
	"github.com/rocketscienceinc/mastermind/internal/config"
	"github.com/rocketscienceinc/mastermind/internal/game"
)

// main - is the entry point of the application. It parses the command line and runs the chosen mode.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	cliApp := &cli.App{
		Name:  "mastermind",
		Usage: "crack the secret code",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the configuration file",
				Value: defaultConfigPath(),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play against a secret kept in this process",
				Action: func(c *cli.Context) error {
					conf := initConfig(c.String("config"))
					return exitError(app.RunLocal(c.Context, initLogger(conf), conf, app.StdConsole()))
				},
			},
			{
				Name:  "remote",
				Usage: "play against an authority service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "base URL of the authority service (defaults to remote.base-url)",
					},
				},
				Action: func(c *cli.Context) error {
					conf := initConfig(c.String("config"))
					return exitError(app.RunRemote(c.Context, initLogger(conf), conf, c.String("url"), app.StdConsole()))
				},
			},
			{
				Name:  "serve",
				Usage: "run the authority service",
				Action: func(c *cli.Context) error {
					conf := initConfig(c.String("config"))
					return exitError(app.RunServer(initLogger(conf), conf))
				},
			},
		},
		DefaultCommand: "play",
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "app run failed: %v\n", err)
		os.Exit(1)
	}
}

// exitError turns a run error into a non-zero exit with one message.
// A session that failed to start has already been reported by the game, so nothing more is printed.
func exitError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, game.ErrStartFailed):
		return cli.Exit("", 1)
	default:
		return cli.Exit(fmt.Sprintf("app run failed: %v", err), 1)
	}
}

func defaultConfigPath() string {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return filepath.Join(baseDir, "./config.yml")
}

// initialize config.
func initConfig(path string) *config.Config {
	return config.MustLoad(path)
}

// initialize logger. Logs go to stderr so they never mix with the game on stdout.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
