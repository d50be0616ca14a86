package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-canvas/internal"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/config"
)

// main - is the entry point of the application. It builds the command tree and runs the chosen front end.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Two-player tic-tac-toe on a clickable board",
		Long: `Two-player tic-tac-toe on a clickable board.

Play in the browser (serve) or in the terminal with the mouse (play).
With redis enabled every board is broadcast and can be followed with watch.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yml (default ./config.yml)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the board over HTTP",
			RunE: func(_ *cobra.Command, _ []string) error {
				conf := initConfig(configPath)
				return app.RunServe(initLogger(conf, os.Stdout), conf)
			},
		},
		&cobra.Command{
			Use:   "play",
			Short: "Play in the terminal, click a cell to move",
			RunE: func(_ *cobra.Command, _ []string) error {
				conf := initConfig(configPath)

				out, closeLog := openLogFile(conf)
				defer closeLog()

				return app.RunPlay(initLogger(conf, out), conf)
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Follow the broadcast board in the terminal",
			RunE: func(_ *cobra.Command, _ []string) error {
				conf := initConfig(configPath)

				out, closeLog := openLogFile(conf)
				defer closeLog()

				return app.RunWatch(initLogger(conf, out), conf)
			},
		},
	)

	return rootCmd
}

// initialize config.
func initConfig(path string) *config.Config {
	if path != "" {
		return config.MustLoad(path)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// openLogFile - the terminal front ends own the screen, so their log goes to log-file or nowhere.
func openLogFile(conf *config.Config) (io.Writer, func()) {
	if conf.LogFile == "" {
		return io.Discard, func() {}
	}

	file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file, logging disabled: %v\n", err)
		return io.Discard, func() {}
	}

	return file, func() { _ = file.Close() }
}
