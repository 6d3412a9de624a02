// Command dmgcore runs a Game Boy ROM against this module's DMG core and
// presents it in a terminal.
package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rholden/dmgcore/internal/core"
	"github.com/rholden/dmgcore/internal/presenter/terminal"
	"github.com/urfave/cli"
)

const frameTime = time.Second / 60

func main() {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Usage = "dmgcore [options] <ROM file>"
	app.Description = "A cycle-driven Game Boy (DMG) core with a terminal presenter"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug-level logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgcore exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	data, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}

	emu, err := core.New(data)
	if err != nil {
		return err
	}

	presenter, err := terminal.New()
	if err != nil {
		return err
	}
	defer presenter.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-signals:
			slog.Info("received shutdown signal")
			return nil
		case <-ticker.C:
			emu.RunFrame()
			presenter.PresentFrame(emu.CurrentFrame())

			events, quit := presenter.PollInput()
			if quit {
				slog.Info("quit requested from terminal")
				return nil
			}
			for _, ev := range events {
				emu.SetButton(ev.Button, ev.Pressed)
			}
		}
	}
}
