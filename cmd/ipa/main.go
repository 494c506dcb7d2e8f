// Command ipa generates reference strings and creates and checks inner
// product argument opening proofs.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/f3rmion/ipa/bjj"
	"github.com/f3rmion/ipa/bn254"
	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/internal/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		l := logger.Logger()
		l.Error().Err(err).Msg("ipa failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ipa",
		Usage: "Inner product argument polynomial commitments",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			level := zerolog.InfoLevel
			if c.Bool("verbose") {
				level = zerolog.DebugLevel
			}
			logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
				Level(level).
				With().Timestamp().Logger())
			return nil
		},
		Commands: []*cli.Command{
			setupCommand(),
			proveCommand(),
			verifyCommand(),
		},
	}
}

func groupByName(name string) (group.Group, error) {
	switch name {
	case "bn254":
		return &bn254.G1{}, nil
	case "bjj":
		return &bjj.BJJ{}, nil
	default:
		return nil, fmt.Errorf("unknown curve %q", name)
	}
}

func curveFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "curve",
		Usage: "Curve to work over (bn254 or bjj)",
		Value: "bn254",
	}
}
