package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/f3rmion/ipa/commitment"
	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/internal/logger"
	"github.com/f3rmion/ipa/ipa"
	"github.com/f3rmion/ipa/polynomial"
	"github.com/f3rmion/ipa/srs"
	"github.com/f3rmion/ipa/transcript"
)

const srsDomain = "IPA-SRS-v1"

var errRejected = errors.New("proof rejected")

func setupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Generate a transparent SRS and write it to a file",
		Flags: []cli.Flag{
			curveFlag(),
			&cli.IntFlag{
				Name:  "size",
				Usage: "Number of base points",
				Value: 1 << 10,
			},
			&cli.BoolFlag{
				Name:  "paired",
				Usage: "Store the endomorphism image next to every base point",
			},
			&cli.StringFlag{
				Name:     "out",
				Usage:    "Path to write the SRS to",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			g, err := groupByName(c.String("curve"))
			if err != nil {
				return err
			}
			n := c.Int("size")

			bar := progressbar.Default(int64(n), "Generating SRS")
			s, err := srs.Generate(g, n, []byte(srsDomain), func(int) { bar.Add(1) })
			if err != nil {
				return err
			}
			bar.Finish()

			if c.Bool("paired") {
				if s, err = srs.PairWithEndomorphism(g, s); err != nil {
					return err
				}
			}

			f, err := os.Create(c.String("out"))
			if err != nil {
				return fmt.Errorf("failed to create SRS file: %w", err)
			}
			defer f.Close()
			if err := srs.Write(f, s); err != nil {
				return fmt.Errorf("failed to write SRS: %w", err)
			}

			l := logger.Logger()
			l.Info().
				Str("curve", g.Name()).
				Int("points", s.Len()).
				Stringer("layout", s.Layout).
				Str("path", c.String("out")).
				Msg("SRS written")
			return f.Close()
		},
	}
}

func proveCommand() *cli.Command {
	return &cli.Command{
		Name:  "prove",
		Usage: "Open a random polynomial at a random point and write the proof bundle",
		Flags: []cli.Flag{
			curveFlag(),
			&cli.StringFlag{
				Name:     "srs",
				Usage:    "Path to the SRS file",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Polynomial length, a power of two",
				Value: 1 << 8,
			},
			&cli.StringFlag{
				Name:  "hash",
				Usage: "Transcript hash (sha256, blake2b or keccak256)",
				Value: "sha256",
			},
			&cli.StringFlag{
				Name:     "out",
				Usage:    "Path to write the proof bundle to",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			g, err := groupByName(c.String("curve"))
			if err != nil {
				return err
			}
			hasher, err := transcript.HasherByName(c.String("hash"))
			if err != nil {
				return err
			}
			s, err := loadSRS(c.String("srs"), g)
			if err != nil {
				return err
			}
			ck, err := commitment.NewCommitmentKey(g, s)
			if err != nil {
				return err
			}

			poly, err := polynomial.Random(g, c.Int("size"), rand.Reader)
			if err != nil {
				return err
			}
			beta, err := nonzeroScalar(g)
			if err != nil {
				return err
			}
			comm, err := ck.Commit(poly)
			if err != nil {
				return err
			}
			pair := commitment.OpeningPair{Challenge: beta, Evaluation: poly.Evaluate(g, beta)}

			start := time.Now()
			tr := transcript.New(g, transcript.WithHasher(hasher))
			if err := ipa.New(g).ComputeOpeningProof(ck, pair, poly, tr); err != nil {
				return err
			}

			b := newBundle(g, hasher, commitment.OpeningClaim{Commitment: comm, Pair: pair}, tr.Proof())
			if err := b.writeFile(c.String("out")); err != nil {
				return err
			}

			l := logger.Logger()
			l.Info().
				Int("degree", poly.Len()).
				Int("entries", b.Proof.Len()).
				Dur("took", time.Since(start)).
				Str("path", c.String("out")).
				Msg("proof written")
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check a proof bundle against an SRS",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "srs",
				Usage:    "Path to the SRS file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "in",
				Usage:    "Path to the proof bundle",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			b, err := readBundle(c.String("in"))
			if err != nil {
				return err
			}
			g, err := groupByName(b.Curve)
			if err != nil {
				return err
			}
			hasher, err := transcript.HasherByName(b.Hash)
			if err != nil {
				return err
			}
			claim, err := b.claim(g)
			if err != nil {
				return err
			}
			s, err := loadSRS(c.String("srs"), g)
			if err != nil {
				return err
			}
			vk, err := commitment.NewVerifierKey(g, s)
			if err != nil {
				return err
			}

			start := time.Now()
			ok, err := ipa.New(g).Verify(vk, claim, transcript.NewVerifier(g, b.Proof, transcript.WithHasher(hasher)))
			if err != nil {
				return fmt.Errorf("%w: %w", errRejected, err)
			}
			if !ok {
				return errRejected
			}

			l := logger.Logger()
			l.Info().Dur("took", time.Since(start)).Msg("proof verified")
			return nil
		},
	}
}

func loadSRS(path string, g group.Group) (*srs.SRS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRS file: %w", err)
	}
	defer f.Close()
	return srs.Read(f, g)
}

func nonzeroScalar(g group.Group) (group.Scalar, error) {
	for {
		s, err := g.RandomScalar(rand.Reader)
		if err != nil {
			return nil, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}
