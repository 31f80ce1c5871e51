package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	vecopt "github.com/RustyYato/vec-option"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "build an option vector from lines of text and describe it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file to read from (default is stdin); blank lines become vacant slots",
					},
				},
				Action: func(c *cli.Context) error {
					var reader io.Reader
					if c.IsSet("input") {
						f, err := os.Open(c.String("input"))
						if err != nil {
							return err
						}
						defer f.Close()
						reader = f
					} else {
						reader = os.Stdin
					}

					vec := vecopt.New[string]()
					rdr := bufio.NewReader(reader)
					start := time.Now()
					for {
						l, _, err := rdr.ReadLine()
						if err != nil {
							if err == io.EOF {
								break
							}
							return err
						}
						s := strings.TrimSpace(string(l))
						if s == "" {
							vec.PushOption(vecopt.None[string]())
						} else {
							vec.Push(s)
						}
					}
					log.Info().
						Int("len", vec.Len()).
						Dur("elapsed", time.Since(start)).
						Msg("built option vector")

					occ := vec.Occupied()
					capacity := vec.Capacity()
					fmt.Printf("%8d slots (%d occupied, %d vacant)\n",
						vec.Len(), occ.GetCardinality(), uint64(vec.Len())-occ.GetCardinality())
					fmt.Printf("%8d elements of payload capacity, %d bits of discriminant capacity\n",
						capacity.Data, capacity.Flag)
					fmt.Printf("%8d bytes of serialized occupancy bitmap\n", occ.GetSerializedSizeInBytes())
					fmt.Printf("%16x content digest\n", vec.Hash64(xxhash.Sum64String))
					return nil
				},
			},
			{
				Name:  "growbench",
				Usage: "compare bulk grow against per-bit pushes",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "bits",
						Value: 1 << 24,
						Usage: "number of bits to fill",
					},
					&cli.IntFlag{
						Name:  "chunks",
						Value: 64,
						Usage: "number of alternating true/false grow calls",
					},
				},
				Action: func(c *cli.Context) error {
					bits, chunks := c.Int("bits"), c.Int("chunks")
					if bits <= 0 || chunks <= 0 {
						return fmt.Errorf("bits and chunks must be positive")
					}
					per := bits / chunks

					bulk := vecopt.NewBitVec()
					start := time.Now()
					for i := 0; i < chunks; i++ {
						bulk.Grow(per, i%2 == 0)
					}
					bulkElapsed := time.Since(start)
					log.Info().Dur("elapsed", bulkElapsed).Int("bits", bulk.Len()).Msg("bulk grow")

					naive := vecopt.NewBitVec()
					start = time.Now()
					for i := 0; i < chunks; i++ {
						for j := 0; j < per; j++ {
							naive.Push(i%2 == 0)
						}
					}
					naiveElapsed := time.Since(start)
					log.Info().Dur("elapsed", naiveElapsed).Int("bits", naive.Len()).Msg("per-bit pushes")

					if bulk.Hash64() != naive.Hash64() {
						return fmt.Errorf("bulk and naive fills disagree")
					}
					fmt.Printf("identical content, bulk fill %0.1fx faster\n",
						float64(naiveElapsed)/float64(bulkElapsed))
					return nil
				},
			},
			{
				Name:  "shuffle",
				Usage: "load values, randomly vacate half of them, report occupancy",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "count",
						Value: 1 << 16,
						Usage: "number of slots",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Value: 42,
						Usage: "rng seed",
					},
				},
				Action: func(c *cli.Context) error {
					count := c.Int("count")
					rng := rand.New(rand.NewSource(c.Int64("seed")))

					vec := vecopt.WithCapacity[int](count)
					for i := 0; i < count; i++ {
						vec.Push(i)
					}
					start := time.Now()
					vec.ForEach(func(p *vecopt.OptionProxy[int]) {
						if rng.Intn(2) == 0 {
							p.Take()
						}
					})
					log.Info().Dur("elapsed", time.Since(start)).Msg("vacated random slots")

					occ := vec.Occupied()
					fmt.Printf("%8d of %d slots occupied\n", occ.GetCardinality(), vec.Len())
					fmt.Printf("%8d bytes of serialized occupancy bitmap\n", occ.GetSerializedSizeInBytes())
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
