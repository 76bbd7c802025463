package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sinpath/generation"
)

// scanResult summarizes a batch of generated seeds
type scanResult struct {
	Seeds      int
	Collisions [][2]string // Pairs of seeds that produced the same map
	Invalid    int         // Seeds with at least one rule violation
}

// scanSeeds generates count maps concurrently, each on its own stream, and
// reports seeds whose maps are identical
func scanSeeds(ctx context.Context, gen *generation.MapGenerator, rules generation.Rules, count int, w io.Writer, log zerolog.Logger) error {
	res, err := scan(ctx, gen, rules, count)
	if err != nil {
		return err
	}
	log.Info().Int("seeds", res.Seeds).Int("collisions", len(res.Collisions)).Int("invalid", res.Invalid).Msg("scan finished")

	fmt.Fprintf(w, "%d seeds, %d collisions, %d with violations\n", res.Seeds, len(res.Collisions), res.Invalid)
	for _, c := range res.Collisions {
		fmt.Fprintf(w, "  %q == %q\n", c[0], c[1])
	}
	return nil
}

func scan(ctx context.Context, gen *generation.MapGenerator, rules generation.Rules, count int) (scanResult, error) {
	var (
		mu     sync.Mutex
		seen   = make(map[[32]byte]string, count)
		result = scanResult{Seeds: count}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < count; i++ {
		text := fmt.Sprintf("scan-%d", i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Structure only: node ids are derived from the seed text
			m, report, err := gen.Generate(generation.ParseSeed(text), &rules)
			if err != nil {
				return fmt.Errorf("seed %q: %w", text, err)
			}
			for li := range m.Layers {
				for ni := range m.Layers[li].Nodes {
					m.Layers[li].Nodes[ni].ID = ""
				}
			}
			m.Seed = ""

			raw, err := json.Marshal(m)
			if err != nil {
				return err
			}
			sum := sha256.Sum256(raw)

			mu.Lock()
			defer mu.Unlock()
			if other, ok := seen[sum]; ok {
				result.Collisions = append(result.Collisions, [2]string{other, text})
			} else {
				seen[sum] = text
			}
			if !report.IsValid() {
				result.Invalid++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return scanResult{}, err
	}
	return result, nil
}
