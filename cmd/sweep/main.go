package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"github.com/ScottBrooks/globepins"
)

// frameCounter counts the frames a marker spent visible.
type frameCounter struct {
	visible int
}

func (fc *frameCounter) SetVisible(visible bool) {
	if visible {
		fc.visible++
	}
}

// gridScript walks the pointer across an n by n grid of NDC cells, one cell per tick, and then
// points straight at each marker once.
func gridScript(n int, s *globepins.Session) globepins.PointerScript {
	cells := uint64(n * n)
	markers := s.Markers()
	return func(tick uint64) (globepins.PointerSample, bool) {
		if tick < cells {
			row, col := int(tick)/n, int(tick)%n
			return globepins.PointerSample{
				NDCX: -1 + 2*(float64(col)+0.5)/float64(n),
				NDCY: 1 - 2*(float64(row)+0.5)/float64(n),
			}, true
		}
		i := int(tick - cells)
		if i < len(markers) {
			return s.Camera.ProjectToNDC(markers[i].Position.Vec3()), true
		}
		return globepins.PointerSample{}, false
	}
}

// runSweep drives the session through the grid script. Interrupting the sweep is not an error.
func runSweep(ctx context.Context, s *globepins.Session, n, hz int) error {
	ticks := uint64(n*n + len(s.Markers()) + 1)
	err := globepins.RunHeadless(ctx, s, globepins.HeadlessConfig{
		Hz:     hz,
		Ticks:  ticks,
		Script: gridScript(n, s),
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	configDir := flag.String("config", ".", "directory holding globepins.yaml")
	steps := flag.Int("steps", 64, "grid cells per axis")
	hz := flag.Int("hz", 0, "tick rate (0 = loop.hz from config)")
	flag.Parse()

	cfg, err := globepins.LoadConfig(*configDir)
	if err != nil {
		log.Fatal(err)
	}
	if err := globepins.SetupLogging(cfg.LogLevel, cfg.LogColor); err != nil {
		log.Fatal(err)
	}
	if *hz > 0 {
		cfg.Loop.Hz = *hz
	}

	catalog := globepins.DefaultCatalog()
	if cfg.Marker.Catalog != "" {
		catalog, err = globepins.LoadCatalog(cfg.Marker.Catalog)
		if err != nil {
			log.Fatalf("Unable to load catalog: %v", err)
		}
	}

	counters := map[string]*frameCounter{}
	s, err := globepins.NewSession(cfg, catalog, func(m *globepins.Marker) globepins.Visibility {
		fc := &frameCounter{}
		counters[m.Label] = fc
		return fc
	})
	if err != nil {
		log.Fatal(err)
	}
	s.Hover.Notify = func(msg globepins.HoverChangedMessage) {
		log.WithField("marker", msg.Marker.Label).Infof("%s at frame %d", msg.State, s.Frames)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runSweep(ctx, s, *steps, cfg.Loop.Hz); err != nil {
		log.Fatal(err)
	}

	for _, m := range s.Markers() {
		log.WithFields(log.Fields{
			"marker":   m.Label,
			"position": m.Position,
			"frames":   counters[m.Label].visible,
		}).Info("Sweep done")
	}
}
