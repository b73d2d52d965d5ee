package main

import (
	"flag"
	"net/http"
	"os"
	"runtime"

	"github.com/EngoEngine/engo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ScottBrooks/globepins"
)

func main() {
	configDir := flag.String("config", ".", "directory holding globepins.yaml")
	catalogPath := flag.String("catalog", "", "GeoJSON marker catalog (overrides marker.catalog)")
	headless := flag.Bool("headless", false, "run without a window")
	flag.Parse()

	cfg, err := globepins.LoadConfig(*configDir)
	if err != nil {
		log.Fatal(err)
	}
	if err := globepins.SetupLogging(cfg.LogLevel, cfg.LogColor); err != nil {
		log.Fatal(err)
	}
	if *catalogPath != "" {
		cfg.Marker.Catalog = *catalogPath
	}

	catalog := globepins.DefaultCatalog()
	if cfg.Marker.Catalog != "" {
		catalog, err = globepins.LoadCatalog(cfg.Marker.Catalog)
		if err != nil {
			log.Fatalf("Unable to load catalog: %v", err)
		}
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("Serving metrics on %s", cfg.Metrics.Addr)
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Errorf("Metrics server stopped: %v", err)
			}
		}()
	}

	useGraphics := !*headless
	if os.Getenv("DISPLAY") == "" && runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		useGraphics = false
	}

	opts := engo.RunOptions{
		Title:          "Globe",
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		StandardInputs: true,
		HeadlessMode:   !useGraphics,
		FPSLimit:       cfg.Loop.Hz,
	}
	engo.Run(opts, &GlobeScene{Config: cfg, Catalog: catalog})
}
