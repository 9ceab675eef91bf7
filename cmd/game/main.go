package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var cfgPath string
	var envPath string
	var seed uint64

	flag.StringVar(&cfgPath, "config", "", "JSON config file (default config.json)")
	flag.StringVar(&envPath, "env", ".env", "dotenv file with PONG_* overrides")
	flag.Uint64Var(&seed, "seed", 0, "RNG seed, 0 picks one from the clock")
	flag.Parse()

	cfg, err := config.Load(cfgPath, envPath)
	if err != nil {
		log.Fatal(err)
	}
	slog.SetLogLoggerLevel(cfg.Level())

	g, err := game.New(cfg, seed)
	if err != nil {
		log.Fatal(err)
	}

	w, h := cfg.WindowSize()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
