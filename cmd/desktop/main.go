package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"lanewars/internal/battle"
	"lanewars/internal/desktop"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	flag.Parse()

	var opts []battle.Option
	if *seed != 0 {
		opts = append(opts, battle.WithSeed(*seed))
	}

	ebiten.SetWindowTitle("Lane Wars")
	ebiten.SetWindowSize(desktop.ScreenWidth, desktop.ScreenHeight)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(desktop.New(opts...)); err != nil {
		log.Fatal(err)
	}
}
