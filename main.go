package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw probe rays and state overlay")
	levelName := flag.String("level", "demo.json", "level name in levels/ or a path to a level file")
	scale := flag.Int("scale", 2, "window scale")
	flag.Parse()

	game, err := NewGame(*levelName, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetTPS(common.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*max(*scale, 1), baseHeight*max(*scale, 1))
	ebiten.SetWindowTitle("platformer")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
