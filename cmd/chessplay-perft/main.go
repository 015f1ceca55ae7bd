// Command chessplay-perft counts legal move tree nodes for move generator
// validation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	fen        = flag.String("fen", board.StartFEN, "position to count from")
	depth      = flag.Int("depth", 4, "search depth in plies")
	divide     = flag.Bool("divide", false, "print the node count below each root move")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal(err)
	}
	if *depth < 1 {
		log.Fatalf("depth must be at least 1, got %d", *depth)
	}

	start := time.Now()
	var nodes int64
	if *divide {
		for _, e := range board.Divide(pos, *depth) {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
			nodes += e.Nodes
		}
		fmt.Println()
	} else {
		nodes = board.Perft(pos, *depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Printf("NPS: %.0f\n", nps)
	}
}
