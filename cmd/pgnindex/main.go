// pgnindex scans a PGN file and prints the byte offset and header
// summary of each game it contains, without fully parsing any of them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrsv/chess/pgn"
	"github.com/seekerror/logw"
)

var (
	path = flag.String("pgn", "", "Path to a PGN file")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *path == "" {
		logw.Exitf(ctx, "missing -pgn")
	}

	f, err := os.Open(*path)
	if err != nil {
		logw.Exitf(ctx, "opening %v: %v", *path, err)
	}
	defer f.Close()

	offsets, err := pgn.ScanOffsets(f)
	if err != nil {
		logw.Exitf(ctx, "scanning %v: %v", *path, err)
	}
	logw.Infof(ctx, "found %v games in %v", len(offsets), *path)

	if _, err := f.Seek(0, 0); err != nil {
		logw.Exitf(ctx, "rewinding %v: %v", *path, err)
	}
	r, err := pgn.NewReader(ctx, f)
	if err != nil {
		logw.Exitf(ctx, "opening reader for %v: %v", *path, err)
	}

	for i, offset := range offsets {
		g, err := r.ReadGame()
		if err != nil {
			logw.Errorf(ctx, "game %v at offset %v: %v", i, offset, err)
			continue
		}
		white, _ := g.Header("White")
		black, _ := g.Header("Black")
		event, _ := g.Header("Event")
		fmt.Printf("%d\t%s\t%s vs %s\n", offset, event, white, black)
	}
}
