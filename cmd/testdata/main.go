package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/rowstats/cmd/testdata/generator"
)

/*generates key:value input for rowstats*/

var (
	Kind          = flag.String("kind", "metrics", "Generator: "+strings.Join(generator.List(), ", "))
	TotalCount    = flag.Int64("total_count", 0, "Total number of lines to generate (0 uses the generator default)")
	KeyCount      = flag.Int("key_count", 10, "Number of distinct keys")
	MalformedRate = flag.Float64("malformed_rate", 0.01, "Fraction of malformed lines (noisy generator)")
	Seed          = flag.Uint64("seed", 1, "Random seed")
	OutputPath    = flag.String("output", "var/testdata.txt", "Output file path")
)

const progressEvery = 1 << 16

func main() {
	flag.Parse()

	gen, err := generator.Get(*Kind, generator.Options{
		KeyCount:      *KeyCount,
		MalformedRate: *MalformedRate,
	})
	if err != nil {
		log.Fatal(err)
	}
	gen.Init(rand.New(rand.NewPCG(*Seed, *Seed)))

	total := *TotalCount
	if total <= 0 {
		total = gen.DefaultCount()
	}

	if err := os.MkdirAll(filepath.Dir(*OutputPath), 0755); err != nil {
		log.Fatal(err)
	}
	file, err := os.Create(*OutputPath)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	w := bufio.NewWriterSize(file, 1<<20)
	bar := progressbar.Default(total, "generating")

	for i := int64(0); i < total; i++ {
		if err := gen.WriteLine(w); err != nil {
			log.Fatal(err)
		}
		if (i+1)%progressEvery == 0 {
			_ = bar.Add(progressEvery)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
	_ = bar.Finish()

	info, err := file.Stat()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s lines (%s) of %s to %s\n",
		humanize.Comma(total), humanize.Bytes(uint64(info.Size())), gen.Description(), *OutputPath)
}
