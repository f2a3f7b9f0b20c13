package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"ticketlens/cmd/mockgen/engine"
)

func main() {
	variant := flag.String("variant", "flat", "Container shape: flat, result, records, nested, single, conversations")
	outDir := flag.String("out", "./testdata", "Output directory for mock export files")
	count := flag.Int("count", 50, "Number of records to generate")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Variant: *variant,
		Count:   *count,
		Now:     time.Now(),
	}

	var records []map[string]any
	if *variant == "conversations" {
		records = engine.GenerateConversations(cfg)
	} else {
		records = engine.Generate(cfg)
	}

	doc, err := engine.Wrap(*variant, records)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	path, err := engine.Save(*outDir, *variant, doc)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d records (%s) to %s\n", *count, *variant, path)
}
