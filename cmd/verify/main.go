// Package main provides the verify command that checks an emitted dataset
// against its manifest checksums.
package main

import (
	"flag"
	"fmt"
	"os"

	"showlist/internal/output"
)

func main() {
	dir := flag.String("dir", "", "Dataset directory containing manifest.json")

	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Please provide a dataset directory with -dir")
		flag.PrintDefaults()
		os.Exit(1)
	}

	problems, err := output.VerifyDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Verification failed: %v\n", err)
		os.Exit(1)
	}

	if len(problems) > 0 {
		fmt.Printf("❌ Dataset in %s is corrupt:\n", *dir)

		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}

		os.Exit(1)
	}

	fmt.Printf("✅ Dataset in %s verified\n", *dir)
}
