// Package main provides the CLI entry point for sheetmap.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap"
)

var (
	outputPath   string
	pretty       bool
	sheetIndex   int
	headerRow    int
	renames      []string
	charset      string
	strictHeader bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetmap [input.(xlsx|xls)]",
		Short: "Map worksheet rows to records, renaming headers first",
		Long: `sheetmap reads a worksheet, optionally rewrites incompatible header
strings (spaces, punctuation) by literal substring replacement,
persists the rewritten workbook, and emits the data rows as JSON
records keyed by the final header names.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().IntVar(&sheetIndex, "sheet", 0, "Zero-based worksheet index")
	rootCmd.Flags().IntVar(&headerRow, "header-row", 0, "Zero-based header row index")
	rootCmd.Flags().StringArrayVar(&renames, "rename", nil, "Header substring rename as old=new (repeatable)")
	rootCmd.Flags().StringVar(&charset, "charset", "utf-8", "Charset for decoding legacy .xls files")
	rootCmd.Flags().BoolVar(&strictHeader, "strict-header", false, "Fail when no usable header row is found")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	replacements, err := parseRenames(renames)
	if err != nil {
		return err
	}

	opts := sheetmap.Options{
		SheetIndex:     sheetIndex,
		HeaderRowIndex: headerRow,
		Replacements:   replacements,
		Charset:        charset,
		StrictHeader:   strictHeader,
	}

	records, err := sheetmap.New(inputPath, opts).FetchMaps()
	if err != nil {
		return fmt.Errorf("mapping failed: %w", err)
	}
	if records == nil {
		records = []map[string]string{}
	}

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(records, "", "  ")
	} else {
		jsonData, err = json.Marshal(records)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

// parseRenames converts repeated old=new flags into a replacement map.
func parseRenames(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		old, repl, ok := strings.Cut(p, "=")
		if !ok || old == "" {
			return nil, fmt.Errorf("invalid --rename %q (expected old=new)", p)
		}
		m[old] = repl
	}
	return m, nil
}
