package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/openvax/gtfparse"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.gtf>",
	Short: "Summarize a GTF file",
	Long:  "Parse a GTF file and print its row count, columns and per-feature row counts.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	t, err := gtfparse.ReadGTF(args[0], readOptions()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rows:    %d\n", t.NumRows())
	fmt.Fprintf(out, "columns: %d\n", t.NumColumns())
	for _, name := range t.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}

	features, ok := t.Strings("feature")
	if !ok {
		return nil
	}
	counts := make(map[string]int)
	for _, f := range features {
		counts[f]++
	}
	names := make([]string, 0, len(counts))
	for f := range counts {
		names = append(names, f)
	}
	sort.Strings(names)
	fmt.Fprintln(out, "features:")
	for _, f := range names {
		fmt.Fprintf(out, "  %-16s %d\n", f, counts[f])
	}
	return nil
}
