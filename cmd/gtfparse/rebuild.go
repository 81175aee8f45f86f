package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openvax/gtfparse"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild <file.gtf>",
	Short: "Reconstruct missing gene/transcript rows",
	Long: "Parse a GTF file, reconstruct rows for missing feature types from " +
		"their identifying attribute (gene rows from gene_id groups by default), " +
		"and write the extended table back out as GTF.",
	Args: cobra.ExactArgs(1),
	RunE: runRebuild,
}

func init() {
	rebuildCmd.Flags().StringP("output", "o", "", "Output GTF file (required; .gz/.zst compresses)")
	rebuildCmd.Flags().StringSlice("feature-keys", []string{"gene=gene_id", "transcript=transcript_id"},
		"feature=key_column pairs to reconstruct")
	_ = rebuildCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	pairs, _ := cmd.Flags().GetStringSlice("feature-keys")

	uniqueKeys := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		feature, key, ok := strings.Cut(pair, "=")
		if !ok || feature == "" || key == "" {
			return fmt.Errorf("invalid feature-key pair %q (want feature=key_column)", pair)
		}
		uniqueKeys[feature] = key
	}

	t, err := gtfparse.ReadGTF(args[0], readOptions()...)
	if err != nil {
		return err
	}

	extended, err := gtfparse.CreateMissingFeatures(t, uniqueKeys,
		gtfparse.WithMissingFeatureLogger(newLogger()))
	if err != nil {
		return err
	}

	return gtfparse.WriteGTFFile(output, extended, nil,
		gtfparse.WithLogger(newLogger()))
}
