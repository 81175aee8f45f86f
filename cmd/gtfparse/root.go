package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openvax/gtfparse"
)

var rootCmd = &cobra.Command{
	Use:   "gtfparse",
	Short: "GTF annotation file toolkit",
	Long:  "gtfparse parses Gene Transfer Format files into tabular form, converts them to TSV, and reconstructs missing gene/transcript rows.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose (debug) output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress log output")
	rootCmd.PersistentFlags().Int("chunk-size", 0, "Lines per parse chunk (0 = default)")
	rootCmd.PersistentFlags().Int("parallelism", 1, "Chunk parse goroutines")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("chunk_size", rootCmd.PersistentFlags().Lookup("chunk-size"))
	_ = viper.BindPFlag("parallelism", rootCmd.PersistentFlags().Lookup("parallelism"))
}

func initConfig() {
	viper.SetEnvPrefix("GTFPARSE")
	viper.AutomaticEnv()
}

// newLogger maps the verbosity flags to a structured logger.
func newLogger() *gtfparse.Logger {
	if viper.GetBool("quiet") {
		return gtfparse.NoopLogger()
	}
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return gtfparse.NewTextLogger(level)
}

// readOptions assembles the parse options shared by all subcommands.
func readOptions() []gtfparse.Option {
	opts := []gtfparse.Option{gtfparse.WithLogger(newLogger())}
	if n := viper.GetInt("chunk_size"); n > 0 {
		opts = append(opts, gtfparse.WithChunkSize(n))
	}
	if n := viper.GetInt("parallelism"); n > 1 {
		opts = append(opts, gtfparse.WithParallelism(n))
	}
	return opts
}
