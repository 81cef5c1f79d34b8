package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/csvpq/csvpq/internal/pipeline"
	"github.com/csvpq/csvpq/pkg/config"
	"github.com/csvpq/csvpq/pkg/logger"
	"github.com/csvpq/csvpq/pkg/schema"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		_ = logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = logger.Sync()
}

func newRootCmd() *cobra.Command {
	var (
		i32Cols, i64Cols []string
		f32Cols, f64Cols []string
		configFile       string
		sampleRows       int
		batchSize        int
		logLevel         string
		printSchema      bool
		removeInputs     bool
	)

	root := &cobra.Command{
		Use:   "csvpq [flags] FILE...",
		Short: "csvpq - Convert CSV files to Parquet",
		Long: `csvpq converts CSV files (optionally gzip, zstd, or lz4 compressed) to Parquet.
Each FILE is written next to itself with a .parquet suffix; inputs whose output
already exists are skipped so runs can be safely repeated.

Column types are inferred from a sample of each file. Integer columns default
to int64 and float columns to float32; the --i32/--i64/--f32/--f64 flags force
a type for named columns, or for every eligible column with '*' or '__all__'.

Example:
  csvpq --i32 user_id --f64 '*' data.csv archive.csv.gz`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			// Flags override file and environment settings only when
			// given on the command line.
			flags := cmd.Flags()
			if flags.Changed("sample-rows") {
				cfg.Conversion.SampleRows = sampleRows
			}
			if flags.Changed("batch-size") {
				cfg.Conversion.BatchSize = batchSize
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("print-schema") {
				cfg.Conversion.PrintSchema = printSchema
			}
			if flags.Changed("rm") {
				cfg.Conversion.RemoveInputs = removeInputs
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			if err := logger.Init(logger.Config{
				Level:       cfg.Logging.Level,
				Encoding:    cfg.Logging.Encoding,
				Development: cfg.Logging.Development,
			}); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			return runConvert(cfg, schema.Directives{
				Int32:   i32Cols,
				Int64:   i64Cols,
				Float32: f32Cols,
				Float64: f64Cols,
			}, args)
		},
	}

	root.Flags().StringSliceVar(&i32Cols, "i32", nil, "Comma-separated columns to parse as 32-bit integers ('*' or '__all__' for all integer columns)")
	root.Flags().StringSliceVar(&i64Cols, "i64", nil, "Comma-separated columns to parse as 64-bit integers ('*' or '__all__' for all integer columns)")
	root.Flags().StringSliceVar(&f32Cols, "f32", nil, "Comma-separated columns to parse as 32-bit floats ('*' or '__all__' for all float columns)")
	root.Flags().StringSliceVar(&f64Cols, "f64", nil, "Comma-separated columns to parse as 64-bit floats ('*' or '__all__' for all float columns)")
	root.Flags().BoolVarP(&printSchema, "print-schema", "p", false, "Print the resolved schema of each input instead of converting")
	root.Flags().BoolVar(&removeInputs, "rm", false, "Remove each input file after its successful conversion")
	root.Flags().IntVar(&sampleRows, "sample-rows", config.DefaultSampleRows, "Number of rows sampled per file for type inference")
	root.Flags().IntVar(&batchSize, "batch-size", config.DefaultBatchSize, "Number of rows per record batch in the write pass")
	root.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	root.Flags().StringVar(&configFile, "config", "", "Path to a YAML configuration file (optional)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("csvpq v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	return root
}

// runConvert resolves the type directives and processes every input in
// order. Directive conflicts abort before any file is touched.
func runConvert(cfg *config.Config, directives schema.Directives, paths []string) error {
	overrides, defaults, err := schema.Consolidate(directives)
	if err != nil {
		return err
	}

	log := logger.Get().With(zap.String("component", "csvpq-cli"))

	// Converted filenames are echoed to stdout only when stdin is a
	// terminal.
	var progress *os.File
	if term.IsTerminal(int(os.Stdin.Fd())) {
		progress = os.Stdout
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(pipeline.Options{
		Overrides:    overrides,
		Defaults:     defaults,
		SampleRows:   cfg.Conversion.SampleRows,
		BatchSize:    cfg.Conversion.BatchSize,
		PrintSchema:  cfg.Conversion.PrintSchema,
		RemoveInputs: cfg.Conversion.RemoveInputs,
		SchemaOut:    os.Stdout,
		ProgressOut:  progressWriter(progress),
	}, log)

	_, err = runner.Run(ctx, paths)
	return err
}

// progressWriter keeps a nil *os.File from becoming a non-nil io.Writer.
func progressWriter(f *os.File) io.Writer {
	if f == nil {
		return nil
	}
	return f
}
