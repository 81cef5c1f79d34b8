// Package csvpq converts CSV files to Parquet from the command line, with
// schema inference, per-column type directives, and crash-safe output
// handling.
//
// Each input is processed in two passes over the same reader: a sampling
// pass infers an Arrow schema from the leading rows, then a full pass
// decodes the file against the resolved schema and streams record batches
// into a gzip-compressed Parquet file. Outputs are written next to their
// inputs with the .parquet suffix, staged under a hidden temporary name
// and renamed into place only after a successful write, so an interrupted
// run never leaves a partial output under the final name.
//
// # Conversion Model
//
// Inputs may be plain CSV or compressed with gzip, zstd, or lz4
// (data.csv, data.csv.gz, data.csv.zst, data.csv.lz4); all map to the
// same data.parquet neighbour. Inputs whose output already exists are
// skipped, which makes reruns over a directory of files idempotent.
//
// Inference reads at most a fixed sample of rows, so wide integer and
// float columns default to conservative types: integers become int64 and
// floats become float32. The --i32, --i64, --f32, and --f64 flags force a
// type for named columns, or for every eligible column using the '*' or
// '__all__' wildcard.
//
// # Quick Start
//
// Convert files in place:
//
//	csvpq data.csv archive.csv.gz
//
// Force column types:
//
//	csvpq --i32 user_id --i32 item_id --f64 '*' data.csv
//
// Inspect the schema a conversion would use without writing anything:
//
//	csvpq -p data.csv
//
// # Key Packages
//
//	pkg/schema        - Inference, type directives, and schema rewriting
//	pkg/source        - Rewindable readers over plain and compressed CSV
//	pkg/sink          - Staged, atomically renamed output files
//	pkg/columnar      - Parquet encoding of Arrow record batches
//	pkg/config        - File, environment, and flag configuration
//	pkg/errors        - Structured error handling
//	pkg/logger        - Structured logging
//	internal/pipeline - The per-file conversion runner
//
// # Configuration
//
// Settings resolve from defaults, then an optional YAML file, then
// CSVPQ_-prefixed environment variables, then command-line flags:
//
//	conversion:
//	  sample_rows: 8192
//	  batch_size: 1024
//	logging:
//	  level: info
//
// CSVPQ_CONVERSION_SAMPLE_ROWS=500 overrides sample_rows the same way
// --sample-rows 500 does.
package csvpq
