package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vela-db/vela/pkg/column"
	"github.com/vela-db/vela/pkg/config"
	verrors "github.com/vela-db/vela/pkg/errors"
	"github.com/vela-db/vela/pkg/json"
	"github.com/vela-db/vela/pkg/logger"
)

var version = "0.1.0"

// manifest is the CLI's out-of-band record of what lives in a chunk
// directory. The library itself never sees it: chunks carry no type
// information, so whoever persists them must remember the column types and
// chunk order, and for this tool that is the manifest.
type manifest struct {
	Rows    int              `yaml:"rows"`
	Columns []manifestColumn `yaml:"columns"`
}

type manifestColumn struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Chunks []string `yaml:"chunks"`
}

const manifestFile = "manifest.yaml"

type field struct {
	name string
	typ  column.ColumnType
}

// parseSchema parses "name:type,name:type" declarations, preserving order.
func parseSchema(spec string) ([]field, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, verrors.New(verrors.ErrorTypeConfig, "schema must declare at least one column")
	}

	var fields []field
	seen := map[string]bool{}
	for _, part := range strings.Split(spec, ",") {
		name, typeName, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || name == "" {
			return nil, verrors.Newf(verrors.ErrorTypeConfig, "invalid schema entry %q, want name:type", part)
		}
		if seen[name] {
			return nil, verrors.Newf(verrors.ErrorTypeConfig, "duplicate column %q in schema", name)
		}
		seen[name] = true

		ct, err := column.ParseColumnType(typeName)
		if err != nil {
			return nil, verrors.Wrap(err, verrors.ErrorTypeConfig, "invalid schema entry "+part)
		}
		fields = append(fields, field{name: name, typ: ct})
	}
	return fields, nil
}

// normalize converts decoder output to what the column's AppendValue
// coercion expects, mostly unboxing json.Number per column type.
func normalize(ct column.ColumnType, v interface{}) (interface{}, error) {
	n, ok := v.(json.Number)
	if !ok {
		return v, nil
	}
	switch ct {
	case column.ColumnTypeFloat, column.ColumnTypeDouble:
		f, err := n.Float64()
		if err != nil {
			return nil, verrors.Newf(verrors.ErrorTypeData, "cannot read %q as a float", n)
		}
		return f, nil
	case column.ColumnTypeString:
		return n.String(), nil
	default:
		i, err := n.Int64()
		if err != nil {
			return nil, verrors.Newf(verrors.ErrorTypeData, "cannot read %q as an integer", n)
		}
		return i, nil
	}
}

func runPack(schemaSpec, inputPath, outDir string) error {
	fields, err := parseSchema(schemaSpec)
	if err != nil {
		return err
	}

	cols := make([]column.Column, len(fields))
	for i, f := range fields {
		col, err := column.NewColumn(f.typ, 1024)
		if err != nil {
			return err
		}
		cols[i] = col
	}

	in := io.Reader(os.Stdin)
	if inputPath != "" && inputPath != "-" {
		f, err := os.Open(inputPath) //nolint:gosec // G304: path comes from the operator
		if err != nil {
			return verrors.Wrap(err, verrors.ErrorTypeFile, "opening input")
		}
		defer f.Close()
		in = f
	}

	dec := json.NewDecoder(in)
	rows := 0
	for {
		var record map[string]interface{}
		if err := dec.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return verrors.Wrap(err, verrors.ErrorTypeData, fmt.Sprintf("decoding record %d", rows))
		}

		for i, f := range fields {
			raw, ok := record[f.name]
			if !ok {
				return verrors.Newf(verrors.ErrorTypeData, "record %d is missing column %q", rows, f.name)
			}
			v, err := normalize(f.typ, raw)
			if err != nil {
				return verrors.Wrap(err, verrors.ErrorTypeData, fmt.Sprintf("record %d column %q", rows, f.name))
			}
			if err := cols[i].AppendValue(v); err != nil {
				return verrors.Wrap(err, verrors.ErrorTypeData, fmt.Sprintf("record %d column %q", rows, f.name))
			}
		}
		rows++
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return verrors.Wrap(err, verrors.ErrorTypeFile, "creating output directory")
	}

	m := manifest{Rows: rows}
	for i, f := range fields {
		mc := manifestColumn{Name: f.name, Type: f.typ.String()}
		for j, chunk := range cols[i].Buffers() {
			chunkName := fmt.Sprintf("%s.%d.chunk", f.name, j)
			if err := os.WriteFile(filepath.Join(outDir, chunkName), chunk, 0o644); err != nil { //nolint:gosec
				return verrors.Wrap(err, verrors.ErrorTypeFile, "writing chunk "+chunkName)
			}
			mc.Chunks = append(mc.Chunks, chunkName)
		}
		m.Columns = append(m.Columns, mc)

		logger.Debug("packed column",
			zap.String("column", f.name),
			zap.String("type", f.typ.String()),
			zap.Int64("memory_bytes", cols[i].MemoryUsage()))
	}

	if err := config.Save(filepath.Join(outDir, manifestFile), &m); err != nil {
		return err
	}

	logger.Info("packed dataset",
		zap.Int("rows", rows),
		zap.Int("columns", len(fields)),
		zap.String("dir", outDir))
	return nil
}

func loadDataset(dir string) (*manifest, []column.Column, error) {
	var m manifest
	if err := config.Load(filepath.Join(dir, manifestFile), &m); err != nil {
		return nil, nil, err
	}

	cols := make([]column.Column, len(m.Columns))
	for i, mc := range m.Columns {
		ct, err := column.ParseColumnType(mc.Type)
		if err != nil {
			return nil, nil, verrors.Wrap(err, verrors.ErrorTypeData, "manifest column "+mc.Name)
		}
		if len(mc.Chunks) != ct.BufferCount() {
			return nil, nil, verrors.Newf(verrors.ErrorTypeData,
				"manifest column %q lists %d chunks, %s columns have %d", mc.Name, len(mc.Chunks), mc.Type, ct.BufferCount())
		}

		chunks := make([][]byte, len(mc.Chunks))
		for j, chunkName := range mc.Chunks {
			data, err := os.ReadFile(filepath.Join(dir, chunkName)) //nolint:gosec // G304: path comes from the manifest
			if err != nil {
				return nil, nil, verrors.Wrap(err, verrors.ErrorTypeFile, "reading chunk "+chunkName)
			}
			chunks[j] = data
		}

		col, err := column.RestoreColumn(ct, chunks)
		if err != nil {
			return nil, nil, verrors.Wrap(err, verrors.ErrorTypeData, "restoring column "+mc.Name)
		}
		if col.Len() != m.Rows {
			return nil, nil, verrors.Newf(verrors.ErrorTypeData,
				"column %q holds %d rows, manifest says %d", mc.Name, col.Len(), m.Rows)
		}
		cols[i] = col
	}
	return &m, cols, nil
}

func runUnpack(dir, outputPath string) error {
	m, cols, err := loadDataset(dir)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outputPath != "" && outputPath != "-" {
		f, err := os.Create(outputPath) //nolint:gosec // G304: path comes from the operator
		if err != nil {
			return verrors.Wrap(err, verrors.ErrorTypeFile, "creating output")
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	for i := 0; i < m.Rows; i++ {
		record := make(map[string]interface{}, len(cols))
		for j, mc := range m.Columns {
			v, err := cols[j].Value(i)
			if err != nil {
				return verrors.Wrap(err, verrors.ErrorTypeData, fmt.Sprintf("row %d column %q", i, mc.Name))
			}
			record[mc.Name] = v
		}
		if err := enc.Encode(record); err != nil {
			return verrors.Wrap(err, verrors.ErrorTypeInternal, fmt.Sprintf("encoding row %d", i))
		}
	}

	logger.Info("unpacked dataset", zap.Int("rows", m.Rows), zap.Int("columns", len(cols)))
	return nil
}

func runInspect(dir string) error {
	m, cols, err := loadDataset(dir)
	if err != nil {
		return err
	}

	fmt.Printf("dataset: %s (%d rows)\n", dir, m.Rows)
	for i, mc := range m.Columns {
		total := 0
		for _, chunk := range cols[i].Buffers() {
			total += len(chunk)
		}
		fmt.Printf("  %-20s %-12s chunks=%d serialized=%dB memory=%dB\n",
			mc.Name, mc.Type, len(mc.Chunks), total, cols[i].MemoryUsage())
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	var logLevel string

	root := &cobra.Command{
		Use:   "vela",
		Short: "Vela - typed columnar chunk tool",
		Long: `Vela packs JSONL records into typed columnar chunk files and back.
Column types are never embedded in the chunks themselves; the tool records
them in a manifest next to the chunks.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{Level: logLevel, Encoding: "console"})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Vela v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List supported column types",
		Run: func(cmd *cobra.Command, args []string) {
			for _, ct := range []column.ColumnType{
				column.ColumnTypeInt, column.ColumnTypeLong,
				column.ColumnTypeFloat, column.ColumnTypeDouble,
				column.ColumnTypeByte, column.ColumnTypeBool,
				column.ColumnTypeCompactBool, column.ColumnTypeString,
			} {
				fmt.Printf("  - %s (%d chunk(s))\n", ct, ct.BufferCount())
			}
		},
	})

	var schemaSpec, inputPath, outDir string
	packCmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack JSONL records into columnar chunks",
		Long: `Read JSONL records and append each declared column's values into a typed
column, then write the serialized chunks and a manifest.

Example:
  vela pack --schema "id:long,name:string,active:compactbool" --input rows.jsonl --out ./data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(schemaSpec, inputPath, outDir)
		},
	}
	packCmd.Flags().StringVar(&schemaSpec, "schema", "", "Ordered column declarations, name:type pairs (required)")
	packCmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSONL input file (default stdin)")
	packCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory for chunks and manifest (required)")
	_ = packCmd.MarkFlagRequired("schema")
	_ = packCmd.MarkFlagRequired("out")
	root.AddCommand(packCmd)

	var unpackDir, outputPath string
	unpackCmd := &cobra.Command{
		Use:   "unpack",
		Short: "Restore columns from chunks and emit JSONL records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(unpackDir, outputPath)
		},
	}
	unpackCmd.Flags().StringVarP(&unpackDir, "dir", "d", "", "Chunk directory written by pack (required)")
	unpackCmd.Flags().StringVarP(&outputPath, "output", "o", "", "JSONL output file (default stdout)")
	_ = unpackCmd.MarkFlagRequired("dir")
	root.AddCommand(unpackCmd)

	var inspectDir string
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show column stats for a chunk directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(inspectDir)
		},
	}
	inspectCmd.Flags().StringVarP(&inspectDir, "dir", "d", "", "Chunk directory written by pack (required)")
	_ = inspectCmd.MarkFlagRequired("dir")
	root.AddCommand(inspectCmd)

	defer func() { _ = logger.Sync() }()
	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
