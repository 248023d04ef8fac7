package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jack-barr3tt/gbr-priority/src/common/config"
	"github.com/jack-barr3tt/gbr-priority/src/common/dataset"
	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	"github.com/jack-barr3tt/gbr-priority/src/common/utils"
)

func main() {
	utils.InitLogger()
	defer utils.SyncLogger()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	case "rank":
		return runRank(args[1:], stdout, stderr)
	case "convert":
		return runConvert(args[1:], stdout, stderr)
	case "summary":
		return runSummary(args[1:], stdout, stderr)
	case "seed":
		return runSeed(args[1:], stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command: %s\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprint(w, `usage: dataset-tool <command> [flags]

commands:
  rank     --input FILE [--types a,b] [--min-urgency X] [--top N]
  convert  --input FILE --output FILE
  summary  --input FILE
  seed     --input FILE --table NAME

FILE is a .csv or .cbor train table. seed loads FILE into a Postgres table
for the dashboard's import endpoint, using the POSTGRES_* settings.
`)
}

func loadFile(path string) (types.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Dataset{}, err
	}
	defer f.Close()

	ds, err := dataset.Load(path, f)
	if err != nil {
		return types.Dataset{}, fmt.Errorf("load %s: %w", path, err)
	}
	utils.GetLogger().Debugw("loaded dataset", "path", path, "rows", ds.Len(), "columns", len(ds.Columns))
	return ds, nil
}

func loadNormalized(path string) (types.Dataset, error) {
	ds, err := loadFile(path)
	if err != nil {
		return types.Dataset{}, err
	}
	return ranking.Normalize(ds)
}

func fail(stderr io.Writer, err error) int {
	_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
	return 1
}

func runRank(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var inputPath, typeList, minUrgency string
	var top int
	fs.StringVar(&inputPath, "input", "", "Input .csv or .cbor file")
	fs.StringVar(&typeList, "types", "", "Comma separated train types to keep (default all)")
	fs.StringVar(&minUrgency, "min-urgency", "", "Minimum urgency score (0-10)")
	fs.IntVar(&top, "top", ranking.DefaultPreviewRows, "Number of trains to print")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inputPath == "" {
		_, _ = fmt.Fprintln(stderr, "--input is required")
		return 2
	}

	typesSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "types" {
			typesSet = true
		}
	})

	floor, err := utils.ParseFloatParam("min-urgency", minUrgency, 0, config.DefaultMaxUrgencyFloor)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	ds, err := loadNormalized(inputPath)
	if err != nil {
		return fail(stderr, err)
	}

	filtered, err := ranking.Filter(ds, ranking.FilterOptions{
		Types:      utils.ParseTypeList(typeList, typesSet),
		MinUrgency: floor,
	})
	if err != nil {
		return fail(stderr, err)
	}

	for _, line := range ranking.Headlines(ranking.TopN(ranking.Rank(filtered), top)) {
		_, _ = fmt.Fprintln(stdout, line)
	}
	return 0
}

func runConvert(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var inputPath, outputPath string
	fs.StringVar(&inputPath, "input", "", "Input .csv or .cbor file")
	fs.StringVar(&outputPath, "output", "", "Output .csv or .cbor file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inputPath == "" || outputPath == "" {
		_, _ = fmt.Fprintln(stderr, "--input and --output are required")
		return 2
	}

	format, err := dataset.FormatOf(outputPath)
	if err != nil {
		return fail(stderr, err)
	}

	ds, err := loadFile(inputPath)
	if err != nil {
		return fail(stderr, err)
	}

	if err := writeFile(outputPath, format, ds); err != nil {
		return fail(stderr, err)
	}

	_, _ = fmt.Fprintf(stdout, "wrote %d rows to %s\n", ds.Len(), filepath.Clean(outputPath))
	return 0
}

func writeFile(path, format string, ds types.Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if format == dataset.FormatCSV {
		return dataset.WriteCSV(f, ds)
	}
	return dataset.WriteTable(f, ds)
}

func runSummary(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var inputPath string
	fs.StringVar(&inputPath, "input", "", "Input .csv or .cbor file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inputPath == "" {
		_, _ = fmt.Fprintln(stderr, "--input is required")
		return 2
	}

	ds, err := loadNormalized(inputPath)
	if err != nil {
		return fail(stderr, err)
	}

	summary, err := ranking.Summarize(ds)
	if err != nil {
		return fail(stderr, err)
	}

	_, _ = fmt.Fprintf(stdout, "Max urgency:         %.2f\n", summary.MaxUrgency)
	_, _ = fmt.Fprintf(stdout, "Min urgency:         %.2f\n", summary.MinUrgency)
	_, _ = fmt.Fprintf(stdout, "Avg duration (mins): %d\n", summary.MeanDuration)
	_, _ = fmt.Fprintf(stdout, "Total trains:        %d\n", summary.TotalCount)
	return 0
}

func runSeed(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var inputPath, table string
	fs.StringVar(&inputPath, "input", "", "Input .csv or .cbor file")
	fs.StringVar(&table, "table", "trains", "Destination table")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inputPath == "" {
		_, _ = fmt.Fprintln(stderr, "--input is required")
		return 2
	}

	cfg, errs := config.Load(os.Getenv("CONFIG_FILE"))
	if len(errs) > 0 {
		return fail(stderr, errors.Join(errs...))
	}
	if !cfg.PostgresEnabled() {
		_, _ = fmt.Fprintln(stderr, "POSTGRES_HOST is not set")
		return 2
	}

	ds, err := loadNormalized(inputPath)
	if err != nil {
		return fail(stderr, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := utils.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return fail(stderr, err)
	}
	defer pool.Close()

	log := utils.GetLogger()
	log.Infow("seeding table", "table", table, "rows", ds.Len())
	n, err := dataset.StorePostgres(ctx, pool, table, ds)
	if err != nil {
		log.Errorw("seed failed", "table", table, "error", err)
		return fail(stderr, err)
	}

	_, _ = fmt.Fprintf(stdout, "copied %d rows into %s\n", n, table)
	return 0
}
