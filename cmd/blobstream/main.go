package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/suparena/blobstream"
	_ "github.com/suparena/blobstream/blobstore/azure"
	_ "github.com/suparena/blobstream/blobstore/ddb"
	_ "github.com/suparena/blobstream/blobstore/mock"
	_ "github.com/suparena/blobstream/blobstore/s3"
	"github.com/suparena/blobstream/config"
	"github.com/suparena/blobstream/registry"
	"github.com/suparena/blobstream/serialization"
	"github.com/suparena/blobstream/stream"
	"github.com/suparena/blobstream/streammodels"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "streams.yaml", "Stream definition file")
	envFlag     = flag.String("env", ".env", "Environment file loaded before the config, ignored when missing")
	streamFlag  = flag.String("stream", "", "Stream to use (defaults to the only stream in the config)")
	logLevel    = flag.String("log-level", "info", "Log level")
	tags        tagFlags
)

// tagFlags collects repeated -tag name=value flags.
type tagFlags []streammodels.NamedValue

func (f *tagFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, tag := range *f {
		parts = append(parts, tag.Name+"="+tag.Value)
	}
	return strings.Join(parts, ",")
}

func (f *tagFlags) Set(value string) error {
	name, v, ok := strings.Cut(value, "=")
	if !ok || name == "" {
		return fmt.Errorf("tag %q must be name=value", value)
	}
	*f = append(*f, streammodels.NamedValue{Name: name, Value: v})
	return nil
}

func init() {
	flag.Var(&tags, "tag", "Tag attached on put, as name=value (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] put <id> [file] | get <id> | list\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nProviders: %s\n", strings.Join(registry.Providers(), ", "))
	}
}

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := blobstream.GetVersionInfo()
		fmt.Printf("blobstream version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, flag.Args(), os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var logger zerolog.Logger
	if isatty.IsTerminal(os.Stderr.Fd()) {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(lvl).With().Timestamp().Logger(), nil
}

func run(ctx context.Context, logger zerolog.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	if err := config.LoadEnv(*envFlag); err != nil {
		return err
	}
	file, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	def, err := selectStream(file, *streamFlag)
	if err != nil {
		return err
	}
	s, err := blobstream.OpenStream(*def, serialization.NewFactory(), stream.WithLogger(logger))
	if err != nil {
		return err
	}
	blobs, err := blobstream.NewTypedStream[[]byte](s)
	if err != nil {
		return err
	}

	switch cmd := args[0]; cmd {
	case "put":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: put <id> [file]")
		}
		data, err := readInput(stdin, args[2:])
		if err != nil {
			return err
		}
		result, err := blobs.PutWithID(ctx, args[1], data, tags...)
		if err != nil {
			return err
		}
		logger.Info().Str("id", args[1]).Int("bytes", len(data)).
			Int64("internalRecordId", result.InternalRecordIDOfPutRecord).Msg("stored")
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: get <id>")
		}
		data, found, err := blobs.GetLatestObjectByID(ctx, args[1])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no record with id %q in stream %s", args[1], s.Name())
		}
		if _, err := stdout.Write(data); err != nil {
			return err
		}
	case "list":
		ids, err := blobs.GetDistinctIDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(stdout, id)
		}
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func selectStream(file *config.File, name string) (*config.StreamDefinition, error) {
	if name != "" {
		return file.Stream(name)
	}
	if len(file.Streams) != 1 {
		return nil, fmt.Errorf("config defines %d streams, pick one with -stream", len(file.Streams))
	}
	return &file.Streams[0], nil
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(args[0])
}
