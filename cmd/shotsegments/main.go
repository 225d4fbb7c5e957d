// Package main provides the CLI entry point for shotsegments.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/shotsegments/internal/config"
	coreerrors "github.com/five82/shotsegments/internal/errors"
	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/processing"
	"github.com/five82/shotsegments/internal/reporter"
)

const (
	appName    = "shotsegments"
	appVersion = "0.1.0"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// cliArgs holds the raw command line values. Numeric options stay strings
// so they can be parsed leniently.
type cliArgs struct {
	input        string
	saveImages   bool
	imageDir     string
	threshold    string
	minDuration  string
	ffmpeg       bool
	runExtract   bool
	decoder      string
	verbose      string
	progressJSON bool
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `usage: %s --in <video-file>
                    [--save-images] [--image-dir <dir>]
                    [--threshold t=%d]
                    [--min-duration d=%d]
                    [--ffmpeg] [--run]
                    [--decoder auto|ffmpeg|mpeg]
                    [--verbose[=level]]
                    [--progress-json]
                    [--version] [--help]

`, appName, config.DefaultThreshold, config.DefaultMinDuration)
}

func bindFlags(fs *pflag.FlagSet, a *cliArgs) {
	fs.StringVarP(&a.input, "in", "i", "", "Input video file")
	fs.BoolVarP(&a.saveImages, "save-images", "s", false, "Save the frames on each side of every cut as JPEG")
	fs.StringVar(&a.imageDir, "image-dir", config.DefaultImageDir, "Directory for saved frames")
	fs.StringVarP(&a.threshold, "threshold", "t", "", "Cut threshold")
	fs.StringVarP(&a.minDuration, "min-duration", "m", "", "Minimum segment length in frames")
	fs.BoolVarP(&a.ffmpeg, "ffmpeg", "f", false, "Print ffmpeg extraction commands instead of a listing")
	fs.BoolVar(&a.runExtract, "run", false, "Print and execute the ffmpeg extraction commands")
	fs.StringVar(&a.decoder, "decoder", string(config.DecoderAuto), "Frame decoder (auto, ffmpeg, mpeg)")
	fs.StringVarP(&a.verbose, "verbose", "v", "0", "Verbosity level")
	fs.Lookup("verbose").NoOptDefVal = "1"
	fs.BoolVar(&a.progressJSON, "progress-json", false, "Emit progress events as JSON lines on stderr")
}

func newRootCmd(ctx context.Context, a *cliArgs, stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Split a video into shots",
		Version:       appVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		RunE: func(*cobra.Command, []string) error {
			if a.input == "" {
				printUsage(stdout)
				return nil
			}
			cfg, err := buildConfig(*a)
			if err != nil {
				return err
			}
			*exitCode = execute(ctx, cfg, a.progressJSON, stdout, stderr)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetContext(ctx)
	cmd.SetHelpFunc(func(*cobra.Command, []string) { printUsage(stdout) })
	cmd.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}}\n", appName))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		printUsage(stdout)
		return nil
	})
	bindFlags(cmd.Flags(), a)

	return cmd
}

func buildConfig(a cliArgs) (*config.Config, error) {
	cfg := config.NewConfig(a.input)
	cfg.Threshold = config.ParseCount(a.threshold, config.DefaultThreshold)
	cfg.MinDuration = config.ParseCount(a.minDuration, config.DefaultMinDuration)
	cfg.SaveImages = a.saveImages
	cfg.ImageDir = a.imageDir
	cfg.RunExtract = a.runExtract
	cfg.Verbose = config.ParseLevel(a.verbose)
	if a.ffmpeg {
		cfg.Mode = config.OutputFFmpeg
	}

	decoder, err := config.ParseDecoder(a.decoder)
	if err != nil {
		return nil, err
	}
	cfg.Decoder = decoder

	return cfg, nil
}

// selectReporter picks JSON events when asked for, the terminal UI when
// stderr is an interactive terminal and verbose logging is off, and
// nothing otherwise.
func selectReporter(progressJSON bool, verbose int, stderr io.Writer) reporter.Reporter {
	if progressJSON {
		return reporter.NewJSONReporter(stderr)
	}
	if f, ok := stderr.(*os.File); ok && verbose == 0 && reporter.IsTerminal(f) {
		return reporter.NewTerminalReporter(stderr)
	}
	return reporter.NullReporter{}
}

func execute(ctx context.Context, cfg *config.Config, progressJSON bool, stdout, stderr io.Writer) int {
	logging.Init(logging.LevelForVerbosity(cfg.Verbose), stderr)
	log := logging.Global()

	log.Debug("configuration",
		"input", cfg.InputFile,
		"threshold", cfg.Threshold,
		"min_duration", cfg.MinDuration,
		"decoder", cfg.Decoder,
		"commands", cfg.CommandMode(),
		"run", cfg.RunExtract,
	)

	rep := selectReporter(progressJSON, cfg.Verbose, stderr)
	if _, err := processing.Run(ctx, cfg, stdout, rep, log); err != nil {
		var coreErr *coreerrors.CoreError
		if coreerrors.IsStreamError(err) && errors.As(err, &coreErr) {
			fmt.Fprintln(stderr, coreErr.Message)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// run parses args and processes the video. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return 0
	}

	var a cliArgs
	exitCode := 0
	cmd := newRootCmd(ctx, &a, stdout, stderr, &exitCode)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return exitCode
}
