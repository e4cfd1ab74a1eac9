package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/chunkcheck/internal/check"
	"github.com/bamsammich/chunkcheck/internal/config"
	"github.com/bamsammich/chunkcheck/internal/event"
	"github.com/bamsammich/chunkcheck/internal/ui"
)

var version = "dev"

// Exit codes.
const (
	exitOK       = 0
	exitVerdict  = 1 // missing chunks or size mismatch
	exitUsage    = 2 // bad flags or invalid check config
	exitIO       = 3
	exitCanceled = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// sizeFlag is a pflag.Value accepting byte counts such as "4096" or "1.5GiB".
type sizeFlag struct {
	n   int64
	set bool
}

var _ pflag.Value = (*sizeFlag)(nil)

func (f *sizeFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%d", f.n)
}

func (*sizeFlag) Type() string { return "size" }

func (f *sizeFlag) Set(val string) error {
	n, err := ui.ParseBytes(val)
	if err != nil {
		return err
	}
	f.n, f.set = n, true
	return nil
}

// lockedWriter serializes writes from the logger and the presenter goroutine.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: CLI entry point orchestrates flag parsing and output selection
func run(args []string, stdout, stderr io.Writer) int {
	stderr = &lockedWriter{w: stderr}

	var (
		size        sizeFlag
		chunks      int
		skipSize    bool
		async       bool
		jsonOut     bool
		verbose     bool
		quiet       bool
		showVersion bool
		logFile     string
		configFile  string
		exitCode    = exitOK
	)

	rootCmd := &cobra.Command{
		Use:   "chunkcheck [flags] <dir>",
		Short: "Verify that a directory holds a complete, size-correct set of file chunks",
		Long: `chunkcheck verifies a directory of chunk files written by a splitter.
Chunk files are named by their zero-based index (0, 1, 2, ...); other
files in the directory are ignored. The check fails when any index in
0..chunks-1 is missing, or when the chunks do not add up to --size bytes.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(stdout, "chunkcheck %s\n", version)
				return nil
			}

			// Load optional config file.
			var (
				cfg    config.Config
				cfgErr error
			)
			if configFile != "" {
				cfg, cfgErr = config.LoadFile(configFile)
			} else {
				cfg, cfgErr = config.Load()
			}

			applyConfigDefaults(cmd, cfg.Defaults, &skipSize, &async, &jsonOut)
			ui.ApplyTheme(cfg.Theme)

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if quiet {
				logLevel = slog.LevelError
			}
			textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			logger := slog.New(logHandler)

			if cfgErr != nil {
				logger.Warn("failed to load config", "error", cfgErr)
			}

			b := check.New().InDir(args[0]).TotalChunks(chunks)
			if size.set {
				b.FileSize(size.n)
			}
			if skipSize {
				b.SkipSizeCheck()
			}
			checkCfg, err := b.Build()
			if err != nil {
				exitCode = report(stdout, stderr, checkCfg, err, jsonOut)
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events := make(chan event.Event, 256)
			presenter := ui.NewPresenter(ui.Config{
				Writer:  stderr,
				Quiet:   quiet || jsonOut,
				Verbose: verbose,
			})

			opts := []check.Option{
				check.WithLogger(logger),
				check.WithEvents(events),
			}
			var runner check.Runner = check.NewSyncRunner(checkCfg, opts...)
			if async {
				runner = check.NewAsyncRunner(checkCfg, opts...)
			}

			logger.Debug("starting check",
				"dir", checkCfg.Dir(),
				"total_chunks", checkCfg.TotalChunks(),
				"file_size", checkCfg.FileSize(),
				"skip_size", checkCfg.SkipSize(),
				"async", async,
			)

			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				_ = presenter.Run(events) //nolint:errcheck // presenter error is non-fatal
			}()

			verdict := runner.Run(ctx)
			close(events)
			presenterWg.Wait()

			if errors.Is(verdict, context.Canceled) {
				fmt.Fprintln(stderr, "check canceled")
				exitCode = exitCanceled
				return nil
			}

			exitCode = report(stdout, stderr, checkCfg, verdict, jsonOut)
			return nil
		},
	}

	// Version flag handled in RunE, but also register the flag.
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.Flags().
		Var(&size, "size", "expected total size of all chunks (e.g. 4096, 10MB, 1.5GiB)")
	rootCmd.Flags().IntVarP(&chunks, "chunks", "n", 0, "expected number of chunks")
	rootCmd.Flags().
		BoolVar(&skipSize, "skip-size", false, "only check that every chunk is present")
	rootCmd.Flags().
		BoolVar(&async, "async", false, "run the check as a background task")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "print the verdict as JSON")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except the verdict")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.Flags().
		StringVar(&configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/chunkcheck/config.toml)")

	// Register subcommands.
	rootCmd.AddCommand(newDocsCmd(stdout))

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	return exitCode
}

// report prints the verdict and returns the matching exit code.
func report(stdout, stderr io.Writer, cfg check.Config, verdict error, jsonOut bool) int {
	if jsonOut {
		if err := ui.WriteJSON(stdout, ui.NewReport(cfg, verdict)); err != nil {
			fmt.Fprintf(stderr, "write report: %v\n", err)
		}
	} else {
		ui.WriteVerdict(stdout, cfg, verdict, isTerminal(stdout))
	}
	return exitCodeFor(verdict)
}

func exitCodeFor(verdict error) int {
	if verdict == nil {
		return exitOK
	}
	ce, ok := check.AsCheckError(verdict)
	if !ok {
		return exitIO
	}
	switch ce.(type) {
	case *check.ConfigError:
		return exitUsage
	case *check.IOError:
		return exitIO
	case *check.MissingChunksError, *check.SizeMismatchError:
		return exitVerdict
	}
	return exitIO
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTTY(f.Fd())
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	skipSize *bool,
	async *bool,
	jsonOut *bool,
) {
	if !cmd.Flags().Changed("skip-size") && defaults.SkipSize != nil {
		*skipSize = *defaults.SkipSize
	}
	if !cmd.Flags().Changed("async") && defaults.Async != nil {
		*async = *defaults.Async
	}
	if !cmd.Flags().Changed("json") && defaults.JSON != nil {
		*jsonOut = *defaults.JSON
	}
}
