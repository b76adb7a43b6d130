// Command readablepub saves an online article as an EPUB file using the
// Readability Parser API. Images are embedded, scripts and stylesheets are not.
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

	"github.com/mrjoshuak/readablepub"
	"github.com/mrjoshuak/readablepub/internal/config"
	"github.com/mrjoshuak/readablepub/internal/logger"
	"github.com/mrjoshuak/readablepub/types"
)

// Exit codes.
const (
	exitOK      = 0
	exitUsage   = 1 // bad arguments, bad configuration or no token
	exitFailure = 2 // the conversion itself failed
)

// environment is everything the command reads from the process.
type environment struct {
	home      string
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
}

// missingTokenError is returned when neither the flag nor the dotfile
// yields a token.
type missingTokenError struct {
	path string
}

func (e *missingTokenError) Error() string {
	return fmt.Sprintf("You did not pass a Readability parser token as argument and we couldn't read it from %s", e.path)
}

// conversionError marks failures of the conversion pipeline.
type conversionError struct {
	err error
}

func (e *conversionError) Error() string { return e.err.Error() }
func (e *conversionError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	home, _ := os.UserHomeDir()
	os.Exit(run(ctx, os.Args[1:], environment{
		home:      home,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		lookupEnv: os.LookupEnv,
	}))
}

// run executes the command with args and returns the process exit code.
func run(ctx context.Context, args []string, env environment) int {
	cmd := newRootCmd(env)
	cmd.SetArgs(args)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var missing *missingTokenError
	var failed *conversionError
	switch {
	case errors.As(err, &missing):
		fmt.Fprintln(env.stderr, missing.Error())
		return exitUsage
	case errors.As(err, &failed):
		logger.Log.WithError(failed.err).Error("conversion failed")
		return exitFailure
	default:
		fmt.Fprintf(env.stderr, "Error: %v\n", err)
		fmt.Fprintln(env.stderr, cmd.UsageString())
		return exitUsage
	}
}

func newRootCmd(env environment) *cobra.Command {
	var (
		token      string
		outputDir  string
		apiURL     string
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "readablepub <url>",
		Short: "Save online articles as EPUB using the Readability API",
		Long: `readablepub downloads a cleaned-up copy of an online article and packages
it for offline reading as EPUB. Images are included, scripts and
stylesheets are not.

Without --token the first line of ~/` + config.TokenFileName + ` is used.`,
		Args:          cobra.ExactArgs(1),
		Version:       types.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok := config.ResolveToken(token, env.home)
			if !tok.Found() {
				return &missingTokenError{path: tok.Path}
			}

			if configPath == "" {
				configPath = config.DefaultPath(env.home)
			}
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			cfg.ApplyEnv(env.lookupEnv)
			if cmd.Flags().Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIURL = apiURL
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger.Init(cfg.LogLevel, env.stderr)
			logger.Log.WithField("source", tok.Source).Debug("parser token resolved")

			conv, err := readablepub.New(readablepub.WithOptions(cfg.Options(tok.Value)))
			if err != nil {
				return err
			}

			path, err := conv.ConvertURL(cmd.Context(), args[0])
			if err != nil {
				return &conversionError{err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	info := readablepub.GetBuildInfo()
	cmd.SetVersionTemplate(fmt.Sprintf("%s version %s (%s)\n", info.Name, info.Version, info.GoVersion))

	flags := cmd.Flags()
	flags.StringVar(&token, "token", "", "Readability API Parser token")
	flags.StringVarP(&outputDir, "output-dir", "o", ".", "directory the EPUB is written to")
	flags.StringVar(&apiURL, "api-url", types.DefaultAPIBaseURL, "base URL of the parser API")
	flags.StringVar(&configPath, "config", "", "config file (default ~/.config/readablepub/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every request")

	return cmd
}
