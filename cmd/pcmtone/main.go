// ABOUTME: Entry point for the pcmtone command
// ABOUTME: Dispatches subcommands for writing, playing and inspecting PCM tones
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/Resonate-Protocol/pcmtone/internal/config"
	"github.com/Resonate-Protocol/pcmtone/internal/logging"
	"github.com/Resonate-Protocol/pcmtone/internal/version"
)

const usage = `Usage: pcmtone <command> [flags]

Commands:
  wav       Write a multi-channel sine wave to a WAV file
  play      Play a sine wave or WAV file on the default output device
  formats   List the supported sample formats
  info      Print the header of a WAV file
  version   Print version information

Run 'pcmtone <command> --help' for command flags.
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "pcmtone: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "wav":
		return runWav(rest)
	case "play":
		return runPlay(rest)
	case "formats":
		return printFormats(stdout)
	case "info":
		return runInfo(rest, stdout)
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, version.String())
		return nil
	case "help", "--help", "-h":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// loadConfig parses flags, loads the layered config and validates it
func loadConfig(fs *pflag.FlagSet, args []string) (*config.Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	path, _ := fs.GetString("config")
	cfg, err := config.Load(path, fs)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger; quiet drops console output
func newLogger(cfg *config.Config, quiet bool) (zerolog.Logger, io.Closer, error) {
	return logging.New(logging.Config{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		NoConsole: quiet,
	})
}
