// ABOUTME: wav and info subcommands
// ABOUTME: Writes the multi-channel sine WAV and prints WAV headers
package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/Resonate-Protocol/pcmtone/internal/config"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/wavfile"
)

func runWav(args []string) error {
	fs := pflag.NewFlagSet("wav", pflag.ContinueOnError)
	config.RegisterFlags(fs)

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	start := time.Now()
	err = wavfile.SineWaveAt(cfg.Output.Path, cfg.Audio.SampleRate, cfg.Audio.Channels,
		cfg.Tone.Frequency, cfg.Tone.Duration, cfg.Tone.Amplitude)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Output.Path).Msg("Failed to write WAV file")
		return err
	}

	logger.Info().
		Str("path", cfg.Output.Path).
		Int("channels", cfg.Audio.Channels).
		Int("sample_rate", cfg.Audio.SampleRate).
		Float64("frequency", cfg.Tone.Frequency).
		Float64("duration", cfg.Tone.Duration).
		Dur("elapsed", time.Since(start)).
		Msg("Wrote sine wave")
	return nil
}

func runInfo(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("info", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: pcmtone info <file.wav>")
	}
	return printInfo(stdout, fs.Arg(0))
}

func printInfo(w io.Writer, path string) error {
	clip, err := wavfile.Read(path)
	if err != nil {
		return err
	}

	var duration time.Duration
	if clip.SampleRate > 0 {
		duration = time.Duration(clip.Frames()) * time.Second / time.Duration(clip.SampleRate)
	}
	fmt.Fprintf(w, "File:            %s\n", path)
	fmt.Fprintf(w, "Sample rate:     %d Hz\n", clip.SampleRate)
	fmt.Fprintf(w, "Channels:        %d\n", clip.Channels)
	fmt.Fprintf(w, "Bits/channel:    %d\n", clip.BitDepth)
	fmt.Fprintf(w, "Bytes per frame: %d\n", clip.BytesPerFrame())
	fmt.Fprintf(w, "Frames:          %d\n", clip.Frames())
	fmt.Fprintf(w, "Duration:        %s\n", duration)
	return nil
}

func printFormats(w io.Writer) error {
	fmt.Fprintf(w, "%-8s %-5s %-6s %-10s %s\n", "NAME", "BITS", "BYTES", "ENDIAN", "ENCODING")
	for _, f := range audio.AllFormats() {
		info, err := f.Info()
		if err != nil {
			return err
		}
		endian := "little"
		if info.BigEndian() {
			endian = "big"
		}
		encoding := "signed"
		if info.Float() {
			encoding = "float"
		}
		fmt.Fprintf(w, "%-8s %-5d %-6d %-10s %s\n", info.Name, info.BitsPerChannel, info.BytesPerSample, endian, encoding)
	}
	return nil
}
