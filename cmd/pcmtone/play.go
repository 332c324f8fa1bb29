// ABOUTME: play subcommand
// ABOUTME: Renders a generated tone or WAV clip through an output device, with or without the TUI
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/Resonate-Protocol/pcmtone/internal/config"
	"github.com/Resonate-Protocol/pcmtone/internal/ui"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/generate"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/output"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/wavfile"
)

// drainDelay lets the device play out its last buffer before Stop
const drainDelay = 250 * time.Millisecond

// playback is the buffer to play and its layout
type playback struct {
	samples    []int16
	channels   int
	sampleRate int
	label      string
}

// loadPlayback reads file when given, otherwise synthesizes the configured tone
func loadPlayback(cfg *config.Config, file string) (*playback, error) {
	if file != "" {
		clip, err := wavfile.Read(file)
		if err != nil {
			return nil, err
		}
		return &playback{
			samples:    clip.Samples,
			channels:   clip.Channels,
			sampleRate: clip.SampleRate,
			label:      file,
		}, nil
	}

	channels, err := generate.ChannelsWithAmplitude(float64(cfg.Audio.SampleRate), cfg.Tone.Frequency,
		cfg.Tone.Duration, cfg.Tone.Amplitude, cfg.Audio.Channels)
	if err != nil {
		return nil, err
	}
	samples, err := generate.Interleave(channels)
	if err != nil {
		return nil, err
	}
	return &playback{
		samples:    samples,
		channels:   cfg.Audio.Channels,
		sampleRate: cfg.Audio.SampleRate,
	}, nil
}

func runPlay(args []string) error {
	fs := pflag.NewFlagSet("play", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	file := fs.String("file", "", "Play this 16-bit WAV file instead of a generated tone")
	noTUI := fs.Bool("no-tui", false, "Disable TUI, play once and log to the console")
	loop := fs.Bool("loop", false, "Loop the buffer until interrupted")

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	useTUI := !*noTUI

	logger, closer, err := newLogger(cfg, useTUI)
	if err != nil {
		return err
	}
	defer closer.Close()

	format, err := cfg.SampleFormat()
	if err != nil {
		return err
	}

	pb, err := loadPlayback(cfg, *file)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to prepare audio")
		return err
	}

	src, err := output.NewBufferSource(pb.samples, pb.channels, format, *loop)
	if err != nil {
		return err
	}

	dev, err := output.New(cfg.Audio.Backend, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			logger.Warn().Err(err).Msg("Error closing output device")
		}
	}()

	if err := dev.Start(format, pb.sampleRate, pb.channels, src.Render); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if useTUI {
		err = playWithTUI(ctx, logger, dev, src, cfg, pb)
	} else {
		err = playTimed(ctx, logger, src)
	}

	if stopErr := dev.Stop(); stopErr != nil {
		logger.Warn().Err(stopErr).Msg("Error stopping output device")
	}
	return err
}

// playTimed waits for a non-looping source to finish or for a signal
func playTimed(ctx context.Context, logger zerolog.Logger, src *output.BufferSource) error {
	logger.Info().Int("frames", src.Frames()).Msg("Playing, press Ctrl-C to stop")

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Int64("frames_rendered", src.FramesRendered()).Msg("Shutdown signal received")
			return nil
		case <-ticker.C:
			if src.Done() {
				select {
				case <-time.After(drainDelay):
				case <-ctx.Done():
				}
				logger.Info().Int64("frames_rendered", src.FramesRendered()).Msg("Playback finished")
				return nil
			}
		}
	}
}

// playWithTUI runs the bubbletea program on this goroutine and handles its commands
func playWithTUI(ctx context.Context, logger zerolog.Logger, dev output.Device, src *output.BufferSource,
	cfg *config.Config, pb *playback) error {
	ctrl := ui.NewPlaybackControl()
	prog, err := ui.Run(ctrl)
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	sf := dev.Format()
	initial := ui.StatusMsg{
		Backend:        cfg.Audio.Backend,
		Format:         sf.Format.String(),
		SampleRate:     sf.SampleRate,
		Channels:       sf.Channels,
		BitsPerChannel: sf.BitsPerChannel(),
		BytesPerFrame:  sf.BytesPerFrame(),
		Source:         pb.label,
		TotalFrames:    src.Frames(),
		Loop:           src.Loop(),
		State:          ui.StatePlaying,
	}
	if pb.label == "" {
		initial.Frequency = cfg.Tone.Frequency
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		prog.Send(initial)
		controlLoop(ctx, done, logger, dev, src, ctrl, prog)
	}()

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// controlLoop applies TUI commands to the device and reports progress
func controlLoop(ctx context.Context, done <-chan struct{}, logger zerolog.Logger, dev output.Device,
	src *output.BufferSource, ctrl *ui.PlaybackControl, prog *tea.Program) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	finished := false
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			prog.Quit()
			return
		case <-ctrl.Quit:
			return
		case cmd := <-ctrl.Commands:
			switch cmd := cmd.(type) {
			case ui.PauseMsg:
				logger.Info().Bool("paused", cmd.Paused).Msg("Pause toggled")
				if err := dev.Pause(cmd.Paused); err != nil {
					logger.Error().Err(err).Msg("Pause failed")
					prog.Send(ui.StatusMsg{Err: err, State: ui.StateIdle})
				}
			case ui.RestartMsg:
				src.Reset()
				finished = false
				logger.Info().Msg("Playback restarted")
			}
		case <-ticker.C:
			pos := src.Position()
			status := ui.StatusMsg{Position: &pos, FramesPlayed: src.FramesRendered()}
			if src.Done() && !finished {
				finished = true
				status.State = ui.StateFinished
			}
			prog.Send(status)
		}
	}
}
