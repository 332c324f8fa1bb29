// ABOUTME: Layered configuration for pcmtone
// ABOUTME: Merges defaults, a YAML file, PCMTONE_ environment variables and command-line flags
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/generate"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/output"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/wavfile"
)

// EnvPrefix prefixes environment overrides, e.g. PCMTONE_AUDIO_SAMPLE_RATE
const EnvPrefix = "PCMTONE"

// Config is the complete program configuration
type Config struct {
	Audio struct {
		SampleRate int    `mapstructure:"sample_rate"`
		Channels   int    `mapstructure:"channels"`
		Format     string `mapstructure:"format"`
		Backend    string `mapstructure:"backend"`
	} `mapstructure:"audio"`

	Tone struct {
		Frequency float64 `mapstructure:"frequency"`
		Duration  float64 `mapstructure:"duration"`
		Amplitude float64 `mapstructure:"amplitude"`
	} `mapstructure:"tone"`

	Output struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"output"`

	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"sample-rate": "audio.sample_rate",
	"channels":    "audio.channels",
	"format":      "audio.format",
	"backend":     "audio.backend",
	"frequency":   "tone.frequency",
	"duration":    "tone.duration",
	"amplitude":   "tone.amplitude",
	"output":      "output.path",
	"log-level":   "log.level",
	"log-file":    "log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("audio.sample_rate", wavfile.SineSampleRate)
	v.SetDefault("audio.channels", 2)
	v.SetDefault("audio.format", audio.FormatS16LE.String())
	v.SetDefault("audio.backend", output.BackendMalgo)
	v.SetDefault("tone.frequency", wavfile.DefaultFrequency)
	v.SetDefault("tone.duration", wavfile.DefaultDuration)
	v.SetDefault("tone.amplitude", generate.DefaultAmplitude)
	v.SetDefault("output.path", "sine.wav")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// RegisterFlags adds the flags that Load knows how to bind. Values given
// here are display defaults only; precedence is decided by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Config file path (default: search for pcmtone.yaml)")
	fs.Int("sample-rate", wavfile.SineSampleRate, "Sample rate in Hz")
	fs.IntP("channels", "n", 2, "Number of channels")
	fs.StringP("format", "f", audio.FormatS16LE.String(), "Sample format (s16le, s16be, s32le, s32be, f32)")
	fs.StringP("backend", "b", output.BackendMalgo, "Output backend (malgo, oto, portaudio)")
	fs.Float64("frequency", wavfile.DefaultFrequency, "Base frequency in Hz")
	fs.Float64P("duration", "d", wavfile.DefaultDuration, "Duration in seconds")
	fs.Float64P("amplitude", "a", generate.DefaultAmplitude, "Amplitude as a fraction of full scale")
	fs.StringP("output", "o", "sine.wav", "Output WAV path")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-file", "", "Also write JSON logs to this file")
}

// Load reads configuration. An explicit path must exist; otherwise
// pcmtone.yaml is searched in ., ./config and $HOME/.config/pcmtone and
// may be absent. Only flags that were set on the command line override.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pcmtone")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pcmtone"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// SampleFormat parses the configured sample format
func (c *Config) SampleFormat() (audio.SampleFormat, error) {
	return audio.ParseSampleFormat(c.Audio.Format)
}

// Validate rejects values no command can use
func (c *Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", audio.ErrInvalidInput, c.Audio.SampleRate)
	}
	if c.Audio.Channels <= 0 {
		return fmt.Errorf("%w: channels must be positive, got %d", audio.ErrInvalidInput, c.Audio.Channels)
	}
	if _, err := c.SampleFormat(); err != nil {
		return err
	}
	known := false
	for _, b := range output.Backends() {
		if c.Audio.Backend == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: unknown backend %q", audio.ErrInvalidInput, c.Audio.Backend)
	}
	if c.Tone.Duration <= 0 || math.IsInf(c.Tone.Duration, 0) || math.IsNaN(c.Tone.Duration) {
		return fmt.Errorf("%w: duration must be positive, got %g", audio.ErrInvalidInput, c.Tone.Duration)
	}
	if math.IsInf(c.Tone.Frequency, 0) || math.IsNaN(c.Tone.Frequency) {
		return fmt.Errorf("%w: frequency must be finite", audio.ErrInvalidInput)
	}
	if math.IsInf(c.Tone.Amplitude, 0) || math.IsNaN(c.Tone.Amplitude) {
		return fmt.Errorf("%w: amplitude must be finite", audio.ErrInvalidInput)
	}
	return nil
}
