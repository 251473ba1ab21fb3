package nexovera

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultConfigYAML []byte

// Config is the motion configuration of a page.
type Config struct {
	// NavScrolledOffset is the scroll offset past which the nav is marked
	// as scrolled.
	NavScrolledOffset float64
	Hero              HeroConfig
	Reveal            RevealConfig
	Ambient           []AmbientConfig
	Sequences         []SequenceConfig
	Loops             []LoopConfig
}

// HeroConfig is the intro timeline played on mount.
type HeroConfig struct {
	Entries []HeroEntry
}

// HeroEntry animates the element with Role as one timeline entry.
type HeroEntry struct {
	Role     Role
	From, To PropertyMap
	Duration float32
	Offset   float32
	Ease     ease.TweenFunc
}

// RevealConfig applies to every section element.
type RevealConfig struct {
	Lines  TriggerLines
	Groups []RevealGroup
}

// AmbientConfig seeds ambient loops on every element with Role.
type AmbientConfig struct {
	Role   Role
	Params AmbientParams
}

// SequenceConfig runs one repeating fade sequence per parent over the
// elements with Role.
type SequenceConfig struct {
	Role   Role
	Params SequenceParams
}

// LoopConfig runs an endless tween toward To on every element with Role.
type LoopConfig struct {
	Role     Role
	To       PropertyMap
	Duration float32
	Ease     ease.TweenFunc
	Yoyo     bool
}

// rangeValue decodes either a scalar or a [min, max] sequence.
type rangeValue Range

func (r *rangeValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		*r = rangeValue{Min: v, Max: v}
		return nil
	}
	var vals []float64
	if err := value.Decode(&vals); err != nil {
		return err
	}
	if len(vals) != 2 {
		return fmt.Errorf("line %d: range needs [min, max], got %d values", value.Line, len(vals))
	}
	*r = rangeValue{Min: vals[0], Max: vals[1]}
	return nil
}

type yamlConfig struct {
	NavScrolledOffset *float64 `yaml:"navScrolledOffset"`
	Hero              struct {
		Ease    string      `yaml:"ease"`
		Entries []yamlEntry `yaml:"entries"`
	} `yaml:"hero"`
	Reveal struct {
		EnterLine float64     `yaml:"enterLine"`
		LeaveLine float64     `yaml:"leaveLine"`
		Groups    []yamlGroup `yaml:"groups"`
	} `yaml:"reveal"`
	Ambient   []yamlAmbient  `yaml:"ambient"`
	Sequences []yamlSequence `yaml:"sequences"`
	Loops     []yamlLoop     `yaml:"loops"`
}

type yamlEntry struct {
	Role     string      `yaml:"role"`
	From     PropertyMap `yaml:"from"`
	To       PropertyMap `yaml:"to"`
	Duration float32     `yaml:"duration"`
	Offset   float32     `yaml:"offset"`
	Ease     string      `yaml:"ease"`
}

type yamlGroup struct {
	Role      string      `yaml:"role"`
	From      PropertyMap `yaml:"from"`
	To        PropertyMap `yaml:"to"`
	Duration  float32     `yaml:"duration"`
	Ease      string      `yaml:"ease"`
	Delay     float32     `yaml:"delay"`
	Stagger   float32     `yaml:"stagger"`
	First     bool        `yaml:"first"`
	EnterLine float64     `yaml:"enterLine"`
	Sections  []string    `yaml:"sections"`
}

type yamlAmbient struct {
	Role      string     `yaml:"role"`
	Duration  rangeValue `yaml:"duration"`
	Opacity   rangeValue `yaml:"opacity"`
	Scale     rangeValue `yaml:"scale"`
	DelayStep float32    `yaml:"delayStep"`
	Ease      string     `yaml:"ease"`
	InRange   bool       `yaml:"inRange"`
}

type yamlSequence struct {
	Role     string     `yaml:"role"`
	Duration rangeValue `yaml:"duration"`
	Opacity  rangeValue `yaml:"opacity"`
	Spacing  float32    `yaml:"spacing"`
	Ease     string     `yaml:"ease"`
	Repeat   int        `yaml:"repeat"`
}

type yamlLoop struct {
	Role     string      `yaml:"role"`
	To       PropertyMap `yaml:"to"`
	Duration float32     `yaml:"duration"`
	Ease     string      `yaml:"ease"`
	Yoyo     bool        `yaml:"yoyo"`
}

// DefaultConfig returns the built-in landing page configuration.
func DefaultConfig() Config {
	cfg, err := ParseConfig(defaultConfigYAML)
	if err != nil {
		panic("nexovera: invalid built-in config: " + err.Error())
	}
	return cfg
}

// LoadConfig reads a YAML config file. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig decodes and validates a YAML config. Unset trigger lines
// default to DefaultEnterLine.
func ParseConfig(data []byte) (Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}

	cfg := Config{NavScrolledOffset: 50}
	if raw.NavScrolledOffset != nil {
		cfg.NavScrolledOffset = *raw.NavScrolledOffset
	}

	heroEase, err := ParseEase(raw.Hero.Ease)
	if err != nil {
		return Config{}, fmt.Errorf("hero: %w", err)
	}
	for i, e := range raw.Hero.Entries {
		fn := heroEase
		if e.Ease != "" {
			if fn, err = ParseEase(e.Ease); err != nil {
				return Config{}, fmt.Errorf("hero entry %d: %w", i, err)
			}
		}
		entry := HeroEntry{Role: Role(e.Role), From: e.From, To: e.To, Duration: e.Duration, Offset: e.Offset, Ease: fn}
		if err := (TweenSpec{From: entry.From, To: entry.To, Duration: entry.Duration}).Validate(); err != nil {
			return Config{}, fmt.Errorf("hero entry %d: %w", i, err)
		}
		cfg.Hero.Entries = append(cfg.Hero.Entries, entry)
	}

	lines := TriggerLines{Enter: raw.Reveal.EnterLine, Leave: raw.Reveal.LeaveLine}
	if lines.Enter == 0 {
		lines.Enter = DefaultEnterLine
	}
	if cfg.Reveal.Lines, err = lines.normalize(); err != nil {
		return Config{}, fmt.Errorf("reveal: %w", err)
	}
	for i, g := range raw.Reveal.Groups {
		fn, err := ParseEase(g.Ease)
		if err != nil {
			return Config{}, fmt.Errorf("reveal group %d: %w", i, err)
		}
		group := RevealGroup{
			Role:      Role(g.Role),
			From:      g.From,
			To:        g.To,
			Duration:  g.Duration,
			Ease:      fn,
			Delay:     g.Delay,
			Stagger:   g.Stagger,
			First:     g.First,
			EnterLine: g.EnterLine,
			Sections:  g.Sections,
		}
		if err := (TweenSpec{From: group.From, To: group.To, Duration: group.Duration, Delay: group.Delay}).Validate(); err != nil {
			return Config{}, fmt.Errorf("reveal group %d (%s): %w", i, g.Role, err)
		}
		if group.Stagger < 0 {
			return Config{}, fmt.Errorf("reveal group %d (%s) stagger: %w", i, g.Role, ErrInvalidDelay)
		}
		if group.EnterLine != 0 {
			if _, err := (TriggerLines{Enter: group.EnterLine}).normalize(); err != nil {
				return Config{}, fmt.Errorf("reveal group %d (%s): %w", i, g.Role, err)
			}
		}
		cfg.Reveal.Groups = append(cfg.Reveal.Groups, group)
	}

	for i, a := range raw.Ambient {
		fn := ease.InOutSine
		if a.Ease != "" {
			if fn, err = ParseEase(a.Ease); err != nil {
				return Config{}, fmt.Errorf("ambient %d: %w", i, err)
			}
		}
		params := AmbientParams{
			Duration:  Range(a.Duration),
			Opacity:   Range(a.Opacity),
			Scale:     Range(a.Scale),
			DelayStep: a.DelayStep,
			Ease:      fn,
			InRange:   a.InRange,
		}
		if err := params.Validate(); err != nil {
			return Config{}, fmt.Errorf("ambient %d (%s): %w", i, a.Role, err)
		}
		cfg.Ambient = append(cfg.Ambient, AmbientConfig{Role: Role(a.Role), Params: params})
	}

	for i, q := range raw.Sequences {
		fn := ease.InOutSine
		if q.Ease != "" {
			if fn, err = ParseEase(q.Ease); err != nil {
				return Config{}, fmt.Errorf("sequence %d: %w", i, err)
			}
		}
		params := SequenceParams{
			Duration: Range(q.Duration),
			Opacity:  Range(q.Opacity),
			Spacing:  q.Spacing,
			Ease:     fn,
			Repeat:   q.Repeat,
		}
		if err := params.Validate(); err != nil {
			return Config{}, fmt.Errorf("sequence %d (%s): %w", i, q.Role, err)
		}
		cfg.Sequences = append(cfg.Sequences, SequenceConfig{Role: Role(q.Role), Params: params})
	}

	for i, l := range raw.Loops {
		fn, err := ParseEase(l.Ease)
		if err != nil {
			return Config{}, fmt.Errorf("loop %d: %w", i, err)
		}
		if !(l.Duration > 0) {
			return Config{}, fmt.Errorf("loop %d (%s): %w", i, l.Role, ErrInvalidDuration)
		}
		if len(l.To) == 0 {
			return Config{}, fmt.Errorf("loop %d (%s): %w", i, l.Role, ErrEmptyProperties)
		}
		cfg.Loops = append(cfg.Loops, LoopConfig{Role: Role(l.Role), To: l.To, Duration: l.Duration, Ease: fn, Yoyo: l.Yoyo})
	}
	return cfg, nil
}
