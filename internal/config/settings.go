// Package config loads the service settings file: the rate card, the delivery
// zone, the fixed delivery points and the runtime tunables of tracking,
// sessions, the broadcaster and the background jobs.
//
// The built-in defaults are embedded in the binary; Load with an empty path
// returns them.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"printdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only settings layout this build understands.
const SupportedVersion = 1

//go:embed defaults.yaml
var defaultSettings []byte

// Settings mirrors the settings file.
type Settings struct {
	Version   int                `yaml:"version"`
	Pricing   PricingSettings    `yaml:"pricing"`
	Zone      ZoneSettings       `yaml:"zone"`
	Locations []LocationSettings `yaml:"locations"`
	Tracking  TrackingSettings   `yaml:"tracking"`
	Sessions  SessionSettings    `yaml:"sessions"`
	Broadcast BroadcastSettings  `yaml:"broadcast"`
	Jobs      JobSettings        `yaml:"jobs"`
}

// TierSettings is one page range. A missing maxPages means open ended.
type TierSettings struct {
	MinPages int             `yaml:"minPages"`
	MaxPages int             `yaml:"maxPages"`
	Rate     decimal.Decimal `yaml:"rate"`
}

// PricingSettings keys schedules by the names pricing.ParseSize,
// pricing.ParsePaper and pricing.ParsePrintMode accept.
type PricingSettings struct {
	Currency           string                               `yaml:"currency"`
	MonochromeDiscount decimal.Decimal                      `yaml:"monochromeDiscount"`
	Plain              map[string]map[string][]TierSettings `yaml:"plain"`
	Specialty          map[string]map[string][]TierSettings `yaml:"specialty"`
	LargeFormat        map[string]decimal.Decimal           `yaml:"largeFormat"`
}

type PointSettings struct {
	Latitude  float64 `yaml:"lat"`
	Longitude float64 `yaml:"lng"`
	Address   string  `yaml:"address"`
}

type RegionSettings struct {
	MinLatitude  float64 `yaml:"minLatitude"`
	MaxLatitude  float64 `yaml:"maxLatitude"`
	MinLongitude float64 `yaml:"minLongitude"`
	MaxLongitude float64 `yaml:"maxLongitude"`
}

type ExclusionSettings struct {
	Name     string        `yaml:"name"`
	Center   PointSettings `yaml:"center"`
	RadiusKm float64       `yaml:"radiusKm"`
}

type BandSettings struct {
	Label string  `yaml:"label"`
	MaxKm float64 `yaml:"maxKm"`
}

type ZoneSettings struct {
	Origin        PointSettings       `yaml:"origin"`
	Region        RegionSettings      `yaml:"region"`
	Exclusions    []ExclusionSettings `yaml:"exclusions"`
	MaxDistanceKm float64             `yaml:"maxDistanceKm"`
	BaseFare      decimal.Decimal     `yaml:"baseFare"`
	PerKm         decimal.Decimal     `yaml:"perKm"`
	FeeCap        decimal.Decimal     `yaml:"feeCap"`
	FeePlaces     int32               `yaml:"feePlaces"`
	Bands         []BandSettings      `yaml:"bands"`
}

type LocationSettings struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"lat"`
	Longitude float64 `yaml:"lng"`
	Popular   bool    `yaml:"popular"`
}

type TrackingSettings struct {
	Interval       time.Duration `yaml:"interval"`
	Timeout        time.Duration `yaml:"timeout"`
	PositionMaxAge time.Duration `yaml:"positionMaxAge"`
}

type SessionSettings struct {
	RecentSize  int           `yaml:"recentSize"`
	MaxSessions int           `yaml:"maxSessions"`
	IdleAfter   time.Duration `yaml:"idleAfter"`
}

type BroadcastSettings struct {
	MailboxSize int `yaml:"mailboxSize"`
}

// JobSettings holds robfig/cron schedule specs.
type JobSettings struct {
	SessionSweep      string        `yaml:"sessionSweep"`
	PositionEviction  string        `yaml:"positionEviction"`
	PositionIdleAfter time.Duration `yaml:"positionIdleAfter"`
}

// Default returns the embedded settings.
func Default() (Settings, error) {
	return Parse(defaultSettings)
}

// Load reads the settings file at path, or the embedded defaults when path is
// empty.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a settings document. Unknown keys are rejected so that a typo
// cannot silently fall back to a zero value.
func Parse(data []byte) (Settings, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Validate checks the version and the runtime tunables. The domain sections
// are checked when they are built.
func (s Settings) Validate() error {
	if s.Version != SupportedVersion {
		return errs.NewVersionIsInvalidErrorWithCause(
			"settings version",
			fmt.Errorf("got %d, this build reads version %d", s.Version, SupportedVersion),
		)
	}

	var problems []error
	positive := func(name string, v time.Duration) {
		if v <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s must be positive", v)))
		}
	}
	positive("tracking.interval", s.Tracking.Interval)
	positive("tracking.timeout", s.Tracking.Timeout)
	positive("tracking.positionMaxAge", s.Tracking.PositionMaxAge)
	positive("sessions.idleAfter", s.Sessions.IdleAfter)
	positive("jobs.positionIdleAfter", s.Jobs.PositionIdleAfter)

	if s.Sessions.RecentSize <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("sessions.recentSize", s.Sessions.RecentSize, 1, nil))
	}
	if s.Sessions.MaxSessions <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("sessions.maxSessions", s.Sessions.MaxSessions, 1, nil))
	}
	if s.Broadcast.MailboxSize <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("broadcast.mailboxSize", s.Broadcast.MailboxSize, 1, nil))
	}
	if s.Jobs.SessionSweep == "" {
		problems = append(problems, errs.NewValueIsRequiredError("jobs.sessionSweep"))
	}
	if s.Jobs.PositionEviction == "" {
		problems = append(problems, errs.NewValueIsRequiredError("jobs.positionEviction"))
	}

	return errors.Join(problems...)
}
