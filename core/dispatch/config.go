package dispatch

import "fmt"

// Defaults for plan constraints and the intake recency window.
const (
	DefaultMaxHoursOld         = 24
	DefaultMaxTravelKm         = 60
	DefaultTravelBufferMinutes = 30
)

// Config defines dispatch workflow settings.
type Config struct {
	// ApplyCommits persists committed rows to the assignment pool with a
	// compare-and-swap on the New status. When false, Commit only returns
	// the computed records.
	ApplyCommits bool `json:"apply_commits"`
	// MaxHoursOldCeiling bounds the caller-supplied recency window in hours.
	MaxHoursOldCeiling int `json:"max_hours_old_ceiling"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.MaxHoursOldCeiling == 0 {
		c.MaxHoursOldCeiling = 168
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.MaxHoursOldCeiling < 1 {
		return fmt.Errorf("max_hours_old_ceiling must be positive")
	}
	return nil
}
