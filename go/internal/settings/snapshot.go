package settings

import (
	"fmt"
	"regexp"
)

// Snapshot is the immutable set of timer tunables loaded from the
// configuration document. Times suffixed with Secs are seconds, every other
// time is minutes.
type Snapshot struct {
	AdminLevel          int // 0 everyone .. 3 master admins only, 4 nobody
	WhitelistAdminLevel int // 0 nobody, 1 master admins, 2 admins and master admins

	ClockColour  string
	WarnSecs     int
	WarnColour   string
	DangerSecs   int
	DangerColour string

	DefaultTime int
	MaxTime     int // 0 means unlimited
	MinTime     int
	CustomTime  bool
	AuthorMult  float64 // 0 disables author-time defaulting

	UseChat   bool
	ShowPanel bool

	EmergencyTime int
	EmergencyMin  int // 0 means unlimited

	Whitelist []string
}

// Defaults returns the built-in snapshot used when the document is missing
// or unusable.
func Defaults() Snapshot {
	return Snapshot{
		AdminLevel:          3,
		WhitelistAdminLevel: 1,
		ClockColour:         "fff",
		WarnSecs:            300,
		WarnColour:          "ff4",
		DangerSecs:          60,
		DangerColour:        "f44",
		DefaultTime:         120,
		MaxTime:             1440,
		MinTime:             15,
		CustomTime:          true,
		AuthorMult:          0,
		UseChat:             false,
		ShowPanel:           true,
		EmergencyTime:       30,
		EmergencyMin:        10,
		Whitelist:           []string{},
	}
}

var colourPattern = regexp.MustCompile(`^(?i)[0-9a-f]{3}([0-9a-f]{3})?$`)

// rawConfig mirrors the document. Pointers tell absent keys from zero values.
type rawConfig struct {
	AdminLevel          *int     `yaml:"admin_level"`
	WhitelistAdminLevel *int     `yaml:"whitelist_admin_level"`
	ClockColour         *string  `yaml:"clock_colour"`
	WarnTime            *int     `yaml:"warn_time"`
	WarnColour          *string  `yaml:"warn_colour"`
	DangerTime          *int     `yaml:"danger_time"`
	DangerColour        *string  `yaml:"danger_colour"`
	DefaultTime         *int     `yaml:"default_time"`
	MaxTime             *int     `yaml:"max_time"`
	MinTime             *int     `yaml:"min_time"`
	CustomTime          *bool    `yaml:"custom_time"`
	AuthorMult          *float64 `yaml:"author_mult"`
	UseChat             *bool    `yaml:"use_chat"`
	ShowPanel           *bool    `yaml:"show_panel"`
	EmergencyTime       *int     `yaml:"emergency_time"`
	EmergencyMin        *int     `yaml:"emergency_min"`
	Whitelist           []string `yaml:"whitelist"`
}

// snapshot converts the raw document onto the defaults. Every field that is
// out of range keeps its default and yields a warning.
func (r rawConfig) snapshot() (Snapshot, []string) {
	s := Defaults()
	var warnings []string

	intField := func(name string, src *int, dst *int, lo, hi int) {
		if src == nil {
			return
		}
		if *src < lo || (hi >= lo && *src > hi) {
			warnings = append(warnings, fmt.Sprintf("%s=%d out of range, using default %d", name, *src, *dst))
			return
		}
		*dst = *src
	}
	colourField := func(name string, src *string, dst *string) {
		if src == nil {
			return
		}
		if !colourPattern.MatchString(*src) {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not a hex colour, using default %q", name, *src, *dst))
			return
		}
		*dst = *src
	}
	boolField := func(src *bool, dst *bool) {
		if src != nil {
			*dst = *src
		}
	}

	intField("admin_level", r.AdminLevel, &s.AdminLevel, 0, 4)
	intField("whitelist_admin_level", r.WhitelistAdminLevel, &s.WhitelistAdminLevel, 0, 2)
	colourField("clock_colour", r.ClockColour, &s.ClockColour)
	intField("warn_time", r.WarnTime, &s.WarnSecs, 0, -1)
	colourField("warn_colour", r.WarnColour, &s.WarnColour)
	intField("danger_time", r.DangerTime, &s.DangerSecs, 0, -1)
	colourField("danger_colour", r.DangerColour, &s.DangerColour)
	intField("default_time", r.DefaultTime, &s.DefaultTime, 0, -1)
	intField("max_time", r.MaxTime, &s.MaxTime, 0, -1)
	intField("min_time", r.MinTime, &s.MinTime, 0, -1)
	boolField(r.CustomTime, &s.CustomTime)
	boolField(r.UseChat, &s.UseChat)
	boolField(r.ShowPanel, &s.ShowPanel)
	intField("emergency_time", r.EmergencyTime, &s.EmergencyTime, 0, -1)
	intField("emergency_min", r.EmergencyMin, &s.EmergencyMin, 0, -1)

	if r.AuthorMult != nil {
		if *r.AuthorMult < 0 {
			warnings = append(warnings, fmt.Sprintf("author_mult=%g is negative, using default %g", *r.AuthorMult, s.AuthorMult))
		} else {
			s.AuthorMult = *r.AuthorMult
		}
	}

	s.Whitelist = normalizeIDs(r.Whitelist)
	return s, warnings
}
