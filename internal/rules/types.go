// types.go
package rules

import "github.com/showdownbot/chart-engine/internal/valuerange"

// RawConfig is one YAML layer (default, set or era) after merging; mirrors the schema.
type RawConfig struct {
	Version    string      `yaml:"version"`
	Set        string      `yaml:"set" validate:"required"`
	Era        string      `yaml:"era,omitempty"`
	DefaultEra string      `yaml:"default_era,omitempty"`
	Eras       []string    `yaml:"eras,omitempty"`
	Expanded   bool        `yaml:"expanded"`
	Hitter     PlayerRules `yaml:"hitter"`
	Pitcher    PlayerRules `yaml:"pitcher"`
	Notes      string      `yaml:"notes,omitempty"`
}

// PlayerRules are the tables for one player type within a set.
type PlayerRules struct {
	// physical order of categories on the printed chart
	Categories []string      `yaml:"chart_categories" validate:"required,min=5,dive,oneof=PU SO GB FB BB 1B 1B+ 2B 3B HR"`
	Commands   []float64     `yaml:"commands" validate:"required,min=1,dive,gte=0,lte=20"`
	Outs       OutsBounds    `yaml:"outs"`
	Combos     []CommandOuts `yaml:"command_outs_combos,omitempty" validate:"omitempty,dive"`
	OutNorms   OutNorms      `yaml:"out_norms"`

	CommandWeights  []CommandWeight    `yaml:"command_accuracy_weights,omitempty" validate:"omitempty,dive"`
	AccuracyWeights map[string]float64 `yaml:"accuracy_weights" validate:"required,dive,gt=0"`
	SlotLimits      map[string]float64 `yaml:"slot_limits,omitempty" validate:"omitempty,dive,gte=0,lte=20"`

	Baseline Baseline `yaml:"baseline"`

	// hitters only
	SOCaps                *SOCaps           `yaml:"so_caps,omitempty"`
	SinglePlusDenominator *valuerange.Range `yaml:"single_plus_denominator,omitempty"`

	Ratios Ratios      `yaml:"ratios"`
	Points PointsRules `yaml:"points"`
}

type OutsBounds struct {
	Min int `yaml:"min" validate:"gte=0,lte=20"`
	Max int `yaml:"max" validate:"gtefield=Min,lte=20"`
}

// CommandOuts is an explicit candidate the search always evaluates.
type CommandOuts struct {
	Command float64 `yaml:"command" json:"command" validate:"gte=0,lte=20"`
	Outs    int     `yaml:"outs" json:"outs" validate:"gte=0,lte=20"`
}

// OutNorms is the band of out counts considered normal for the player type.
// Charts outside it lose half their accuracy unless an outlier matches.
type OutNorms struct {
	Min      int       `yaml:"min" validate:"gte=0,lte=20"`
	Max      int       `yaml:"max" validate:"gtefield=Min,lte=20"`
	Outliers []Outlier `yaml:"outliers,omitempty" validate:"omitempty,dive"`
}

// Outlier excuses extreme commands paired with extreme out counts.
type Outlier struct {
	CommandMin float64 `yaml:"command_min"`
	CommandMax float64 `yaml:"command_max" validate:"gtefield=CommandMin"`
	OutsMin    int     `yaml:"outs_min"`
	OutsMax    int     `yaml:"outs_max" validate:"gtefield=OutsMin"`
}

type CommandWeight struct {
	Command float64 `yaml:"command"`
	Weight  float64 `yaml:"weight" validate:"gt=0,lte=1"`
}

// Baseline is the average chart of this player type. It is the opponent
// for every chart of the other player type.
type Baseline struct {
	Command float64            `yaml:"command" validate:"gte=0,lte=20"`
	Outs    float64            `yaml:"outs" validate:"gte=0,lte=20"`
	Values  map[string]float64 `yaml:"values" validate:"required,dive,gte=0,lte=20"`
}

type SOCaps struct {
	Soft float64 `yaml:"soft" validate:"gt=0"`
	Hard float64 `yaml:"hard" validate:"gtefield=Soft"`
}

// Ratios drive the split of non-strikeout outs into PU/GB/FB when the
// stat line has no batted ball data.
type Ratios struct {
	DefaultGOAO float64 `yaml:"default_go_ao" validate:"gt=0"`
	DefaultIFFB float64 `yaml:"default_if_fb" validate:"gte=0,lt=1"`
	LeagueSLG   float64 `yaml:"league_slg" validate:"gt=0"`
}

type PointsRules struct {
	Weights                 map[string]float64          `yaml:"weights" validate:"required,dive,gte=0"`
	Ranges                  map[string]valuerange.Range `yaml:"ranges" validate:"required"`
	Defense                 map[string]DefenseRule      `yaml:"defense,omitempty" validate:"omitempty,dive"`
	SecondaryPositionFactor float64                     `yaml:"secondary_position_factor,omitempty" validate:"gte=0,lte=1"`
	Icons                   map[string]float64          `yaml:"icons,omitempty"`
	Decay                   *Decay                      `yaml:"decay,omitempty"`
}

type DefenseRule struct {
	Weight float64          `yaml:"weight" validate:"gte=0"`
	Range  valuerange.Range `yaml:"range"`
}

// Decay compresses totals above Start by Rate.
type Decay struct {
	Rate  float64 `yaml:"rate" validate:"gt=0,lte=1"`
	Start float64 `yaml:"start" validate:"gt=0"`
}
