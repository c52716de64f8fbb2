// resolve.go
package rules

import "fmt"

// RuleSet is the validated, merged rule table for one set and era.
// It is shared by every chart built for that set and must not be modified.
type RuleSet struct {
	ID       string
	Era      string
	Eras     []string // selectable eras, default first; empty for fixed sets
	Version  string
	Expanded bool
	Hitter   PlayerRules
	Pitcher  PlayerRules
}

// For returns the tables for the given player type.
func (rs *RuleSet) For(isPitcher bool) *PlayerRules {
	if isPitcher {
		return &rs.Pitcher
	}
	return &rs.Hitter
}

// Key identifies the rule set, e.g. "CLASSIC/statcast" or "2001".
func (rs *RuleSet) Key() string {
	return cacheKey(rs.ID, rs.Era)
}

// CommandWeight returns the accuracy multiplier for a command; 1 when unlisted.
func (p *PlayerRules) CommandWeight(command float64) float64 {
	for _, cw := range p.CommandWeights {
		if cw.Command == command {
			return cw.Weight
		}
	}
	return 1
}

// IsNormalOuts reports whether outs fall inside the normal band, or match an
// outlier exception for this command.
func (n OutNorms) IsNormalOuts(command float64, outs int) bool {
	if outs >= n.Min && outs <= n.Max {
		return true
	}
	for _, o := range n.Outliers {
		if command >= o.CommandMin && command <= o.CommandMax && outs >= o.OutsMin && outs <= o.OutsMax {
			return true
		}
	}
	return false
}

// Resolver yields validated rule sets.
type Resolver interface {
	// Resolve merges default → set → era and validates the result.
	// An empty era selects the set's default era.
	Resolve(set, era string) (*RuleSet, error)
	Sets() ([]string, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve implements Resolver with caching.
func (l *Loader) Resolve(set, era string) (*RuleSet, error) {
	key := cacheKey(set, era)
	l.mu.RLock()
	if rs, ok := l.resolved[key]; ok {
		l.mu.RUnlock()
		return rs, nil
	}
	l.mu.RUnlock()

	raw, err := l.LoadMerged(set, era)
	if err != nil {
		return nil, err
	}
	if err := ValidateRaw(raw); err != nil {
		return nil, fmt.Errorf("set %s: %w", key, err)
	}
	rs := &RuleSet{
		ID:       raw.Set,
		Era:      raw.Era,
		Eras:     eraList(raw),
		Version:  raw.Version,
		Expanded: raw.Expanded,
		Hitter:   raw.Hitter,
		Pitcher:  raw.Pitcher,
	}

	l.mu.Lock()
	l.resolved[key] = rs
	l.mu.Unlock()
	return rs, nil
}

func eraList(raw RawConfig) []string {
	if raw.DefaultEra == "" {
		return nil
	}
	out := []string{raw.DefaultEra}
	for _, e := range raw.Eras {
		if e != raw.DefaultEra {
			out = append(out, e)
		}
	}
	return out
}
