package rules

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// tolerance for baseline sums, which are averages of printed cards
const baselineTolerance = 0.05

var outCategories = map[string]bool{"PU": true, "SO": true, "GB": true, "FB": true}

// ValidateRaw checks structural and semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config validation failed: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Sprintf("%s failed %s", fe.Namespace(), describeTag(fe)))
		}
	}

	errs = append(errs, validatePlayer("hitter", cfg.Hitter, false)...)
	errs = append(errs, validatePlayer("pitcher", cfg.Pitcher, true)...)

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func validatePlayer(kind string, p PlayerRules, isPitcher bool) []string {
	var errs []string

	seen := map[string]bool{}
	for _, c := range p.Categories {
		if seen[c] {
			errs = append(errs, fmt.Sprintf("%s.chart_categories has duplicate %s", kind, c))
		}
		seen[c] = true
		if isPitcher && (c == "1B+" || c == "3B") {
			errs = append(errs, fmt.Sprintf("%s.chart_categories cannot contain %s", kind, c))
		}
	}
	for _, required := range []string{"SO", "BB", "1B", "HR"} {
		if !seen[required] {
			errs = append(errs, fmt.Sprintf("%s.chart_categories must contain %s", kind, required))
		}
	}

	// baseline: every value a known category, totals add up
	var total, outs float64
	keys := make([]string, 0, len(p.Baseline.Values))
	for k := range p.Baseline.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := p.Baseline.Values[k]
		if !seen[k] {
			errs = append(errs, fmt.Sprintf("%s.baseline.values.%s is not a chart category", kind, k))
		}
		total += v
		if outCategories[k] {
			outs += v
		}
	}
	if len(p.Baseline.Values) > 0 {
		if math.Abs(total-20) > baselineTolerance {
			errs = append(errs, fmt.Sprintf("%s.baseline.values must sum to 20, got %.2f", kind, total))
		}
		if math.Abs(outs-p.Baseline.Outs) > baselineTolerance {
			errs = append(errs, fmt.Sprintf("%s.baseline.outs=%.2f does not match out values %.2f", kind, p.Baseline.Outs, outs))
		}
	}

	for _, c := range p.Combos {
		if c.Outs < p.Outs.Min || c.Outs > p.Outs.Max {
			errs = append(errs, fmt.Sprintf("%s.command_outs_combos %g-%d outside outs bounds", kind, c.Command, c.Outs))
		}
	}

	if !isPitcher {
		if p.SOCaps == nil {
			errs = append(errs, fmt.Sprintf("%s.so_caps is required", kind))
		}
		if p.SinglePlusDenominator == nil {
			errs = append(errs, fmt.Sprintf("%s.single_plus_denominator is required", kind))
		} else if err := p.SinglePlusDenominator.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("%s.single_plus_denominator: %v", kind, err))
		} else if p.SinglePlusDenominator.Min <= 0 {
			errs = append(errs, fmt.Sprintf("%s.single_plus_denominator.min must be > 0", kind))
		}
	}

	for name, r := range p.Points.Ranges {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("%s.points.ranges.%s: %v", kind, name, err))
		}
	}
	for name := range p.Points.Weights {
		if _, ok := p.Points.Ranges[name]; !ok {
			errs = append(errs, fmt.Sprintf("%s.points.weights.%s has no range", kind, name))
		}
	}
	for pos, d := range p.Points.Defense {
		if err := d.Range.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("%s.points.defense.%s: %v", kind, pos, err))
		}
	}
	sort.Strings(errs)
	return errs
}
