// Package card assembles a full card for one player: rule set lookup,
// opponent baseline, command/outs search and points.
package card

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/showdownbot/chart-engine/internal/chart"
	"github.com/showdownbot/chart-engine/internal/points"
	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/stats"
)

var ErrInvalidInput = errors.New("invalid card input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Input describes one player season.
type Input struct {
	Name      string       `json:"name" yaml:"name" validate:"required"`
	Set       string       `json:"set" yaml:"set" validate:"required"`
	Era       string       `json:"era,omitempty" yaml:"era,omitempty"`
	IsPitcher bool         `json:"is_pitcher" yaml:"is_pitcher"`
	Season    stats.Season `json:"season" yaml:"season"`

	Speed     float64            `json:"speed,omitempty" yaml:"speed,omitempty" validate:"gte=0"`
	IP        float64            `json:"ip,omitempty" yaml:"ip,omitempty" validate:"gte=0"`
	Positions map[string]float64 `json:"positions,omitempty" yaml:"positions,omitempty"`
	Icons     []string           `json:"icons,omitempty" yaml:"icons,omitempty"`

	// Override pins the command and outs instead of searching.
	Override *rules.CommandOuts `json:"override,omitempty" yaml:"override,omitempty"`
}

// Card is the assembled result.
type Card struct {
	Name       string            `json:"name"`
	Set        string            `json:"set"`
	Era        string            `json:"era,omitempty"`
	IsPitcher  bool              `json:"is_pitcher"`
	Chart      *chart.Chart      `json:"chart"`
	Ranges     []string          `json:"ranges"`
	Projected  stats.Line        `json:"projected"`
	Accuracies chart.AccuracyMap `json:"accuracies"`
	Points     points.Result     `json:"points"`
}

type baselineKey struct {
	rs        *rules.RuleSet
	isPitcher bool
}

// Builder builds cards against a rule set resolver. Safe for concurrent use.
type Builder struct {
	rules rules.Resolver
	log   *logrus.Entry

	mu        sync.Mutex
	baselines map[baselineKey]*chart.Chart
}

func NewBuilder(r rules.Resolver, log *logrus.Entry) *Builder {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Builder{
		rules:     r,
		log:       log,
		baselines: make(map[baselineKey]*chart.Chart),
	}
}

// Reset drops cached baselines; call after the rule tables reload.
func (b *Builder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.baselines = make(map[baselineKey]*chart.Chart)
}

// Opponent returns the baseline chart that charts of the given player type
// play against. Built once per rule set, then shared read-only.
func (b *Builder) Opponent(rs *rules.RuleSet, isPitcher bool) (*chart.Chart, error) {
	key := baselineKey{rs: rs, isPitcher: isPitcher}
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.baselines[key]; ok {
		return c, nil
	}
	c, err := chart.Baseline(rs, !isPitcher)
	if err != nil {
		return nil, err
	}
	b.baselines[key] = c
	return c, nil
}

// Build assembles one card.
func (b *Builder) Build(ctx context.Context, in Input) (*Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	line, err := in.Season.Per400PA()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, in.Name, err)
	}

	rs, err := b.rules.Resolve(in.Set, in.Era)
	if err != nil {
		return nil, err
	}
	opp, err := b.Opponent(rs, in.IsPitcher)
	if err != nil {
		return nil, err
	}

	c, accs, err := chart.Search(chart.SearchParams{
		Stats:     line,
		Opponent:  opp,
		RuleSet:   rs,
		IsPitcher: in.IsPitcher,
		Override:  in.Override,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Name, err)
	}

	projected := c.ProjectedStatsPer400PA()
	pts, err := points.Calculate(rs, points.Input{
		IsPitcher: in.IsPitcher,
		Command:   c.Command,
		Projected: projected,
		Speed:     in.Speed,
		IP:        in.IP,
		Positions: in.Positions,
		Icons:     in.Icons,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, in.Name, err)
	}

	b.log.WithFields(logrus.Fields{
		"player":     in.Name,
		"set":        rs.Key(),
		"command":    c.Command,
		"outs":       c.OutSlots,
		"accuracy":   c.Accuracy,
		"points":     pts.Total,
		"candidates": len(accs),
	}).Debug("card built")

	return &Card{
		Name:       in.Name,
		Set:        rs.ID,
		Era:        rs.Era,
		IsPitcher:  in.IsPitcher,
		Chart:      c,
		Ranges:     c.RangesList(),
		Projected:  projected,
		Accuracies: accs,
		Points:     pts,
	}, nil
}

// BuildAll builds cards concurrently with at most workers in flight and
// stops at the first error. Results keep the input order.
func (b *Builder) BuildAll(ctx context.Context, inputs []Input, workers int) ([]*Card, error) {
	if workers < 1 {
		workers = 1
	}
	cards := make([]*Card, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range inputs {
		g.Go(func() error {
			c, err := b.Build(gctx, inputs[i])
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			cards[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	b.log.WithField("cards", len(cards)).Info("batch built")
	return cards, nil
}
