package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/showdownbot/chart-engine/internal/card"
	"github.com/showdownbot/chart-engine/internal/logger"
	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/sim"
)

func newCardCmd() *cobra.Command {
	var (
		set, era string
		workers  int
		pretty   bool
	)
	cmd := &cobra.Command{
		Use:   "card <input.yaml|input.json|->...",
		Short: "Build cards from one or more season files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			applyDefaults(inputs, set, era)
			if workers <= 0 {
				workers = cfg.BatchWorkers
			}

			b := card.NewBuilder(rules.Open(cfg.RulesDir), logger.WithComponent("card"))
			cards, err := b.BuildAll(cmd.Context(), inputs, workers)
			if err != nil {
				return err
			}
			if len(cards) == 1 {
				return writeJSON(cmd.OutOrStdout(), cards[0], pretty)
			}
			return writeJSON(cmd.OutOrStdout(), cards, pretty)
		},
	}
	cmd.Flags().StringVarP(&set, "set", "s", "", "Set for inputs that name none (default from config)")
	cmd.Flags().StringVarP(&era, "era", "e", "", "Era for inputs that name none")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel builds (default from config)")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Pretty-print JSON output")
	return cmd
}

type setSummary struct {
	ID       string   `json:"id"`
	Expanded bool     `json:"expanded"`
	Era      string   `json:"era,omitempty"`
	Eras     []string `json:"eras,omitempty"`
	Version  string   `json:"version,omitempty"`
}

func newSetsCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List the available rule sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := rules.Open(cfg.RulesDir)
			ids, err := loader.Sets()
			if err != nil {
				return err
			}
			out := make([]setSummary, 0, len(ids))
			for _, id := range ids {
				rs, err := loader.Resolve(id, "")
				if err != nil {
					return err
				}
				out = append(out, setSummary{
					ID:       rs.ID,
					Expanded: rs.Expanded,
					Era:      rs.Era,
					Eras:     rs.Eras,
					Version:  rs.Version,
				})
			}
			return writeJSON(cmd.OutOrStdout(), out, pretty)
		},
	}
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Pretty-print JSON output")
	return cmd
}

type simulation struct {
	Name      string             `json:"name"`
	Projected map[string]float64 `json:"projected"`
	Simulated map[string]float64 `json:"simulated"`
	Report    sim.Report         `json:"report"`
}

func newSimulateCmd() *cobra.Command {
	var (
		set, era string
		trials   int
		pa       int
		seed     uint64
		pretty   bool
	)
	cmd := &cobra.Command{
		Use:   "simulate <input.yaml|input.json|->",
		Short: "Build a card and replay its chart against the opponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if len(inputs) != 1 {
				return fmt.Errorf("simulate takes one player, got %d", len(inputs))
			}
			applyDefaults(inputs, set, era)

			b := card.NewBuilder(rules.Open(cfg.RulesDir), logger.WithComponent("card"))
			c, err := b.Build(cmd.Context(), inputs[0])
			if err != nil {
				return err
			}

			if trials <= 0 {
				trials = cfg.SimTrials
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.SimSeed
			}
			rng := sim.DefaultRNG()
			if seed != 0 {
				rng = sim.NewSeededRNG(seed)
			}
			report, err := sim.Run(sim.Params{
				Chart:            c.Chart,
				Trials:           trials,
				PlateAppearances: pa,
				RNG:              rng,
			})
			if err != nil {
				return err
			}
			logger.WithComponent("sim").WithFields(logrus.Fields{
				"name":   c.Name,
				"trials": report.Trials,
				"seed":   seed,
			}).Debug("simulation finished")

			return writeJSON(cmd.OutOrStdout(), simulation{
				Name:      c.Name,
				Projected: c.Projected,
				Simulated: report.Means(),
				Report:    report,
			}, pretty)
		},
	}
	cmd.Flags().StringVarP(&set, "set", "s", "", "Set when the input names none (default from config)")
	cmd.Flags().StringVarP(&era, "era", "e", "", "Era when the input names none")
	cmd.Flags().IntVarP(&trials, "trials", "n", 0, "Number of trials (default from config)")
	cmd.Flags().IntVar(&pa, "pa", 0, "Plate appearances per trial (default 400)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible runs; 0 uses crypto random")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Pretty-print JSON output")
	return cmd
}

// readInputs decodes each file as a single player or a list of players.
// YAML is a superset of JSON, so both formats go through the same decoder.
func readInputs(stdin io.Reader, paths []string) ([]card.Input, error) {
	var out []card.Input
	for _, p := range paths {
		var (
			b   []byte
			err error
		)
		if p == "-" {
			b, err = io.ReadAll(stdin)
		} else {
			b, err = os.ReadFile(p)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		inputs, err := decodeInputs(b)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		out = append(out, inputs...)
	}
	return out, nil
}

func decodeInputs(b []byte) ([]card.Input, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var list []card.Input
		if err := node.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var one card.Input
	if err := node.Decode(&one); err != nil {
		return nil, err
	}
	return []card.Input{one}, nil
}

func applyDefaults(inputs []card.Input, set, era string) {
	if set == "" {
		set = cfg.DefaultSet
	}
	for i := range inputs {
		if inputs[i].Set == "" {
			inputs[i].Set = set
		}
		if inputs[i].Era == "" {
			inputs[i].Era = era
		}
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
