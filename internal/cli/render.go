package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ringforge/ringforge/pkg/errors"
	fileio "github.com/ringforge/ringforge/pkg/io"
	"github.com/ringforge/ringforge/pkg/pipeline"
	"github.com/ringforge/ringforge/pkg/plan"
	"github.com/ringforge/ringforge/pkg/render"
)

// renderCommand creates the render command for generating board drawings.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output      string
		formatsStr  string
		layersStr   string
		split       bool
		weightsFile string
		noCache     bool
		saveName    string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [nInput nHidden nOutput]",
		Short: "Render a network topology as a machinable board drawing",
		Long: `Render a network topology as a machinable board drawing.

The topology is given either as three positional unit counts or recovered
from a trained-network weight export with --weights. Output formats and
per-pass cut layers can be combined freely; every drawing variant is
produced from one shared geometry tree so the passes stay consistent.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := topologyFromArgs(&opts, args, weightsFile); err != nil {
				return err
			}
			if output != "" {
				if err := errors.ValidateOutputPath(output); err != nil {
					return err
				}
			}
			if saveName != "" {
				if err := errors.ValidatePlanName(saveName); err != nil {
					return err
				}
			}
			opts.Formats = parseFormats(formatsStr)
			opts.Layers = parseLayers(layersStr)
			if split {
				opts.Layers = allLayerNames()
			}
			opts.Name = saveName
			c.applyBoardDefaults(&opts)
			return c.runRender(cmd, opts, output, noCache, saveName)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&layersStr, "layers", "l", "", "per-pass cut layers, e.g. 'top-etch,bottom-full' (comma-separated)")
	cmd.Flags().BoolVar(&split, "split", false, "emit one SVG per fabrication pass")
	cmd.Flags().StringVarP(&weightsFile, "weights", "w", "", "recover the topology from a weight export JSON file")
	cmd.Flags().Float64VarP(&opts.DiameterMM, "diameter", "d", 0, "apparatus diameter in mm")
	cmd.Flags().Float64Var(&opts.CenterDiameterMM, "center", 0, "reserved center plate diameter in mm")
	cmd.Flags().Float64Var(&opts.PaddingMM, "padding", 0, "gap between adjacent rings in mm")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "width policy for weight rings: equal (default), weighted")
	cmd.Flags().Float64Var(&opts.ClampMax, "clamp-max", 0, "clamp scale maximum value")
	cmd.Flags().Float64Var(&opts.ClampDelta, "clamp-delta", 0, "clamp scale tick step")
	cmd.Flags().BoolVar(&opts.DebugGuides, "debug-guides", false, "show construction guide circles")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "raster scale for png output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache and recompute")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&saveName, "save", "", "store the computed plan under this name")

	return cmd
}

// topologyFromArgs fills the three unit counts from positional args or a
// weights file. Exactly one source must be given.
func topologyFromArgs(opts *pipeline.Options, args []string, weightsFile string) error {
	switch {
	case weightsFile != "" && len(args) > 0:
		return fmt.Errorf("give either three unit counts or --weights, not both")
	case weightsFile != "":
		topo, err := fileio.ImportWeights(weightsFile)
		if err != nil {
			return err
		}
		opts.NInput, opts.NHidden, opts.NOutput = topo.NInput, topo.NHidden, topo.NOutput
		return nil
	case len(args) == 3:
		counts := make([]int, 3)
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("unit count %q is not an integer", a)
			}
			counts[i] = n
		}
		opts.NInput, opts.NHidden, opts.NOutput = counts[0], counts[1], counts[2]
		return nil
	default:
		return fmt.Errorf("expected three unit counts (nInput nHidden nOutput) or --weights")
	}
}

// allLayerNames returns every fabrication pass slug for --split.
func allLayerNames() []string {
	names := make([]string, 0, len(render.CutLayers))
	for _, l := range render.CutLayers {
		if l.Kind == render.ClassDebug {
			continue
		}
		names = append(names, l.Slug())
	}
	return names
}

// runRender executes the pipeline and writes every artifact to disk.
func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool, saveName string) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d-%d-%d board...", opts.NInput, opts.NHidden, opts.NOutput))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	written, err := writeArtifacts(result.Artifacts, output, opts)
	if err != nil {
		return err
	}

	printSuccess("Board complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.RingCount, result.Plan.Config.DiameterMM, result.CacheInfo.RenderHit)

	if saveName != "" {
		if err := c.savePlan(cmd, result, opts, saveName); err != nil {
			return err
		}
	}

	return nil
}

// savePlan persists the computed plan document under the given name.
func (c *CLI) savePlan(cmd *cobra.Command, result *pipeline.Result, opts pipeline.Options, name string) error {
	s, err := c.newStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close(cmd.Context())

	topo := plan.Topology{NInput: opts.NInput, NHidden: opts.NHidden, NOutput: opts.NOutput}
	doc := plan.FromPlan(topo, opts.TopologyOptions(), result.Plan)
	doc.Name = name

	saved, err := s.Save(cmd.Context(), doc)
	if err != nil {
		return err
	}
	printInfo("Saved plan %q (%s)", saved.Name, saved.ID)
	printNextStep("Inspect", "ringforge boards show "+saved.Name)
	return nil
}

// writeArtifacts writes each artifact to its output path and returns the
// paths written, in a stable order.
func writeArtifacts(artifacts map[string][]byte, output string, opts pipeline.Options) ([]string, error) {
	base := outputBase(output, opts)

	// Single artifact straight to the named file (or stdout-compatible path).
	if len(artifacts) == 1 && output != "" && filepath.Ext(output) != "" {
		for _, data := range artifacts {
			if err := os.WriteFile(output, data, 0644); err != nil {
				return nil, err
			}
		}
		return []string{output}, nil
	}

	names := artifactNames(opts)
	var written []string
	for _, name := range names {
		data, ok := artifacts[name]
		if !ok {
			continue
		}
		path := base + artifactSuffix(name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// artifactNames lists artifact keys in output order: formats first, then
// per-layer variants.
func artifactNames(opts pipeline.Options) []string {
	names := append([]string{}, opts.Formats...)
	for _, layer := range opts.Layers {
		names = append(names, pipeline.FormatSVG+":"+layer)
	}
	return names
}

// outputBase derives the base output path from the -o flag or the topology.
func outputBase(output string, opts pipeline.Options) string {
	if output == "" {
		return fmt.Sprintf("board_%d-%d-%d", opts.NInput, opts.NHidden, opts.NOutput)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactSuffix maps an artifact key to its file suffix:
// "svg" → ".svg", "svg:top-etch" → "_top-etch.svg".
func artifactSuffix(name string) string {
	if format, layer, ok := strings.Cut(name, ":"); ok {
		return "_" + strings.ReplaceAll(layer, " ", "-") + "." + format
	}
	return "." + name
}
