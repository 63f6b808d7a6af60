package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/pipeline"
	"github.com/ringforge/ringforge/pkg/plan"
	"github.com/ringforge/ringforge/pkg/render/netlink"
)

// networkCommand creates the network command for node-link topology views.
func (c *CLI) networkCommand() *cobra.Command {
	var (
		output      string
		format      string
		detailed    bool
		weightsFile string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "network [nInput nHidden nOutput]",
		Short: "Render the topology as a node-link diagram",
		Long: `Render the topology as a node-link diagram.

Draws the same units the board lays out in rings as a conventional
left-to-right network graph via Graphviz. Useful for sanity-checking a
topology before committing it to a board.`,
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
			return c.runNetwork(opts, output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: network_<topology>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), pdf, png, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include layer names in unit labels")
	cmd.Flags().StringVarP(&weightsFile, "weights", "w", "", "recover the topology from a weight export JSON file")

	return cmd
}

// runNetwork renders the node-link diagram to the requested format.
func (c *CLI) runNetwork(opts pipeline.Options, output, format string, detailed bool) error {
	topo := plan.Topology{NInput: opts.NInput, NHidden: opts.NHidden, NOutput: opts.NOutput}
	dot := netlink.ToDOT(topo, netlink.Options{Detailed: detailed})

	var (
		data []byte
		err  error
	)
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = netlink.RenderSVG(dot)
	case "pdf":
		data, err = netlink.RenderPDF(dot)
	case "png":
		data, err = netlink.RenderPNG(dot, pipeline.DefaultPNGScale)
	default:
		return fmt.Errorf("unknown format: %s (must be 'svg', 'pdf', 'png', or 'dot')", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		output = fmt.Sprintf("network_%d-%d-%d.%s", opts.NInput, opts.NHidden, opts.NOutput, format)
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	printSuccess("Network diagram complete")
	printFile(output)
	return nil
}
