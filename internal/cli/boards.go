package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ringforge/ringforge/pkg/errors"
	fileio "github.com/ringforge/ringforge/pkg/io"
	"github.com/ringforge/ringforge/pkg/plan"
	"github.com/ringforge/ringforge/pkg/store"
)

// boardsCommand creates the boards command group for stored plans.
func (c *CLI) boardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage stored board plans",
		Long: `Manage stored board plans.

Plans computed with 'render --save' are kept in a local store (or MongoDB
when configured). Run without a subcommand for an interactive picker.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardsPicker(cmd)
		},
	}

	cmd.AddCommand(c.boardsListCommand())
	cmd.AddCommand(c.boardsShowCommand())
	cmd.AddCommand(c.boardsDeleteCommand())
	cmd.AddCommand(c.boardsExportCommand())
	cmd.AddCommand(c.boardsImportCommand())

	return cmd
}

func (c *CLI) boardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			docs, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No stored plans")
				printNextStep("Create one", "ringforge render 3 2 1 --save my-board")
				return nil
			}
			for _, doc := range docs {
				printKeyValue(doc.Name, describePlan(doc))
			}
			return nil
		},
	}
}

func (c *CLI) boardsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			doc, err := c.lookupPlan(cmd, s, args[0])
			if err != nil {
				return err
			}
			printPlan(doc)
			return nil
		},
	}
}

func (c *CLI) boardsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			doc, err := c.lookupPlan(cmd, s, args[0])
			if err != nil {
				return err
			}
			if err := s.Delete(cmd.Context(), doc.ID); err != nil {
				return err
			}
			printSuccess("Deleted plan %q", doc.Name)
			return nil
		},
	}
}

func (c *CLI) boardsExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a stored plan to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			doc, err := c.lookupPlan(cmd, s, args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = doc.Name + ".json"
			}
			if err := fileio.ExportDocument(doc, output); err != nil {
				return err
			}
			printSuccess("Exported plan %q", doc.Name)
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	return cmd
}

func (c *CLI) boardsImportCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a plan from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fileio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				doc.Name = name
			}
			if doc.Name == "" {
				return fmt.Errorf("plan has no name; pass --name")
			}
			if err := errors.ValidatePlanName(doc.Name); err != nil {
				return err
			}

			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			doc.ID = "" // imported plans always get a fresh ID
			saved, err := s.Save(cmd.Context(), doc)
			if err != nil {
				return err
			}
			printSuccess("Imported plan %q (%s)", saved.Name, saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "store the plan under this name")
	return cmd
}

// lookupPlan resolves a name-or-ID argument against the store.
func (c *CLI) lookupPlan(cmd *cobra.Command, s store.Store, key string) (plan.Document, error) {
	doc, err := s.GetByName(cmd.Context(), key)
	if errors.GetCode(err) == errors.ErrCodePlanNotFound {
		return s.Get(cmd.Context(), key)
	}
	return doc, err
}

// runBoardsPicker shows the interactive plan picker.
func (c *CLI) runBoardsPicker(cmd *cobra.Command) error {
	s, err := c.newStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close(cmd.Context())

	docs, err := s.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		printInfo("No stored plans")
		printNextStep("Create one", "ringforge render 3 2 1 --save my-board")
		return nil
	}

	model := NewBoardListModel(docs)
	final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(BoardListModel); ok && m.Selected != nil {
		printNewline()
		printPlan(*m.Selected)
	}
	return nil
}

// describePlan summarizes a plan on one line.
func describePlan(doc plan.Document) string {
	return fmt.Sprintf("%d-%d-%d · ⌀%.0fmm · %d rings",
		doc.Topology.NInput, doc.Topology.NHidden, doc.Topology.NOutput,
		doc.Board.DiameterMM, len(doc.Rings))
}

// printPlan prints the full detail view of a plan document.
func printPlan(doc plan.Document) {
	fmt.Println(StyleTitle.Render(doc.Name))
	printKeyValue("id", doc.ID)
	printKeyValue("topology", fmt.Sprintf("%d-%d-%d", doc.Topology.NInput, doc.Topology.NHidden, doc.Topology.NOutput))
	printKeyValue("diameter", fmt.Sprintf("%.0fmm", doc.Board.DiameterMM))
	if !doc.CreatedAt.IsZero() {
		printKeyValue("created", doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	printNewline()
	for _, ring := range doc.Rings {
		detail := fmt.Sprintf("%-10s outer %.1fmm width %.1fmm layer %d", ring.Kind, ring.OuterRadiusMM, ring.WidthMM, ring.Layer)
		if ring.Sliders > 0 {
			detail += fmt.Sprintf(" · %d sliders", ring.Sliders)
		}
		if ring.Groups > 0 {
			detail += fmt.Sprintf(" · %d×%d sliders", ring.Groups, ring.SlidersPerGroup)
		}
		printDetail("%s", detail)
	}
	printNewline()
	printNextStep("Re-render", fmt.Sprintf("ringforge render %d %d %d -d %.0f",
		doc.Topology.NInput, doc.Topology.NHidden, doc.Topology.NOutput, doc.Board.DiameterMM))
}
