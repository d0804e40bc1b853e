package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spetersoncode/genstudio/models"
	"github.com/spf13/cobra"
)

func modelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Show and choose the model for each capability",
	}
	cmd.AddCommand(modelsShowCmd(a))
	cmd.AddCommand(modelsSetCmd(a))
	cmd.AddCommand(modelsListCmd())
	return cmd
}

func modelsShowCmd(a *app) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selected models",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			prefs, err := c.Models.Load(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), prefs)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CAPABILITY\tMODEL")
			for _, capability := range models.Capabilities {
				fmt.Fprintf(tw, "%s\t%s\n", capability, prefs.For(capability))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func modelsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set [capability] [model]",
		Short: "Select the model for a capability (text, image-gen, image-edit)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			capability, err := models.ParseCapability(args[0])
			if err != nil {
				return err
			}

			if _, ok := models.Lookup(args[1]); !ok {
				a.logger.Warn("model is not in the catalog, using it anyway", "model", args[1])
			}

			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := c.Models.Set(cmd.Context(), capability, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s model set to %s.\n", capability, args[1])
			return nil
		},
	}
}

func modelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the selectable models",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CAPABILITY\tMODEL\tNAME")
			for _, capability := range models.Capabilities {
				for _, m := range models.Catalog(capability) {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", capability, m, m.Name())
				}
			}
			return tw.Flush()
		},
	}
}
