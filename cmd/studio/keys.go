package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/credential"
	"github.com/spf13/cobra"
)

func keysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the API key pool",
	}
	cmd.AddCommand(keysListCmd(a))
	cmd.AddCommand(keysAddCmd(a))
	cmd.AddCommand(keysRemoveCmd(a))
	cmd.AddCommand(keysToggleCmd(a))
	cmd.AddCommand(keysResetCmd(a))
	return cmd
}

// keyView is the display form of a credential. The secret is always masked.
type keyView struct {
	Key        string    `json:"key"`
	Valid      bool      `json:"isValid"`
	Active     bool      `json:"isActive"`
	ErrorCount int       `json:"errorCount"`
	LastUsedAt time.Time `json:"lastUsedAt"`
	Rank       int       `json:"rank"`
}

func keysListCmd(a *app) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List keys in the order they will be selected",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ranked, err := c.Selector.Ranked(cmd.Context())
			if err != nil {
				return err
			}
			all, err := c.Keys.List(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]keyView, 0, len(all))
			for i, cred := range ranked {
				views = append(views, newKeyView(cred, i+1))
			}
			for _, cred := range all {
				if !cred.Eligible() {
					views = append(views, newKeyView(cred, 0))
				}
			}
			return printKeys(cmd.OutOrStdout(), views, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

// newKeyView builds a row; rank 0 means the key is never selected.
func newKeyView(cred credential.Credential, rank int) keyView {
	return keyView{
		Key:        cred.Masked(),
		Valid:      cred.Valid,
		Active:     cred.Active,
		ErrorCount: cred.ErrorCount,
		LastUsedAt: cred.LastUsedAt,
		Rank:       rank,
	}
}

func printKeys(w io.Writer, views []keyView, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(w, views)
	}
	if len(views) == 0 {
		fmt.Fprintln(w, "No keys stored.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tKEY\tVALID\tACTIVE\tERRORS\tLAST USED")
	for _, v := range views {
		rank := "-"
		if v.Rank > 0 {
			rank = strconv.Itoa(v.Rank)
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%t\t%d\t%s\n",
			rank, v.Key, v.Valid, v.Active, v.ErrorCount, v.LastUsedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func keysAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add [key]",
		Short: "Validate and add a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			valid, err := c.Keys.Add(cmd.Context(), args[0])
			switch {
			case errors.Is(err, credential.ErrDuplicate):
				return fmt.Errorf("key %s is already stored", credential.Mask(args[0]))
			case errors.Is(err, genstudio.ErrProbeFailed):
				return fmt.Errorf("could not validate key %s, nothing was stored: %w", credential.Mask(args[0]), err)
			case err != nil:
				return err
			}
			if !valid {
				fmt.Fprintf(cmd.OutOrStdout(), "Key %s was rejected by the provider; stored as invalid and inactive.\n", credential.Mask(args[0]))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added key %s.\n", credential.Mask(args[0]))
			return nil
		},
	}
}

func keysRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [key]",
		Short: "Remove a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := c.Keys.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed key %s.\n", credential.Mask(args[0]))
			return nil
		},
	}
}

func keysToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [key]",
		Short: "Enable or disable a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := c.Keys.Toggle(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Toggled key %s.\n", credential.Mask(args[0]))
			return nil
		},
	}
}

func keysResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [key]",
		Short: "Clear the error count of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := c.Keys.ResetErrors(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset errors for key %s.\n", credential.Mask(args[0]))
			return nil
		},
	}
}
