package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"tailorpro/model"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a username and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("TAILOR_PASSWORD")
			}
			user, err := c.client.Auth.Login(cmd.Context(), model.LoginRequest{Username: username, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "User name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (defaults to $TAILOR_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.client.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) registerCmd() *cobra.Command {
	var req model.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ConfirmPassword = req.Password
			user, err := c.client.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s, you can now log in\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "User name")
	cmd.Flags().StringVar(&req.Email, "email", "", "E-mail address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")
	return cmd
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.client.Auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Name:\t%s\n", user.Name)
			fmt.Fprintf(w, "E-mail:\t%s\n", user.Email)
			fmt.Fprintf(w, "Roles:\t%s\n", strings.Join(user.Roles, ", "))
			fmt.Fprintf(w, "Administrator:\t%t\n", user.HasRole(model.RoleAdministrator))
			return w.Flush()
		},
	}
}

func (c *cli) typesCmd() *cobra.Command {
	var showFields bool
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List garment measurement types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := c.client.Measurements.ListMeasurementTypes(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, mt := range types {
				fmt.Fprintf(w, "%s\t%s\t%s\n", mt.ID, mt.Name, mt.Description)
				if !showFields {
					continue
				}
				for _, group := range model.GarmentFields[mt.Name] {
					for _, f := range group.Fields {
						fmt.Fprintf(w, "\t  %s\t%s\n", f.Key, f.Label)
					}
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&showFields, "fields", false, "Also list the measurement fields of each type")
	return cmd
}

func (c *cli) measurementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "measurements",
		Aliases: []string{"m"},
		Short:   "Manage customer measurements",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List measurements",
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := c.client.Measurements.ListMeasurements(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tTYPE\tCHANGED")
				for _, m := range list {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Title, m.MeasurementType.Name, m.Changed)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one measurement as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := c.client.Measurements.GetMeasurement(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), m)
			},
		},
		c.measurementCreateCmd(),
		c.measurementUpdateCmd(),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a measurement",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.client.Measurements.DeleteMeasurement(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) measurementCreateCmd() *cobra.Command {
	var title, garment string
	var values map[string]string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a measurement",
		Example: `  tailorctl measurements create --title "Eid qameez" --type "Shalwar Qameez" \
    --set qameez_length=40 --set qameez_chest=38`,
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, err := c.resolveType(cmd.Context(), garment)
			if err != nil {
				return err
			}
			measurements, err := parseValues(values)
			if err != nil {
				return err
			}
			m, err := c.client.Measurements.CreateMeasurement(cmd.Context(), model.MeasurementFormData{
				Title:             title,
				MeasurementTypeID: typeID,
				Measurements:      measurements,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Title of the measurement")
	cmd.Flags().StringVar(&garment, "type", "", "Measurement type name or id")
	cmd.Flags().StringToStringVar(&values, "set", nil, "Measurement value as field=value, repeatable")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (c *cli) measurementUpdateCmd() *cobra.Command {
	var title, garment string
	var values map[string]string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the title, type or values of a measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := model.MeasurementPatch{Title: title}
			if garment != "" {
				typeID, err := c.resolveType(cmd.Context(), garment)
				if err != nil {
					return err
				}
				patch.MeasurementTypeID = typeID
			}
			measurements, err := parseValues(values)
			if err != nil {
				return err
			}
			patch.Measurements = measurements

			m, err := c.client.Measurements.UpdateMeasurement(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&garment, "type", "", "New measurement type name or id")
	cmd.Flags().StringToStringVar(&values, "set", nil, "Measurement value as field=value, repeatable")
	return cmd
}

// resolveType accepts a term id or a case-insensitive term name.
func (c *cli) resolveType(ctx context.Context, nameOrID string) (string, error) {
	types, err := c.client.Measurements.ListMeasurementTypes(ctx)
	if err != nil {
		return "", err
	}
	for _, mt := range types {
		if mt.ID == nameOrID || strings.EqualFold(mt.Name, nameOrID) {
			return mt.ID, nil
		}
	}
	names := make([]string, 0, len(types))
	for _, mt := range types {
		names = append(names, mt.Name)
	}
	return "", fmt.Errorf("unknown measurement type %q (available: %s)", nameOrID, strings.Join(names, ", "))
}

func parseValues(values map[string]string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(values))
	for _, k := range keys {
		f, err := strconv.ParseFloat(values[k], 64)
		if err != nil {
			return nil, fmt.Errorf("value of %s must be a number: %w", k, err)
		}
		out[k] = f
	}
	return out, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
