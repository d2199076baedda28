// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"assessment-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func newRootCmd() *cobra.Command {
	var path string

	root := &cobra.Command{
		Use:   "registry-updater",
		Short: "Maintain the activity registry file read by the worker manager",
		Long: `Maintains the activity registry JSON file. The worker manager reads it when
registry.path is set and falls back to the built-in registry otherwise.

Examples:
  registry-updater export --path configs/activity-registry.json
  registry-updater update --id lookup-region --field timeout --value 3s
  registry-updater validate --path configs/activity-registry.json`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&path, "path", defaultRegistryPath, "path to registry file")

	root.AddCommand(
		&cobra.Command{
			Use:   "export",
			Short: "Write the built-in registry to --path",
			RunE: func(cmd *cobra.Command, _ []string) error {
				reg := registry.Default()
				reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
				if err := saveRegistry(reg, path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d activities to %s\n", len(reg.Activities), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the registry file",
			RunE: func(cmd *cobra.Command, _ []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return err
				}
				for _, unknown := range unknownTaskTypes(reg) {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: no worker implements %s\n", unknown)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the activities in the registry file",
			RunE: func(cmd *cobra.Command, _ []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT\tRETRIES")
				for _, a := range reg.Activities {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", a.TaskType, a.Category, a.ImplementationStatus, a.Timeout, a.Retries)
				}
				return tw.Flush()
			},
		},
		newUpdateCmd(&path),
	)
	return root
}

func newUpdateCmd(path *string) *cobra.Command {
	var id, field, value string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one field of an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return err
			}
			if err := updateActivity(reg, id, field, value); err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
			if err := saveRegistry(reg, *path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&id, "id", "", "activity ID to update")
	f.StringVar(&field, "field", "", "field to update (status, version, displayName, description, category, timeout, retries)")
	f.StringVar(&value, "value", "", "new value for the field")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func updateActivity(reg *registry.ActivityRegistry, id, field, value string) error {
	for i := range reg.Activities {
		a := &reg.Activities[i]
		if a.ID != id {
			continue
		}
		switch field {
		case "status":
			a.ImplementationStatus = value
		case "version":
			a.Version = value
		case "displayName":
			a.DisplayName = value
		case "description":
			a.Description = value
		case "category":
			a.Category = value
		case "timeout":
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("invalid timeout value: %w", err)
			}
			a.Timeout = value
		case "retries":
			retries, err := strconv.Atoi(value)
			if err != nil || retries < 0 {
				return fmt.Errorf("invalid retries value %q", value)
			}
			a.Retries = retries
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		return nil
	}
	return fmt.Errorf("activity with ID %s not found", id)
}

// unknownTaskTypes lists task types in reg that the built-in registry does
// not know, i.e. that no worker in this module serves.
func unknownTaskTypes(reg *registry.ActivityRegistry) []string {
	known := map[string]bool{}
	for _, t := range registry.Default().TaskTypes() {
		known[t] = true
	}
	var out []string
	for _, t := range reg.TaskTypes() {
		if !known[t] {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func saveRegistry(reg *registry.ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
