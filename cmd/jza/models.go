package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jza/pkg/domain"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage stored models",
	Long:  `List, export, import and remove the models held by the configured store.`,
}

var modelsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		names, err := a.store.List(ctx(cmd))
		if err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No stored models found.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Stored Models:")
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), "- "+n)
		}
		return nil
	},
}

var modelsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the stored model to a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		doc, err := a.store.Load(ctx(cmd), a.cfg.Model)
		if err != nil {
			return fmt.Errorf("failed to load model %q: %w", a.cfg.Model, err)
		}
		data, err := marshalDocument(args[0], doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		a.out.Success(fmt.Sprintf("Exported model %q to %s", a.cfg.Model, args[0]))
		return nil
	},
}

var modelsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a model read from a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		var doc domain.Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
		}
		if err := a.store.Save(ctx(cmd), a.cfg.Model, &doc); err != nil {
			return err
		}
		// Loading checks the document before reporting success.
		if err := a.engine.Load(ctx(cmd)); err != nil {
			return err
		}
		a.out.Success(fmt.Sprintf("Imported %s as model %q", args[0], a.cfg.Model))
		return nil
	},
}

var modelsRmCmd = &cobra.Command{
	Use:   "rm <model>...",
	Short: "Remove one or more models",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		failed := 0
		for _, name := range args {
			if err := a.store.Delete(ctx(cmd), name); err != nil {
				a.out.Failure(fmt.Sprintf("Error removing '%s': %v", name, err))
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed model '%s'\n", name)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d models could not be removed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsLsCmd)
	modelsCmd.AddCommand(modelsExportCmd)
	modelsCmd.AddCommand(modelsImportCmd)
	modelsCmd.AddCommand(modelsRmCmd)
}

func marshalDocument(path string, doc *domain.Document) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}
