package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nogginhq/noggin/cmd/noggin/internal/config"
	"github.com/nogginhq/noggin/cmd/noggin/internal/ui"
)

func newInitCommand() *cobra.Command {
	var backendURL string
	var host string
	var port int
	var force bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a noggin.yaml in the current directory",
		Long: `Creates the project configuration file. By default an interactive
wizard collects the backend URL and dev server settings; pass --yes to
write the file non-interactively from flags and defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := filepath.Join(".", config.FileName)
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
			}

			cfg := config.Default()
			if backendURL != "" {
				cfg.Backend.URL = backendURL
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			if !yes {
				model := ui.NewModel(cfg)
				program := tea.NewProgram(model)
				final, err := program.Run()
				if err != nil {
					return fmt.Errorf("run setup wizard: %w", err)
				}
				result, ok := final.(ui.Model)
				if !ok || !result.Accepted() {
					fmt.Println("Aborted, nothing written.")
					return nil
				}
				cfg = result.Config()
			}

			if err := config.Save(cfg, "."); err != nil {
				return fmt.Errorf("write %s: %w", config.FileName, err)
			}

			fmt.Printf("Wrote %s\n", config.FileName)
			fmt.Println("Next steps:")
			fmt.Println("  noggin serve --watch")
			return nil
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend", "", "Backend base URL")
	cmd.Flags().StringVar(&host, "host", "", "Dev server host")
	cmd.Flags().IntVar(&port, "port", 0, "Dev server port")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing noggin.yaml")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the wizard and write defaults plus flags")

	return cmd
}
