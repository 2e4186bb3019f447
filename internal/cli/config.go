package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/model"
)

func newConfigCmd(stdout io.Writer, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			writeConfig(stdout, opts.configPath, cfg)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the resolved configuration to the config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", opts.configPath)
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := model.SaveConfig(opts.configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Wrote %s\n", opts.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

func writeConfig(w io.Writer, path string, cfg *model.AppConfig) {
	rows := []struct {
		key   string
		value any
	}{
		{"config", path},
		{"db_path", cfg.DBPath},
		{"display.theme", cfg.Display.Theme},
		{"search.mode", cfg.Search.Mode},
		{"log.level", cfg.Log.Level},
		{"log.format", cfg.Log.Format},
		{"log.file", cfg.Log.File},
		{"sync.poll_interval_sec", cfg.Sync.PollIntervalSec},
		{"server.addr", cfg.Server.Addr},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-24s %v\n", r.key+":", r.value)
	}
}
