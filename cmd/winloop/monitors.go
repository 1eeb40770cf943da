package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/winloop/internal/platform"
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List the monitors of the selected backend",
	Long:  "Open the selected backend, list its monitors (primary first where the platform says so) and exit. Monitors without an absolute position are listed without x and y.",
	Args:  cobra.NoArgs,
	RunE:  runMonitors,
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the backends compiled into this binary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printOutput(cmd, cmd.OutOrStdout(), backendsOutput{
			Default:    platform.DefaultBackend(),
			Registered: platform.Backends(),
		})
	},
}

type backendsOutput struct {
	Default    string   `yaml:"default" json:"default"`
	Registered []string `yaml:"registered" json:"registered"`
}

type monitorsOutput struct {
	Backend  string                 `yaml:"backend" json:"backend"`
	Monitors []platform.MonitorInfo `yaml:"monitors" json:"monitors"`
}

func init() {
	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(backendsCmd)
}

func runMonitors(cmd *cobra.Command, args []string) error {
	res, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(res.Config)
	loop, err := openLoop(res.Config, logger)
	if err != nil {
		return err
	}
	defer loop.Close()

	return printOutput(cmd, cmd.OutOrStdout(), monitorsOutput{
		Backend:  loop.Backend(),
		Monitors: platform.DescribeAll(loop),
	})
}
