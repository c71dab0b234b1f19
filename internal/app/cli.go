package app

import (
	"github.com/spf13/cobra"
)

// NewRootCommand: без подкоманды запускается сервер
func NewRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "hiremind",
		Short:         "HireMind AI recruitment backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: $CONFIG_PATH or config/config.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(configPath)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Migrate(configPath)
		},
	})

	return root
}
