package cli

import (
	"github.com/spf13/cobra"
)

// NewRoot собирает дерево команд приложения
func NewRoot() *cobra.Command {
	app := &App{}
	var configPath string

	root := &cobra.Command{
		Use:           "shopcli",
		Short:         "Command-line client for the FakeStore storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path to config file")

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newCatalogCmd(app),
		newCartCmd(app),
		newCheckoutCmd(app),
		newOrdersCmd(app),
	)

	return root
}
