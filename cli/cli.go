// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sprintertech/sprinter-omnichain/app"
	"github.com/sprintertech/sprinter-omnichain/cli/salt"
	"github.com/sprintertech/sprinter-omnichain/cli/verify"
	"github.com/sprintertech/sprinter-omnichain/config"
)

var (
	rootCMD = &cobra.Command{
		Use: "",
	}
	runCMD = &cobra.Command{
		Use:   "run",
		Short: "Run omnichain bundle service",
		Long:  "Run omnichain bundle service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run()
		},
	}
	versionCMD = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("v%s\n", app.Version)
		},
	}
)

func init() {
	config.BindFlags(rootCMD)
	rootCMD.PersistentFlags().String("name", "", "service name")
	_ = viper.BindPFlag("name", rootCMD.PersistentFlags().Lookup("name"))
}

func Execute() {
	rootCMD.AddCommand(runCMD, versionCMD, salt.SaltCLI, verify.VerifyCLI)
	if err := rootCMD.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute root cmd")
	}
}
