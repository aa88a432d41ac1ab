/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package sandbox

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var publishSandboxCmd = &cobra.Command{
	Use:     "publish",
	Short:   "Publish a TM1 sandbox",
	Long:    "Publish the changes of a sandbox into base",
	Example: `tm1 sandbox publish --name <sandbox-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("force", cmd.Flags().Lookup("force"))
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		err = util.ConfirmCommand(
			fmt.Sprintf("Are you sure you want to publish %s: %s into base", "sandbox", name),
			viper.GetBool("force"))
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		err = tm1client.RunWithSpinner(
			fmt.Sprintf("Publishing sandbox %s", name),
			func() error {
				return tm1.Sandboxes.Publish(context.Background(), name)
			})
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The sandbox %s has been published\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	publishSandboxCmd.Flags().SortFlags = false
	publishSandboxCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the sandbox to be published.")
	publishSandboxCmd.MarkFlagRequired("name")
	publishSandboxCmd.Flags().BoolP("force", "f", false,
		"[Optional] Bypass the prompt for non-interactive usage.")
}
