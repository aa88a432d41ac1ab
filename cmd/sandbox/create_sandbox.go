/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package sandbox

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

// createSandboxCmd represents the sandbox command
var createSandboxCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add"},
	Short:   "Create a TM1 sandbox",
	Long:    "Create a private sandbox for cell changes",
	Example: `tm1 sandbox create --name <sandbox-name>`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		err = tm1.Sandboxes.Create(context.Background(), objects.NewSandbox(name))
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The sandbox %s has been created\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	createSandboxCmd.Flags().SortFlags = false
	createSandboxCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the sandbox to be created.")
	createSandboxCmd.MarkFlagRequired("name")
}
