/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package chore

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var activateChoreCmd = &cobra.Command{
	Use:     "activate",
	Short:   "Activate a TM1 chore",
	Long:    "Activate a chore so that its schedule takes effect",
	Example: `tm1 chore activate --name <chore-name>`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		err = tm1.Chores.Activate(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The chore %s has been activated\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	activateChoreCmd.Flags().SortFlags = false
	activateChoreCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the chore to be activated.")
	activateChoreCmd.MarkFlagRequired("name")
}
