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

var deactivateChoreCmd = &cobra.Command{
	Use:     "deactivate",
	Short:   "Deactivate a TM1 chore",
	Long:    "Deactivate a chore so that it no longer runs on its schedule",
	Example: `tm1 chore deactivate --name <chore-name>`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		err = tm1.Chores.Deactivate(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The chore %s has been deactivated\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	deactivateChoreCmd.Flags().SortFlags = false
	deactivateChoreCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the chore to be deactivated.")
	deactivateChoreCmd.MarkFlagRequired("name")
}
