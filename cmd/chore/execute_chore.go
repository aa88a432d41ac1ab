/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package chore

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var executeChoreCmd = &cobra.Command{
	Use:     "execute",
	Aliases: []string{"run"},
	Short:   "Execute a TM1 chore",
	Long:    "Execute a chore immediately regardless of its schedule",
	Example: `tm1 chore execute --name <chore-name>`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		err = tm1client.RunWithSpinner(
			fmt.Sprintf("Executing chore %s", name),
			func() error {
				return tm1.Chores.Execute(context.Background(), name)
			})
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The chore %s has been executed\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	executeChoreCmd.Flags().SortFlags = false
	executeChoreCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the chore to be executed.")
	executeChoreCmd.MarkFlagRequired("name")
}
