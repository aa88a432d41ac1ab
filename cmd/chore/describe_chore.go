/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package chore

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/chore"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

var describeChoreCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"get"},
	Short:   "Describe a TM1 chore",
	Long:    "Describe a chore in the TM1 database, including its schedule and tasks",
	Example: `tm1 chore describe --name <chore-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(name) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No chore name found to describe\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r, err := tm1.Chores.Get(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		choreCtx := formatter.Context{
			Command: "describe",
			Output:  os.Stdout,
			Format:  chore.NewChoreFormat(viper.GetString("output")),
		}
		chore.Write(choreCtx, []*objects.Chore{r})
	},
}

func init() {
	describeChoreCmd.Flags().SortFlags = false
	describeChoreCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the chore to be described.")
	describeChoreCmd.MarkFlagRequired("name")
}
