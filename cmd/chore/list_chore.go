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

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/chore"
)

var listChoreCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List TM1 chores",
	Long:    "List TM1 chores",
	Example: `tm1 chore list`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		r, err := tm1.Chores.GetAll(context.Background())
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		choreCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  chore.NewChoreFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No chores found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		chore.Write(choreCtx, r)
	},
}

func init() {
	listChoreCmd.Flags().SortFlags = false
}
