/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package session

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/session"
)

var listSessionCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List TM1 server sessions",
	Long:    "List the open sessions on the TM1 server. Requires admin permissions.",
	Example: `tm1 session list`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		r, err := tm1.Sessions.GetAll(context.Background())
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		sessionCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  session.NewSessionFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No sessions found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		session.Write(sessionCtx, r)
	},
}

func init() {
	listSessionCmd.Flags().SortFlags = false
}
