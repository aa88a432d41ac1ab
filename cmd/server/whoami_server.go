/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package server

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/user"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

var whoamiServerCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the connected TM1 user",
	Long:    "Show the user owning the current session, including its group memberships",
	Example: `tm1 server whoami`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		r, err := tm1.Whoami(context.Background())
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		userCtx := formatter.Context{
			Command: "whoami",
			Output:  os.Stdout,
			Format:  user.NewUserFormat(viper.GetString("output")),
		}
		user.Write(userCtx, []*objects.User{r})
	},
}

func init() {
	whoamiServerCmd.Flags().SortFlags = false
}
