/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package user

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/user"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

var listUserCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List TM1 users",
	Long:    "List TM1 users",
	Example: `tm1 user list`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		rUsers, err := tm1.Security.GetAllUsers(context.Background())
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		group, err := cmd.Flags().GetString("group")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r := make([]*objects.User, 0)
		if !util.IsEmptyString(group) {
			for _, u := range rUsers {
				if u.IsMemberOf(group) {
					r = append(r, u)
				}
			}
		} else {
			r = rUsers
		}

		userCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  user.NewUserFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No users found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		user.Write(userCtx, r)
	},
}

func init() {
	listUserCmd.Flags().SortFlags = false

	listUserCmd.Flags().StringP("group", "g", "",
		"[Optional] Only list users that are members of this group.")
}
