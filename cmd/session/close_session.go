/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package session

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

var closeSessionCmd = &cobra.Command{
	Use:     "close",
	Short:   "Close a TM1 server session",
	Long:    "Close another session on the TM1 server. Requires admin permissions.",
	Example: `tm1 session close --id <session-id>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("force", cmd.Flags().Lookup("force"))
		id, err := cmd.Flags().GetInt("id")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		err = util.ConfirmCommand(
			fmt.Sprintf("Are you sure you want to close %s: %d", "session", id),
			viper.GetBool("force"))
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		id, err := cmd.Flags().GetInt("id")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		err = tm1.Sessions.Close(context.Background(), id)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The session %s has been closed\n",
			formatter.Colorize(fmt.Sprintf("%d", id), formatter.GreenColor))
	},
}

func init() {
	closeSessionCmd.Flags().SortFlags = false
	closeSessionCmd.Flags().Int("id", 0,
		"[Required] The ID of the session to be closed.")
	closeSessionCmd.MarkFlagRequired("id")
	closeSessionCmd.Flags().BoolP("force", "f", false,
		"[Optional] Bypass the prompt for non-interactive usage.")
}
