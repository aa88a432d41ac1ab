/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package server

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var saveDataServerCmd = &cobra.Command{
	Use:     "save-data",
	Short:   "Persist all in-memory cube changes",
	Long:    "Run SaveDataAll on the TM1 server, writing all in-memory cube changes to disk",
	Example: `tm1 server save-data`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		err := tm1client.RunWithSpinner("Saving data", func() error {
			return tm1.SaveData(context.Background())
		})
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("%s\n",
			formatter.Colorize("All cube changes have been saved", formatter.GreenColor))
	},
}

func init() {
	saveDataServerCmd.Flags().SortFlags = false
}
