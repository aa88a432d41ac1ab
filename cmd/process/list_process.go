/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package process

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/process"
)

var listProcessCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List TM1 TurboIntegrator processes",
	Long:    "List TM1 TurboIntegrator processes",
	Example: `tm1 process list`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		skipControl, err := cmd.Flags().GetBool("skip-control")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r, err := tm1.Processes.GetAll(context.Background(), skipControl)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		processCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  process.NewProcessFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No processes found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		process.Write(processCtx, r)
	},
}

func init() {
	listProcessCmd.Flags().SortFlags = false

	listProcessCmd.Flags().Bool("skip-control", false,
		"[Optional] Skip control processes whose name starts with '}'.")
}
