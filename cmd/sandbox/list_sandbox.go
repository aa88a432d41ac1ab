/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package sandbox

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/sandbox"
)

var listSandboxCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List TM1 sandboxes",
	Long:    "List the sandboxes of the connected user",
	Example: `tm1 sandbox list`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		r, err := tm1.Sandboxes.GetAll(context.Background())
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		sandboxCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  sandbox.NewSandboxFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No sandboxes found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		sandbox.Write(sandboxCtx, r)
	},
}

func init() {
	listSandboxCmd.Flags().SortFlags = false
}
