/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package process

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/services"
)

var executeProcessCmd = &cobra.Command{
	Use:     "execute",
	Aliases: []string{"run"},
	Short:   "Execute a TM1 TurboIntegrator process",
	Long: "Execute a stored TurboIntegrator process and report its outcome, " +
		"including the error log file on failure",
	Example: `tm1 process execute --name <process-name> --param pYear=2024`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		params, err := cmd.Flags().GetStringArray("param")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		var result *services.ProcessExecuteResult
		err = tm1client.RunWithSpinner(
			fmt.Sprintf("Executing process %s", name),
			func() error {
				var execErr error
				result, execErr = tm1.Processes.ExecuteWithReturn(
					context.Background(), name, util.SplitParameters(params))
				return execErr
			})
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		if result.Successful() {
			logrus.Infof("The process %s completed with status %s\n",
				formatter.Colorize(name, formatter.GreenColor), result.Status)
			return
		}

		logrus.Errorf(formatter.Colorize(
			fmt.Sprintf("The process %s completed with status %s\n", name, result.Status),
			formatter.RedColor))
		if result.ErrorLogFile != "" {
			content, logErr := tm1.Processes.GetErrorLogFileContent(
				context.Background(), result.ErrorLogFile)
			if logErr != nil {
				logrus.Fatalf(formatter.Colorize(logErr.Error()+"\n", formatter.RedColor))
			}
			logrus.Errorf("%s\n", content)
		}
	},
}

func init() {
	executeProcessCmd.Flags().SortFlags = false
	executeProcessCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the process to be executed.")
	executeProcessCmd.MarkFlagRequired("name")
	executeProcessCmd.Flags().StringArray("param", nil,
		"[Optional] Process parameter as name=value, repeatable.")
}
