/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package process

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var compileProcessCmd = &cobra.Command{
	Use:     "compile",
	Short:   "Compile a TM1 TurboIntegrator process",
	Long:    "Run the server-side syntax check over a stored process",
	Example: `tm1 process compile --name <process-name>`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		syntaxErrors, err := tm1.Processes.Compile(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		if len(syntaxErrors) == 0 {
			logrus.Infof("The process %s compiles without errors\n",
				formatter.Colorize(name, formatter.GreenColor))
			return
		}
		for _, syntaxError := range syntaxErrors {
			logrus.Errorf(formatter.Colorize(
				fmt.Sprintf("%s line %d: %s\n", syntaxError.Procedure,
					syntaxError.LineNumber, syntaxError.Message),
				formatter.RedColor))
		}
	},
}

func init() {
	compileProcessCmd.Flags().SortFlags = false
	compileProcessCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the process to be compiled.")
	compileProcessCmd.MarkFlagRequired("name")
}
