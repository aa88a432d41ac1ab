/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package process

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

var createProcessCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add"},
	Short:   "Create a TM1 TurboIntegrator process",
	Long:    "Create a TurboIntegrator process from code tab files",
	Example: `tm1 process create --name <process-name> --prolog-file prolog.ti`,
	PreRun: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(name) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No process name found to create\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		newProcess := objects.NewProcess(name)
		for flag, target := range map[string]*string{
			"prolog-file":   &newProcess.PrologProcedure,
			"metadata-file": &newProcess.MetadataProcedure,
			"data-file":     &newProcess.DataProcedure,
			"epilog-file":   &newProcess.EpilogProcedure,
		} {
			path, err := cmd.Flags().GetString(flag)
			if err != nil {
				logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
			}
			if !util.IsEmptyString(path) {
				*target = util.FileToString(path)
			}
		}

		err = tm1.Processes.Create(context.Background(), newProcess)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The process %s has been created\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	createProcessCmd.Flags().SortFlags = false
	createProcessCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the process to be created.")
	createProcessCmd.MarkFlagRequired("name")
	createProcessCmd.Flags().String("prolog-file", "",
		"[Optional] Path to a file containing the prolog tab code.")
	createProcessCmd.Flags().String("metadata-file", "",
		"[Optional] Path to a file containing the metadata tab code.")
	createProcessCmd.Flags().String("data-file", "",
		"[Optional] Path to a file containing the data tab code.")
	createProcessCmd.Flags().String("epilog-file", "",
		"[Optional] Path to a file containing the epilog tab code.")
}
