/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package process

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/process"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

var describeProcessCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"get"},
	Short:   "Describe a TM1 TurboIntegrator process",
	Long:    "Describe a TurboIntegrator process, optionally including its code tabs",
	Example: `tm1 process describe --name <process-name> --show-code`,
	PreRun: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(name) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No process name found to describe\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		showCode, err := cmd.Flags().GetBool("show-code")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r, err := tm1.Processes.Get(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		processCtx := formatter.Context{
			Command: "describe",
			Output:  os.Stdout,
			Format:  process.NewProcessFormat(viper.GetString("output")),
		}
		process.Write(processCtx, []*objects.Process{r})

		if showCode && viper.GetString("output") == formatter.TableFormatKey {
			tabs := []struct {
				label string
				code  string
			}{
				{"Prolog", r.PrologProcedure},
				{"Metadata", r.MetadataProcedure},
				{"Data", r.DataProcedure},
				{"Epilog", r.EpilogProcedure},
			}
			for _, tab := range tabs {
				fmt.Println()
				fmt.Println(formatter.Colorize("#Section "+tab.label, formatter.BlueColor))
				fmt.Println(tab.code)
			}
		}
	},
}

func init() {
	describeProcessCmd.Flags().SortFlags = false
	describeProcessCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the process to be described.")
	describeProcessCmd.MarkFlagRequired("name")
	describeProcessCmd.Flags().Bool("show-code", false,
		"[Optional] Print the prolog, metadata, data and epilog tabs.")
}
