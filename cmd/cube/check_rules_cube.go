/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cube

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var checkRulesCubeCmd = &cobra.Command{
	Use:     "check-rules",
	Short:   "Check the rules of a TM1 cube",
	Long:    "Run the server-side syntax check over the rules of a cube",
	Example: `tm1 cube check-rules --name <cube-name>`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		syntaxErrors, err := tm1.Cubes.CheckRules(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		if len(syntaxErrors) == 0 {
			logrus.Infof("The rules of cube %s are valid\n",
				formatter.Colorize(name, formatter.GreenColor))
			return
		}
		for _, syntaxError := range syntaxErrors {
			logrus.Errorf(formatter.Colorize(
				fmt.Sprintf("Line %d: %s\n", syntaxError.LineNumber, syntaxError.Message),
				formatter.RedColor))
		}
	},
}

func init() {
	checkRulesCubeCmd.Flags().SortFlags = false
	checkRulesCubeCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the cube whose rules are checked.")
	checkRulesCubeCmd.MarkFlagRequired("name")
}
