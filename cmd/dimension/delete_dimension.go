/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package dimension

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

// deleteDimensionCmd represents the dimension command
var deleteDimensionCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove", "rm"},
	Short:   "Delete a TM1 dimension",
	Long:    "Delete a dimension in the TM1 database",
	Example: `tm1 dimension delete --name <dimension-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("force", cmd.Flags().Lookup("force"))
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(name) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No dimension name found to delete\n", formatter.RedColor))
		}
		err = util.ConfirmCommand(
			fmt.Sprintf("Are you sure you want to delete %s: %s", "dimension", name),
			viper.GetBool("force"))
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		usedIn, err := tm1.Dimensions.UsedInCubes(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(usedIn) > 0 {
			logrus.Fatalf(formatter.Colorize(
				fmt.Sprintf("The dimension %s is used in cubes: %v\n", name, usedIn),
				formatter.RedColor))
		}

		err = tm1.Dimensions.Delete(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The dimension %s has been deleted\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	deleteDimensionCmd.Flags().SortFlags = false
	deleteDimensionCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the dimension to be deleted.")
	deleteDimensionCmd.MarkFlagRequired("name")
	deleteDimensionCmd.Flags().BoolP("force", "f", false,
		"[Optional] Bypass the prompt for non-interactive usage.")
}
