/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cube

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/cube"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

var describeCubeCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"get"},
	Short:   "Describe a TM1 cube",
	Long:    "Describe a cube in the TM1 database, including its rules",
	Example: `tm1 cube describe --name <cube-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(name) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No cube name found to describe\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r, err := tm1.Cubes.Get(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		cubeCtx := formatter.Context{
			Command: "describe",
			Output:  os.Stdout,
			Format:  cube.NewCubeFormat(viper.GetString("output")),
		}
		cube.Write(cubeCtx, []*objects.Cube{r})

		if r.HasRules() && viper.GetString("output") == formatter.TableFormatKey {
			fmt.Println()
			fmt.Println(r.Rules.Text)
		}
	},
}

func init() {
	describeCubeCmd.Flags().SortFlags = false
	describeCubeCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the cube to be described.")
	describeCubeCmd.MarkFlagRequired("name")
}
