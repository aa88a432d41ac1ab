/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cube

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

// cubeDefinition is the YAML shape accepted by --definition-file
type cubeDefinition struct {
	Name       string   `yaml:"name"`
	Dimensions []string `yaml:"dimensions"`
	Rules      string   `yaml:"rules"`
}

// createCubeCmd represents the cube command
var createCubeCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add"},
	Short:   "Create a TM1 cube",
	Long:    "Create a cube over existing dimensions, optionally with rules",
	Example: `tm1 cube create --name <cube-name> --dimensions <dim1,dim2>
tm1 cube create --definition-file <cube.yaml>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		definitionFile, err := cmd.Flags().GetString("definition-file")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if definitionFile != "" {
			return
		}
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(name) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No cube name found to create\n", formatter.RedColor))
		}
		dimensions, err := cmd.Flags().GetString("dimensions")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(util.SplitNames(dimensions)) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No dimensions found to create the cube over\n",
					formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		definitionFile, err := cmd.Flags().GetString("definition-file")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		var definition cubeDefinition
		if definitionFile != "" {
			util.YAMLFileToStruct(definitionFile, &definition)
			if definition.Name == "" || len(definition.Dimensions) == 0 {
				logrus.Fatalln(formatter.Colorize(
					"The definition file must provide a name and dimensions\n",
					formatter.RedColor))
			}
		} else {
			definition.Name, err = cmd.Flags().GetString("name")
			if err != nil {
				logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
			}
			dimensions, err := cmd.Flags().GetString("dimensions")
			if err != nil {
				logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
			}
			definition.Dimensions = util.SplitNames(dimensions)
			rulesFile, err := cmd.Flags().GetString("rules-file")
			if err != nil {
				logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
			}
			if rulesFile != "" {
				definition.Rules = util.FileToString(rulesFile)
			}
		}

		cube := objects.NewCube(definition.Name, definition.Dimensions, definition.Rules)
		err = tm1.Cubes.Create(context.Background(), cube)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The cube %s has been created\n",
			formatter.Colorize(definition.Name, formatter.GreenColor))
	},
}

func init() {
	createCubeCmd.Flags().SortFlags = false
	createCubeCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the cube to be created.")
	createCubeCmd.Flags().StringP("dimensions", "d", "",
		fmt.Sprintf("[Required] Comma separated dimension names in cube order. %s",
			"Example: --dimensions \"Region,Period,Measure\""))
	createCubeCmd.Flags().String("rules-file", "",
		"[Optional] Path to a file holding the rules of the cube.")
	createCubeCmd.Flags().StringP("definition-file", "f", "",
		"[Optional] Path to a YAML file defining the cube (name, dimensions, rules). "+
			"Replaces the name, dimensions and rules-file flags.")
}
