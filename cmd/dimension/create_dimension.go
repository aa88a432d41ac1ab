/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package dimension

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

// createDimensionCmd represents the dimension command
var createDimensionCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add"},
	Short:   "Create a TM1 dimension",
	Long: "Create a dimension with a default hierarchy of the same name, " +
		"optionally seeded with leaf elements",
	Example: `tm1 dimension create --name <dimension-name> --elements <e1,e2>`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		elements, err := cmd.Flags().GetString("elements")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		leaves := make([]objects.Element, 0)
		for _, elementName := range util.SplitNames(elements) {
			leaves = append(leaves, objects.NewElement(elementName, objects.ElementTypeNumeric))
		}

		dimension := objects.NewDimension(name,
			objects.NewHierarchy(name, name, leaves, nil))
		err = tm1.Dimensions.Create(context.Background(), dimension)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The dimension %s has been created\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	createDimensionCmd.Flags().SortFlags = false
	createDimensionCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the dimension to be created.")
	createDimensionCmd.MarkFlagRequired("name")
	createDimensionCmd.Flags().StringP("elements", "e", "",
		"[Optional] Comma separated names of numeric leaf elements to seed the dimension with.")
}
