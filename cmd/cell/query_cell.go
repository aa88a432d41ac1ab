/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cell

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/services"
)

var queryCellCmd = &cobra.Command{
	Use:     "query",
	Aliases: []string{"mdx"},
	Short:   "Execute an MDX query against TM1 cubes",
	Long:    "Execute an MDX query and print the resulting cells with their coordinates",
	Example: `tm1 cell query --mdx "SELECT {[Period].[Jan]} ON 0 FROM [Sales]"`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		mdx, err := cmd.Flags().GetString("mdx")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		sandboxName, err := cmd.Flags().GetString("sandbox")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		skipZeros, err := cmd.Flags().GetBool("skip-zeros")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		cellset, err := tm1.Cells.ExecuteMDX(context.Background(), mdx,
			services.ExtractOptions{SandboxName: sandboxName, SkipZeros: skipZeros})
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		if len(cellset.Cells) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No cells found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}

		if !util.IsOutputType(formatter.TableFormatKey) {
			var output []byte
			if util.IsOutputType(formatter.PrettyFormatKey) {
				output, err = json.MarshalIndent(cellset.Cells, "", "  ")
			} else {
				output, err = json.Marshal(cellset.Cells)
			}
			if err != nil {
				logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
			}
			os.Stdout.Write(output)
			return
		}

		t := tabwriter.NewWriter(os.Stdout, 10, 1, 3, ' ', 0)
		fmt.Fprintln(t, "Coordinates\t"+formatter.ValueHeader)
		for _, cell := range cellset.Cells {
			fmt.Fprintf(t, "%s\t%v\n", strings.Join(cell.Coordinates, ", "), cell.Value)
		}
		t.Flush()
	},
}

func init() {
	queryCellCmd.Flags().SortFlags = false
	queryCellCmd.Flags().StringP("mdx", "m", "",
		"[Required] The MDX statement to execute.")
	queryCellCmd.MarkFlagRequired("mdx")
	queryCellCmd.Flags().String("sandbox", "",
		"[Optional] Execute the query against the named sandbox instead of base.")
	queryCellCmd.Flags().Bool("skip-zeros", false,
		"[Optional] Skip cells holding zero values.")
}
