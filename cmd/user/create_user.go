/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package user

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

// createUserCmd represents the user command
var createUserCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add"},
	Short:   "Create a TM1 user",
	Long:    "Create a user in the TM1 database with optional group memberships",
	Example: `tm1 user create --name <user-name> --groups <group1,group2>`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		groups, err := cmd.Flags().GetString("groups")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		password, err := cmd.Flags().GetString("user-password")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		prompt, err := cmd.Flags().GetBool("prompt-password")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		if prompt {
			fmt.Print("Enter password for the new user: ")
			data, promptErr := term.ReadPassword(int(os.Stdin.Fd()))
			if promptErr != nil {
				logrus.Fatalln(formatter.Colorize(
					"Could not read password: "+promptErr.Error(), formatter.RedColor))
			}
			password = string(data)
			fmt.Println()
		}

		newUser := objects.NewUser(name, util.SplitNames(groups)...)
		newUser.Password = password
		err = tm1.Security.CreateUser(context.Background(), newUser)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The user %s has been created\n",
			formatter.Colorize(name, formatter.GreenColor))
	},
}

func init() {
	createUserCmd.Flags().SortFlags = false
	createUserCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the user to be created.")
	createUserCmd.MarkFlagRequired("name")
	createUserCmd.Flags().StringP("groups", "g", "",
		"[Optional] Comma separated names of groups the user joins.")
	createUserCmd.Flags().String("user-password", "",
		"[Optional] Password for the new user.")
	createUserCmd.Flags().Bool("prompt-password", false,
		"[Optional] Prompt for the password of the new user instead of passing it as a flag.")
}
