/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

// LoginCmd uses user name and password to configure the CLI
var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate tm1 cli using user name and password",
	Long: "Connect to the TM1 server using user name and password." +
		" If non-interactive mode is set, provide the address, user and password using flags. " +
		"Default for address is \"localhost\"",
	Run: func(cmd *cobra.Command, args []string) {
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
		}
		var user, password string
		var address string
		var data []byte
		addressConfig := viper.GetString("address")
		if !force {
			fmt.Printf("Enter Address [%s]: ", addressConfig)
			// Prompt for the address
			reader := bufio.NewReader(os.Stdin)
			input, err := reader.ReadString('\n')
			if err != nil {
				logrus.Fatalln(
					formatter.Colorize("Could not read address: "+err.Error(), formatter.RedColor))
			}
			// If the input is just a newline, use the default value
			if input == "\n" {
				input = addressConfig + "\n"
			}
			address = strings.TrimSpace(input)
			if len(address) == 0 {
				if len(strings.TrimSpace(addressConfig)) == 0 {
					logrus.Fatalln(formatter.Colorize("Address cannot be empty.", formatter.RedColor))
				} else {
					address = addressConfig
				}
			}

			// Prompt for the user
			fmt.Print("Enter user name: ")
			_, err = fmt.Scanln(&user)
			if err != nil {
				logrus.Fatalln(
					formatter.Colorize("Could not read user name: "+err.Error(), formatter.RedColor))
			}

			// Prompt for the password
			fmt.Print("Enter password: ")
			data, err = term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				logrus.Fatalln(
					formatter.Colorize("Could not read password: "+err.Error(), formatter.RedColor))
			}
			password = string(data)

		} else {
			address, err = cmd.Flags().GetString("address")
			if err != nil {
				logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
			}
			if len(strings.TrimSpace(address)) == 0 {
				address = addressConfig
			}
			user, err = cmd.Flags().GetString("user")
			if err != nil {
				logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
			}
			password, err = cmd.Flags().GetString("password")
			if err != nil {
				logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
			}
		}

		viper.GetViper().Set("address", &address)
		if strings.TrimSpace(user) == "" {
			logrus.Fatalln(formatter.Colorize("User name cannot be empty.", formatter.RedColor))
		}

		fmt.Print("\n\n")

		viper.GetViper().Set("user", &user)
		viper.GetViper().Set("password", &password)

		tm1, err := tm1client.NewTM1ClientInitialize(
			context.Background(), tm1client.ConfigFromViper())
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		defer tm1.Logout(context.Background())
		logrus.Debugf("Login response without errors\n")

		current, err := tm1.Sessions.GetCurrent(context.Background())
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		authWriteConfigFile(*current)
	},
}

func init() {
	LoginCmd.Flags().SortFlags = false
	LoginCmd.Flags().BoolP("force", "f", false,
		"[Optional] Bypass the prompt for non-interactive usage. "+
			"Address, user and password are taken from the global flags.")
}
