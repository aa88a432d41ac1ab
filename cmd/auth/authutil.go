/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package auth

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/session"
	"github.com/cubewise-code/tm1go/pkg/services"
)

func authWriteConfigFile(current services.Session) {
	err := viper.WriteConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprint(os.Stdout, "No config was found a new one will be created.\n\n")
			//Try to create the file
			err = viper.SafeWriteConfig()
			if err != nil {
				logrus.Fatalf(
					formatter.Colorize(
						"Error when writing new config file: "+err.Error()+".\n"+
							"In case of permission errors, please run tm1 with --config flag to set the path.\n",
						formatter.RedColor))

			}
		} else {
			logrus.Fatalf(
				formatter.Colorize(
					"Error when writing config file: "+err.Error()+".\n", formatter.RedColor))
		}
	}
	configFileUsed := viper.GetViper().ConfigFileUsed()
	if len(configFileUsed) == 0 {
		configFileUsed = "$HOME/.tm1cli/.tm1cli.yaml"
	}
	logrus.Infof(
		formatter.Colorize(
			fmt.Sprintf("Configuration file '%v' sucessfully updated.\n",
				configFileUsed), formatter.GreenColor))

	sessionCtx := formatter.Context{
		Command: "auth",
		Output:  os.Stdout,
		Format:  session.NewSessionFormat(viper.GetString("output")),
	}

	session.Write(sessionCtx, []services.Session{current})
}
