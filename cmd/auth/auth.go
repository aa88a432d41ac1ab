/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package auth

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/session"
	"github.com/cubewise-code/tm1go/pkg/services"
)

// AuthCmd shows the session the stored configuration connects to
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Show the session opened with the stored credentials",
	Long: "Connect with the credentials from the configuration file and " +
		"show the server session owned by this CLI.",
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		current, err := tm1.Sessions.GetCurrent(context.Background())
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		sessionCtx := formatter.Context{
			Command: "auth",
			Output:  os.Stdout,
			Format:  session.NewSessionFormat(viper.GetString("output")),
		}
		session.Write(sessionCtx, []services.Session{*current})
	},
}
