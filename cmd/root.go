/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cubewise-code/tm1go/cmd/auth"
	"github.com/cubewise-code/tm1go/cmd/cell"
	"github.com/cubewise-code/tm1go/cmd/chore"
	"github.com/cubewise-code/tm1go/cmd/cube"
	"github.com/cubewise-code/tm1go/cmd/dimension"
	"github.com/cubewise-code/tm1go/cmd/process"
	"github.com/cubewise-code/tm1go/cmd/sandbox"
	"github.com/cubewise-code/tm1go/cmd/server"
	"github.com/cubewise-code/tm1go/cmd/session"
	"github.com/cubewise-code/tm1go/cmd/user"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/log"

	"github.com/common-nighthawk/go-figure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	cfgDirectory string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tm1",
	Short: "tm1 - Command line tools to manage your IBM TM1 and Planning Analytics models.",
	Long: `
	TM1 is an in-memory multidimensional database for planning, budgeting
	and analytics. The TM1 CLI talks to the TM1 REST API and provides ease
	of access to cubes, dimensions, processes and data via the command line.`,

	Run: func(cmd *cobra.Command, args []string) {
		myFigure := figure.NewFigure("tm1", "", true)
		myFigure.Print()
		logrus.Printf("\n")
		cmd.Help()
	},

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if strings.HasPrefix(cmd.CommandPath(), "tm1 completion") {
			return
		}
	},
}

// called on module init
func init() {
	cobra.OnInitialize(initConfig)
	cobra.EnableCaseInsensitive = true

	setDefaults()
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.PersistentFlags().StringVar(&cfgDirectory, "directory", "",
		"Directory containing TM1 CLI configuration and generated files. "+
			"If specified, the CLI will look for a configuration file named '.tm1cli.yaml' in this directory. "+
			"Defaults to '$HOME/.tm1cli/'.")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Full path to a specific configuration file for TM1 CLI. "+
			"If provided, this takes precedence over the directory specified via --directory, "+
			"and the generated files are added to the same path. "+
			"If not provided, the CLI will look for '.tm1cli.yaml' in the directory specified by --directory. "+
			"Defaults to '$HOME/.tm1cli/.tm1cli.yaml'.")
	rootCmd.PersistentFlags().StringP("address", "H", "localhost",
		"TM1 server host name or IP address.")
	rootCmd.PersistentFlags().Int("port", 0,
		"TM1 REST API port (HTTPPortNumber of the database).")
	rootCmd.PersistentFlags().Bool("ssl", true,
		"Use https when connecting to the TM1 server.")
	rootCmd.PersistentFlags().String("instance", "",
		"Planning Analytics Engine instance name.")
	rootCmd.PersistentFlags().String("database", "",
		"Planning Analytics Engine database name.")
	rootCmd.PersistentFlags().String("base-url", "",
		"Complete base URL of the TM1 REST API, overrides address, port and ssl.")
	rootCmd.PersistentFlags().StringP("user", "u", "",
		"TM1 user name.")
	rootCmd.PersistentFlags().StringP("password", "p", "",
		"TM1 user password.")
	rootCmd.PersistentFlags().String("namespace", "",
		"CAM namespace for IntegratedSecurityMode 4 or 5.")
	rootCmd.PersistentFlags().String("gateway", "",
		"ClientCAMURI gateway for SSO with CAM security.")
	rootCmd.PersistentFlags().String("cam-passport", "",
		"Existing CAM passport to authenticate with.")
	rootCmd.PersistentFlags().String("api-key", "",
		"IBM Cloud API key for Planning Analytics as a Service.")
	rootCmd.PersistentFlags().String("tenant", "",
		"Planning Analytics as a Service tenant ID.")
	rootCmd.PersistentFlags().String("pa-url", "",
		"Planning Analytics as a Service workspace URL.")
	rootCmd.PersistentFlags().String("access-token", "",
		"Bearer access token to authenticate with.")
	rootCmd.PersistentFlags().String("session-context", "",
		"Session context name shown in the TM1 session monitor.")
	rootCmd.PersistentFlags().StringP("output", "o", formatter.TableFormatKey,
		"Select the desired output format. Allowed values: table, json, pretty.")
	rootCmd.PersistentFlags().StringP("logLevel", "l", "info",
		"Select the desired log level format. Allowed values: debug, info, warn, error, fatal.")
	rootCmd.PersistentFlags().Bool("debug", false, "Use debug mode, same as --logLevel debug.")
	rootCmd.PersistentFlags().
		Bool("disable-color", false, "Disable colors in output. (default false)")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Minute,
		"Request timeout, example: 5m, 1h.")
	rootCmd.PersistentFlags().Bool("insecure", false,
		"Skip TLS certificate verification when connecting to the TM1 server. "+
			"Defaults to false for https.")
	rootCmd.PersistentFlags().String("ca-cert", "",
		"CA certificate file path for secure connection to the TM1 server. "+
			"Required when the endpoint is https and --insecure is not set.")

	//Bind peristents flags to viper
	viper.BindPFlag("address", rootCmd.PersistentFlags().Lookup("address"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("ssl", rootCmd.PersistentFlags().Lookup("ssl"))
	viper.BindPFlag("instance", rootCmd.PersistentFlags().Lookup("instance"))
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
	viper.BindPFlag("base-url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
	viper.BindPFlag("password", rootCmd.PersistentFlags().Lookup("password"))
	viper.BindPFlag("namespace", rootCmd.PersistentFlags().Lookup("namespace"))
	viper.BindPFlag("gateway", rootCmd.PersistentFlags().Lookup("gateway"))
	viper.BindPFlag("cam-passport", rootCmd.PersistentFlags().Lookup("cam-passport"))
	viper.BindPFlag("api-key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("tenant", rootCmd.PersistentFlags().Lookup("tenant"))
	viper.BindPFlag("pa-url", rootCmd.PersistentFlags().Lookup("pa-url"))
	viper.BindPFlag("access-token", rootCmd.PersistentFlags().Lookup("access-token"))
	viper.BindPFlag("session-context", rootCmd.PersistentFlags().Lookup("session-context"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("logLevel"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("disable-color", rootCmd.PersistentFlags().Lookup("disable-color"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("insecure", rootCmd.PersistentFlags().Lookup("insecure"))
	viper.BindPFlag("ca-cert", rootCmd.PersistentFlags().Lookup("ca-cert"))

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(auth.LoginCmd)
	rootCmd.AddCommand(cube.CubeCmd)
	rootCmd.AddCommand(dimension.DimensionCmd)
	rootCmd.AddCommand(cell.CellCmd)
	rootCmd.AddCommand(process.ProcessCmd)
	rootCmd.AddCommand(chore.ChoreCmd)
	rootCmd.AddCommand(sandbox.SandboxCmd)
	rootCmd.AddCommand(user.UserCmd)
	rootCmd.AddCommand(session.SessionCmd)
	rootCmd.AddCommand(server.ServerCmd)

	addGroupsCmd(rootCmd)
}

// Execute commands
func Execute(version string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("TM1 CLI (tm1) version: {{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		// Set log level and formatter for this error
		log.SetLogLevel(viper.GetString("logLevel"), viper.GetBool("debug"))
		logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
	}
}

func setDefaults() {
	viper.SetDefault("address", "localhost")
	viper.SetDefault("ssl", true)
	viper.SetDefault("output", formatter.TableFormatKey)
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("debug", false)
	viper.SetDefault("disable-color", false)
	viper.SetDefault("timeout", time.Duration(10*time.Minute))
	viper.SetDefault("insecure", false)
	viper.SetDefault("ca-cert", "")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if cfgDirectory != "" {
		// Check if the directory exists
		if stat, err := os.Stat(cfgDirectory); err == nil && stat.IsDir() {
			configPath := filepath.Join(cfgDirectory, ".tm1cli.yaml")
			viper.AddConfigPath(cfgDirectory)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".tm1cli")
			viper.SetConfigFile(configPath)
		} else {
			viper.SetDefault("output", formatter.TableFormatKey)
			viper.SetDefault("logLevel", "info")
			viper.SetDefault("debug", false)
			logrus.Fatalf("%s",
				formatter.Colorize(
					"Provided configuration directory does not exist: "+cfgDirectory, formatter.RedColor,
				))
		}
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		homeDir, err := os.Stat(home)
		if err != nil {
			cobra.CheckErr(err)
		}
		homePerms := homeDir.Mode().Perm()
		os.Mkdir(home+"/.tm1cli", homePerms)
		// Search config in home directory with name ".tm1cli" (without extension).
		viper.AddConfigPath(home + "/.tm1cli")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tm1cli")
		viper.SetConfigFile(home + "/.tm1cli/.tm1cli.yaml")
	}

	//Will check every environment variable starting with TM1_
	viper.SetEnvPrefix("tm1")
	//Read all enviromnent variable that match TM1_ENVNAME
	viper.AutomaticEnv() // read in environment variables that match
	// Set log level and formatter
	log.SetLogLevel(viper.GetString("logLevel"), viper.GetBool("debug"))
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s\n", viper.ConfigFileUsed())
	}

}

func addGroupsCmd(rootCmd *cobra.Command) {

	rootCmd.AddGroup(
		&cobra.Group{
			ID:    "authentication",
			Title: "Authentication Commands",
		},
	)

	auth.AuthCmd.GroupID = "authentication"
	auth.LoginCmd.GroupID = "authentication"

	rootCmd.AddGroup(
		&cobra.Group{
			ID:    "model",
			Title: "Model Commands",
		},
	)

	cube.CubeCmd.GroupID = "model"
	dimension.DimensionCmd.GroupID = "model"

	rootCmd.AddGroup(
		&cobra.Group{
			ID:    "data",
			Title: "Data Commands",
		},
	)

	cell.CellCmd.GroupID = "data"
	sandbox.SandboxCmd.GroupID = "data"

	rootCmd.AddGroup(
		&cobra.Group{
			ID:    "automation",
			Title: "Automation Commands",
		},
	)

	process.ProcessCmd.GroupID = "automation"
	chore.ChoreCmd.GroupID = "automation"

	rootCmd.AddGroup(
		&cobra.Group{
			ID:    "administration",
			Title: "Administration Commands",
		},
	)
	user.UserCmd.GroupID = "administration"
	session.SessionCmd.GroupID = "administration"
	server.ServerCmd.GroupID = "administration"
}
