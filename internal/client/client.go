/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package client

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/cubewise-code/tm1go/pkg/services"
)

var cliVersion = "0.1.0"

// SetVersion sets the version of the CLI reported in the session context
func SetVersion(version string) {
	cliVersion = version
}

// GetVersion fetches the version of the CLI
func GetVersion() string {
	return cliVersion
}

// ConfigFromViper builds the session configuration from flags, environment
// variables and the configuration file
func ConfigFromViper() rest.Config {
	return rest.Config{
		Address:        viper.GetString("address"),
		Port:           viper.GetInt("port"),
		SSL:            viper.GetBool("ssl"),
		Instance:       viper.GetString("instance"),
		Database:       viper.GetString("database"),
		BaseURL:        viper.GetString("base-url"),
		User:           viper.GetString("user"),
		Password:       viper.GetString("password"),
		Namespace:      viper.GetString("namespace"),
		Gateway:        viper.GetString("gateway"),
		CAMPassport:    viper.GetString("cam-passport"),
		APIKey:         viper.GetString("api-key"),
		Tenant:         viper.GetString("tenant"),
		PAURL:          viper.GetString("pa-url"),
		AccessToken:    viper.GetString("access-token"),
		SessionContext: viper.GetString("session-context"),
		Timeout:        viper.GetDuration("timeout"),
		Insecure:       viper.GetBool("insecure"),
		CAFile:         viper.GetString("ca-cert"),
	}
}

// NewTM1ClientInitialize connects a session with the given configuration
func NewTM1ClientInitialize(ctx context.Context, cfg rest.Config) (*services.TM1Service, error) {
	if cfg.SessionContext == "" {
		cfg.SessionContext = "tm1cli " + cliVersion
	}
	return services.New(ctx, cfg)
}

// NewTM1Client connects a session from the stored configuration and exits
// the CLI when the server cannot be reached
func NewTM1Client() *services.TM1Service {
	tm1, err := NewTM1ClientInitialize(context.Background(), ConfigFromViper())
	if err != nil {
		logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
	}
	return tm1
}
