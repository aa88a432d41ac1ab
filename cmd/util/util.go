/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/cubewise-code/tm1go/internal/formatter"
)

// ConfirmCommand function will add an interactive comfirmation with the message provided
func ConfirmCommand(message string, bypass bool) error {
	errAborted := fmt.Errorf("command aborted")
	if bypass {
		return nil
	}
	response := false
	prompt := &survey.Confirm{
		Message: message,
	}
	err := survey.AskOne(prompt, &response)
	if err != nil {
		return err
	}
	if !response {
		return errAborted
	}
	return nil
}

// IsOutputType check if the output type is t
func IsOutputType(t string) bool {
	return viper.GetString("output") == t
}

// IsEmptyString checks if a string is empty after trimming spaces
func IsEmptyString(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SplitNames splits a comma separated list of object names, trimming the
// whitespace around each entry
func SplitNames(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SplitParameters parses name=value pairs of process parameters
func SplitParameters(pairs []string) map[string]interface{} {
	if len(pairs) == 0 {
		return nil
	}
	parameters := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(name) == "" {
			logrus.Fatalf(formatter.Colorize(
				fmt.Sprintf("Invalid parameter '%s', expected name=value\n", pair),
				formatter.RedColor))
		}
		parameters[strings.TrimSpace(name)] = value
	}
	return parameters
}

// YAMLFileToStruct reads a YAML definition file into the given struct, used
// for object definitions passed by file
func YAMLFileToStruct(filePath string, out interface{}) {
	logrus.Debug("YAML File Path: ", filePath)
	yamlContent, err := os.ReadFile(filePath)
	if err != nil {
		logrus.Fatalf(
			formatter.Colorize("Error reading YAML file: "+err.Error()+"\n",
				formatter.RedColor))
	}
	if err := yaml.Unmarshal(yamlContent, out); err != nil {
		logrus.Fatalf(
			formatter.Colorize("Error unmarshalling YAML file: "+err.Error()+"\n",
				formatter.RedColor))
	}
}

// FileToString reads a text file, used for rules and TI code inputs
func FileToString(filePath string) string {
	content, err := os.ReadFile(filePath)
	if err != nil {
		logrus.Fatalf(
			formatter.Colorize("Error reading file: "+err.Error()+"\n",
				formatter.RedColor))
	}
	return string(content)
}
