/*
Copyright © 2025 George <george@betterde.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/betterde/startfast/internal/project"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "startfast [PROJECT_NAME]",
	Run:   createProject,
	Args:  cobra.MaximumNArgs(1),
	Short: "Generate a FastAPI project skeleton",
	Long: `startfast generates a ready to run FastAPI project.

Run it without a project name, or with --interactive, to be asked for every
option. Flags may also be set in $HOME/.startfast.yaml or through STARTFAST_*
environment variables, for example STARTFAST_PYTHON_VERSION=3.12.

A project named after a subcommand (init, version, help, completion) cannot be
given as an argument; run "startfast -i" and enter the name in the wizard.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.startfast.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every generated file")

	// Persistent so that init sees the same options it writes out.
	addGenerateFlags(rootCmd.PersistentFlags())

	if err := bindFlags(viper.GetViper(), rootCmd.PersistentFlags()); err != nil {
		log.Fatal(err)
	}
}

// addGenerateFlags declares every flag that shapes the generated project.
func addGenerateFlags(flags *pflag.FlagSet) {
	defaults := project.Default()

	flags.String("path", defaults.Path, "directory where the project will be created")
	flags.String("type", string(defaults.Type), "project type ("+strings.Join(project.Values(project.Types), ", ")+")")
	flags.String("database", string(defaults.Database), "database ("+strings.Join(project.Values(project.Databases), ", ")+")")
	flags.String("auth", string(defaults.Auth), "authentication ("+strings.Join(project.Values(project.AuthMethods), ", ")+")")
	flags.Bool("sync", false, "generate synchronous code instead of async/await")
	flags.Bool("advanced", false, "enable advanced features")
	flags.Bool("no-docker", false, "skip Docker configuration")
	flags.Bool("no-tests", false, "skip the test setup")
	flags.Bool("no-docs", false, "skip documentation")
	flags.Bool("monitoring", false, "include Prometheus and Grafana configuration")
	flags.Bool("celery", false, "include Celery background tasks")
	flags.String("python-version", defaults.PythonVersion, "python version for the project")
	flags.BoolP("force", "f", false, "overwrite an existing directory (or config file for init)")
	flags.BoolP("interactive", "i", false, "run the interactive wizard")
	flags.Bool("dry-run", false, "print the planned files without writing anything")
	flags.String("template-dir", "", "render templates from this directory instead of the bundled set")
}

// bindFlags makes every flag resolvable through v, with STARTFAST_* environment
// variables and config file keys named after the flag.
func bindFlags(v *viper.Viper, sets ...*pflag.FlagSet) error {
	v.SetEnvPrefix("STARTFAST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, set := range sets {
		if err := v.BindPFlags(set); err != nil {
			return err
		}
	}
	return nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".startfast" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".startfast")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			log.Printf("using config file: %s", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		cobra.CheckErr(err)
	}
}

// resolveConfig builds a project configuration from the values bound to v.
func resolveConfig(v *viper.Viper, args []string) (project.Config, error) {
	cfg := project.Default()
	if len(args) > 0 {
		cfg.Name = args[0]
	}

	var err error
	var e error
	if cfg.Type, e = project.ParseType(v.GetString("type")); e != nil {
		err = multierr.Append(err, e)
	}
	if cfg.Database, e = project.ParseDatabase(v.GetString("database")); e != nil {
		err = multierr.Append(err, e)
	}
	if cfg.Auth, e = project.ParseAuth(v.GetString("auth")); e != nil {
		err = multierr.Append(err, e)
	}
	if err != nil {
		return cfg, err
	}

	cfg.Path = v.GetString("path")
	cfg.Async = !v.GetBool("sync")
	cfg.Advanced = v.GetBool("advanced")
	cfg.Docker = !v.GetBool("no-docker")
	cfg.Tests = !v.GetBool("no-tests")
	cfg.Docs = !v.GetBool("no-docs")
	cfg.Monitoring = v.GetBool("monitoring")
	cfg.Celery = v.GetBool("celery")
	cfg.PythonVersion = strings.TrimSpace(v.GetString("python-version"))
	cfg.Force = v.GetBool("force")

	return cfg, nil
}

func createProject(cmd *cobra.Command, args []string) {
	if err := run(viper.GetViper(), args, cmd.OutOrStdout()); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func describe(cfg project.Config) string {
	return fmt.Sprintf("%s (%s, %s, auth %s)", cfg.Name, cfg.Type, cfg.Database, cfg.Auth)
}
