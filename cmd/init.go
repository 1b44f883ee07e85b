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
	"path/filepath"

	"github.com/betterde/startfast/internal/output"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [file]",
	Run:   initConfigFile,
	Args:  cobra.MaximumNArgs(1),
	Short: "Write a config file holding the current option values",
	Long: `Write every project option, as currently resolved from flags, environment
and any existing config file, to a YAML file. The file defaults to
$HOME/.startfast.yaml and is picked up by later runs.`,
}

// Flags that only make sense for a single invocation.
var transient = map[string]bool{
	"force":        true,
	"interactive":  true,
	"dry-run":      true,
	"template-dir": true,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initConfigFile(cmd *cobra.Command, args []string) {
	var dst string
	if len(args) == 1 {
		dst = args[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		dst = filepath.Join(home, ".startfast.yaml")
	}

	if err := writeConfigFile(viper.GetViper(), dst, viper.GetBool("force")); err != nil {
		log.Fatalf("error: %v", err)
	}
	log.Printf("wrote %s", dst)
}

// writeConfigFile stores the value of every persistent generation option in
// dst, keyed by flag name.
func writeConfigFile(v *viper.Viper, dst string, force bool) error {
	exists, err := afero.Exists(appFs, dst)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", output.ErrDestinationExists, dst)
	}

	settings := make(map[string]interface{})
	flags := pflag.NewFlagSet("startfast", pflag.ContinueOnError)
	addGenerateFlags(flags)
	flags.VisitAll(func(flag *pflag.Flag) {
		if transient[flag.Name] {
			return
		}
		value := v.Get(flag.Name)
		if value == nil {
			value = flag.DefValue
		}
		if flag.Value.Type() == "bool" {
			settings[flag.Name] = cast.ToBool(value)
		} else {
			settings[flag.Name] = cast.ToString(value)
		}
	})

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	if err := appFs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("error creating directories for %s: %w", dst, err)
	}
	return afero.WriteFile(appFs, dst, data, 0644)
}
