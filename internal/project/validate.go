package project

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/mod/semver"
)

const minPythonVersion = "v3.8"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateName checks that name can be used as a directory and package name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: project name cannot be empty", ErrInvalidOption)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: project name %q should only contain letters, numbers, hyphens, and underscores", ErrInvalidOption, name)
	}
	return nil
}

// ValidatePythonVersion accepts 3.<minor>[.<patch>] releases from 3.8 onwards.
func ValidatePythonVersion(version string) error {
	v := "v" + strings.TrimSpace(version)
	if strings.Count(version, ".") == 0 || !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return fmt.Errorf("%w: python version %q is not of the form 3.<minor>", ErrInvalidOption, version)
	}
	if semver.Major(v) != "v3" || semver.Compare(v, minPythonVersion) < 0 {
		return fmt.Errorf("%w: python version %s is not supported (need 3.8 or newer)", ErrInvalidOption, version)
	}
	return nil
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var err error

	err = multierr.Append(err, ValidateName(c.Name))
	// Values must already be canonical; Parse* is where input gets normalised.
	if !contains(Types, string(c.Type)) {
		err = multierr.Append(err, unknown("project type", string(c.Type), Types))
	}
	if !contains(Databases, string(c.Database)) {
		err = multierr.Append(err, unknown("database", string(c.Database), Databases))
	}
	if !contains(AuthMethods, string(c.Auth)) {
		err = multierr.Append(err, unknown("auth", string(c.Auth), AuthMethods))
	}
	err = multierr.Append(err, ValidatePythonVersion(c.PythonVersion))

	if c.Database == DatabaseRedis {
		if c.Type == TypeCRUD {
			err = multierr.Append(err, fmt.Errorf("%w: project type %s needs a relational or document database, not %s", ErrInvalidOption, c.Type, c.Database))
		}
		if c.HasUsers() {
			err = multierr.Append(err, fmt.Errorf("%w: auth %s stores user accounts and cannot use %s", ErrInvalidOption, c.Auth, c.Database))
		}
	}

	return err
}
