package project

import (
	"path/filepath"
	"strings"
	"unicode"
)

type Type string

const (
	TypeAPI          Type = "api"
	TypeCRUD         Type = "crud"
	TypeMLAPI        Type = "ml-api"
	TypeMicroservice Type = "microservice"
)

type Database string

const (
	DatabaseSQLite     Database = "sqlite"
	DatabasePostgreSQL Database = "postgresql"
	DatabaseMySQL      Database = "mysql"
	DatabaseMongoDB    Database = "mongodb"
	DatabaseRedis      Database = "redis"
)

type Auth string

const (
	AuthNone   Auth = "none"
	AuthJWT    Auth = "jwt"
	AuthOAuth2 Auth = "oauth2"
	AuthAPIKey Auth = "api-key"
)

func (t Type) String() string     { return string(t) }
func (d Database) String() string { return string(d) }
func (a Auth) String() string     { return string(a) }

// Feature names understood by template manifests.
const (
	FeatureDocker     = "docker"
	FeatureTests      = "tests"
	FeatureDocs       = "docs"
	FeatureMonitoring = "monitoring"
	FeatureCelery     = "celery"
	FeatureAdvanced   = "advanced"
	FeatureAsync      = "async"
	FeatureSync       = "sync"
)

const DefaultPythonVersion = "3.11"

// Config is the resolved set of generation options for one invocation.
type Config struct {
	Name          string   `yaml:"name"`
	Path          string   `yaml:"path"`
	Type          Type     `yaml:"type"`
	Database      Database `yaml:"database"`
	Auth          Auth     `yaml:"auth"`
	Async         bool     `yaml:"async"`
	Advanced      bool     `yaml:"advanced"`
	Docker        bool     `yaml:"docker"`
	Tests         bool     `yaml:"tests"`
	Docs          bool     `yaml:"docs"`
	Monitoring    bool     `yaml:"monitoring"`
	Celery        bool     `yaml:"celery"`
	PythonVersion string   `yaml:"python_version"`
	Force         bool     `yaml:"-"`
}

// Default returns a Config carrying every default option. Name is left empty.
func Default() Config {
	return Config{
		Path:          ".",
		Type:          TypeAPI,
		Database:      DatabaseSQLite,
		Auth:          AuthJWT,
		Async:         true,
		Docker:        true,
		Tests:         true,
		Docs:          true,
		PythonVersion: DefaultPythonVersion,
	}
}

// Dir is the directory the project is generated into.
func (c Config) Dir() string {
	path := c.Path
	if path == "" {
		path = "."
	}
	return filepath.Join(path, c.Name)
}

// Features reports every manifest feature name and whether it is enabled.
func (c Config) Features() map[string]bool {
	return map[string]bool{
		FeatureDocker:     c.Docker,
		FeatureTests:      c.Tests,
		FeatureDocs:       c.Docs,
		FeatureMonitoring: c.Monitoring,
		FeatureCelery:     c.Celery,
		FeatureAdvanced:   c.Advanced,
		FeatureAsync:      c.Async,
		FeatureSync:       !c.Async,
	}
}

func (c Config) HasAuth() bool {
	return c.Auth != "" && c.Auth != AuthNone
}

// HasUsers reports whether the auth method keeps user accounts.
func (c Config) HasUsers() bool {
	return c.Auth == AuthJWT || c.Auth == AuthOAuth2
}

func (c Config) IsSQL() bool {
	switch c.Database {
	case DatabaseSQLite, DatabasePostgreSQL, DatabaseMySQL:
		return true
	}
	return false
}

// Resource is the primary domain object of the generated service.
func (c Config) Resource() string {
	switch c.Type {
	case TypeMLAPI:
		return "prediction"
	case TypeMicroservice:
		return "processing"
	default:
		return "item"
	}
}

func (c Config) SnakeName() string  { return Snake(c.Name) }
func (c Config) PascalName() string { return Pascal(c.Name) }
func (c Config) KebabName() string  { return Kebab(c.Name) }

// Snake lowercases s and joins words with underscores.
func Snake(s string) string {
	return strings.Join(words(strings.ToLower(s)), "_")
}

// Kebab lowercases s and joins words with dashes.
func Kebab(s string) string {
	return strings.Join(words(strings.ToLower(s)), "-")
}

// Pascal capitalises every word of s and joins them.
func Pascal(s string) string {
	parts := words(s)
	for i, part := range parts {
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, "")
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
}
