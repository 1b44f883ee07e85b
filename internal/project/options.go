package project

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidOption = errors.New("invalid option")

// Option describes one value of an enumerated setting.
type Option struct {
	Value       string
	Name        string
	Description string
}

var Types = []Option{
	{Value: string(TypeAPI), Name: "Simple REST API", Description: "Basic CRUD operations with clean structure"},
	{Value: string(TypeCRUD), Name: "Full CRUD API", Description: "Complete database operations with advanced patterns"},
	{Value: string(TypeMLAPI), Name: "Machine Learning API", Description: "ML model serving with prediction endpoints"},
	{Value: string(TypeMicroservice), Name: "Microservice", Description: "Service-oriented architecture ready"},
}

var Databases = []Option{
	{Value: string(DatabaseSQLite), Name: "SQLite", Description: "Lightweight file-based database"},
	{Value: string(DatabasePostgreSQL), Name: "PostgreSQL", Description: "Advanced relational database"},
	{Value: string(DatabaseMySQL), Name: "MySQL", Description: "Popular relational database"},
	{Value: string(DatabaseMongoDB), Name: "MongoDB", Description: "Document-based NoSQL database"},
	{Value: string(DatabaseRedis), Name: "Redis", Description: "In-memory key-value store"},
}

var AuthMethods = []Option{
	{Value: string(AuthJWT), Name: "JWT (JSON Web Tokens)", Description: "Stateless token-based authentication"},
	{Value: string(AuthOAuth2), Name: "OAuth2 with Scopes", Description: "Enterprise-grade authorization"},
	{Value: string(AuthAPIKey), Name: "API Key", Description: "Simple key-based authentication"},
	{Value: string(AuthNone), Name: "No Authentication", Description: "Open API (not recommended for production)"},
}

// FeatureNames lists every feature a manifest condition may require.
var FeatureNames = []string{
	FeatureDocker, FeatureTests, FeatureDocs, FeatureMonitoring,
	FeatureCelery, FeatureAdvanced, FeatureAsync, FeatureSync,
}

// Values returns the raw values of opts in declaration order.
func Values(opts []Option) []string {
	values := make([]string, len(opts))
	for i, opt := range opts {
		values[i] = opt.Value
	}
	return values
}

func ParseType(s string) (Type, error) {
	v, err := parse("project type", s, Types)
	return Type(v), err
}

func ParseDatabase(s string) (Database, error) {
	v, err := parse("database", s, Databases)
	return Database(v), err
}

func ParseAuth(s string) (Auth, error) {
	v, err := parse("auth", s, AuthMethods)
	return Auth(v), err
}

func parse(kind, s string, opts []Option) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, opt := range opts {
		if opt.Value == v {
			return v, nil
		}
	}
	return "", unknown(kind, s, opts)
}

func unknown(kind, s string, opts []Option) error {
	return fmt.Errorf("%w: unknown %s %q (choose from %s)", ErrInvalidOption, kind, s, strings.Join(Values(opts), ", "))
}

func contains(opts []Option, v string) bool {
	for _, opt := range opts {
		if opt.Value == v {
			return true
		}
	}
	return false
}
