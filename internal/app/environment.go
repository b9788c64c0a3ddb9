package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/soozu/stove-license/internal/domain"
)

func MustGetEnvAsString(ctx context.Context, name string) string {
	s, exists := os.LookupEnv(name)
	if !exists {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "environment variable missing", "variable_name", name)
		panic(fmt.Sprintf("missing environment variable [%s]", name))
	}

	return s
}

// MustGetEnvAsStrings splits a comma separated variable, trimming whitespace
// and dropping empty entries.
func MustGetEnvAsStrings(ctx context.Context, name string) []string {
	return splitList(MustGetEnvAsString(ctx, name))
}

func MustGetEnvAsInt(ctx context.Context, name string) int {
	s := MustGetEnvAsString(ctx, name)

	v, err := strconv.Atoi(s)
	if err != nil {
		panicUnparsable(ctx, name, s, "int")
	}

	return v
}

func MustGetEnvAsBoolean(ctx context.Context, name string) bool {
	return parseBoolean(ctx, name, MustGetEnvAsString(ctx, name))
}

func MustGetEnvAsDuration(ctx context.Context, name string) time.Duration {
	s := MustGetEnvAsString(ctx, name)

	duration, err := time.ParseDuration(s)
	if err != nil {
		panicUnparsable(ctx, name, s, "duration")
	}

	return duration
}

// GetEnvAsString returns the variable's value, or def when it is unset or empty.
func GetEnvAsString(name, def string) string {
	s, exists := os.LookupEnv(name)
	if !exists || s == "" {
		return def
	}
	return s
}

func GetEnvAsStrings(name, def string) []string {
	return splitList(GetEnvAsString(name, def))
}

func GetEnvAsInt(ctx context.Context, name string, def int) int {
	s := GetEnvAsString(name, "")
	if s == "" {
		return def
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		panicUnparsable(ctx, name, s, "int")
	}
	return v
}

func GetEnvAsFloat(ctx context.Context, name string, def float64) float64 {
	s := GetEnvAsString(name, "")
	if s == "" {
		return def
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panicUnparsable(ctx, name, s, "float")
	}
	return v
}

func GetEnvAsBoolean(ctx context.Context, name string, def bool) bool {
	s := GetEnvAsString(name, "")
	if s == "" {
		return def
	}
	return parseBoolean(ctx, name, s)
}

func parseBoolean(ctx context.Context, name, s string) bool {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	default:
		panicUnparsable(ctx, name, s, "boolean ('true'/'false')")
		return false
	}
}

func panicUnparsable(ctx context.Context, name, value, kind string) {
	logger := domain.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "unable to parse environment variable as "+kind,
		"variable_name", name,
		"variable_value", value,
	)
	panic(fmt.Sprintf("unable to parse environment variable as %s [%s]: %s", kind, name, value))
}

func splitList(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
