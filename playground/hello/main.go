package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/a-peyrard/decorateall"
	"github.com/a-peyrard/decorateall/config"
	"github.com/a-peyrard/decorateall/metadata"
	"github.com/rs/zerolog"
)

// -------------------------------------- PLAYGROUND CODE --------------------------------------
// illustrates the API: the Hello classes of the README, decorated at startup,
// with the policy of the deep subclass read from HELLO_DEEP, HELLO_EXCLUDE and
// HELLO_EXCLUDE_PREFIX.

func NewGlobalLogLevel() (zerolog.Level, error) {
	levelFromEnv := os.Getenv("LOG_LEVEL")
	if levelFromEnv == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelFromEnv))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %s: %w", levelFromEnv, err)
	}
	return level, nil
}

func NewLogger(level zerolog.Level) *zerolog.Logger {
	var writer io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	mainLogger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &mainLogger
}

func concat(this *decorateall.Instance, args ...any) (any, error) {
	return this.GetString("message") + fmt.Sprint(args...), nil
}

func appendString(mark string) decorateall.Transform {
	return func(next decorateall.Method, _ decorateall.MethodContext) decorateall.Method {
		return func(this *decorateall.Instance, args ...any) (any, error) {
			return next(this, fmt.Sprint(args...)+mark)
		}
	}
}

func newHello() *decorateall.Class {
	hello := decorateall.NewClass("Hello", decorateall.Constructor(
		func(this *decorateall.Instance, args ...any) (any, error) {
			this.Set("message", fmt.Sprint(args...))
			return nil, nil
		},
	))
	a := hello.Define("a", concat)
	metadata.Define("name", "Hello.a", a, "")
	hello.Define("b", concat)
	hello.Define("c", concat)
	hello.Define("_secret", concat)
	return hello
}

func main() {
	level, err := NewGlobalLogLevel()
	if err != nil {
		fmt.Printf("Error reading log level: %v\n", err)
		return
	}
	logger := NewLogger(level)

	policy, err := config.LoadPolicy("HELLO")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load policy")
		return
	}

	hello := newHello()
	decorated := decorateall.NewClass("DecoratedHello", decorateall.Extends(hello))
	decorated.Define("c", concat)

	err = decorateall.DecorateAll(
		decorated,
		decorateall.Decorate(appendString("!")),
		decorateall.FromPolicy(policy),
		decorateall.WithLogger(logger),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to decorate")
		return
	}

	instance := decorated.MustNew("test")
	for _, name := range []string{"a", "b", "c", "_secret"} {
		logger.Info().Msgf("%s(%q) = %v", name, name, instance.MustCall(name, name))
	}
	if tag, found := instance.Metadata("name", "a"); found {
		logger.Info().Msgf("tag name of a = %v", tag)
	}
}
