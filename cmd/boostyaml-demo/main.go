// Command boostyaml-demo illustrates library use: loading a user YAML
// document and a defaults YAML document, migrating the user document
// against a fixed settings configuration, and writing the result back out.
// It is a usage demonstration, not a CLI product.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/oriys/boostyaml/internal/merge"
	"github.com/oriys/boostyaml/internal/relocate"
	"github.com/oriys/boostyaml/internal/route"
	"github.com/oriys/boostyaml/internal/transform"
	"github.com/oriys/boostyaml/internal/update"
	"github.com/oriys/boostyaml/internal/version"
	"github.com/oriys/boostyaml/internal/versioning"
	"github.com/oriys/boostyaml/internal/yamldoc"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	userPath := os.Getenv("BOOSTYAML_USER")
	if userPath == "" {
		userPath = "user.yaml"
	}
	defaultsPath := os.Getenv("BOOSTYAML_DEFAULTS")
	if defaultsPath == "" {
		defaultsPath = "defaults.yaml"
	}

	userData, err := os.ReadFile(userPath)
	if err != nil {
		slog.Error("failed to read user document", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defaultsData, err := os.ReadFile(defaultsPath)
	if err != nil {
		slog.Error("failed to read defaults document", slog.String("error", err.Error()))
		os.Exit(1)
	}

	user, err := yamldoc.Decode(userData)
	if err != nil {
		slog.Error("failed to parse user document", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defaults, err := yamldoc.Decode(defaultsData)
	if err != nil {
		slog.Error("failed to parse defaults document", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pattern, err := demoPattern()
	if err != nil {
		slog.Error("failed to build version pattern", slog.String("error", err.Error()))
		os.Exit(1)
	}

	settings := update.Settings{
		Versioning: versioning.Automatic{Pattern: pattern, Route: route.MustNew("version")},
		Relocations: relocate.Table{
			"1.1": {{From: route.MustNew("legacy_timeout"), To: route.MustNew("server", "timeout")}},
		},
		Mappers: transform.MapperTable{
			"1.2": {{Route: route.MustNew("server", "timeout"), Mapper: transform.Mapper{Value: func(old any) any {
				if s, ok := old.(string); ok {
					return strings.TrimSuffix(s, "s")
				}
				return old
			}}}},
		},
		MergeRules: merge.Rules{MappingAtMapping: true, MappingAtSection: true, SectionAtMapping: true},
		SortPolicy: merge.SortDefaultsOrder,
	}

	updater := update.New(settings)
	applied, err := updater.Update(user, defaults)
	if err != nil {
		slog.Error("update failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("update complete", slog.Bool("applied", applied))

	out, err := yamldoc.Encode(user)
	if err != nil {
		slog.Error("failed to encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

func demoPattern() (*version.Pattern, error) {
	major, err := version.NewRange(0, 100, 1, 0)
	if err != nil {
		return nil, err
	}
	dot, err := version.NewLiteral(".")
	if err != nil {
		return nil, err
	}
	minor, err := version.NewRange(0, 100, 1, 0)
	if err != nil {
		return nil, err
	}
	return version.NewPattern(major, dot, minor)
}
