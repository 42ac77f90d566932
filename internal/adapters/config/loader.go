// Package config provides the manifest loader for prefab.
package config

import (
	"os"

	"go.trai.ch/prefab/internal/adapters/fs"
	"go.trai.ch/prefab/internal/core/domain"
	"go.trai.ch/prefab/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML manifest file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the manifest at the given path and returns the validated
// target set. A target that omits cacheKey gets one derived from its
// source pin and patch list, so recipe changes never restore a stale
// cache entry.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by the user
	if err != nil {
		return nil, zerr.With(domain.ErrConfigReadFailed, "path", path)
	}

	var file Prefabfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "path", path), "cause", err.Error())
	}

	manifest := domain.NewManifest()
	for name, dto := range file.Targets {
		spec := specFromDTO(name, dto)
		if spec.Target.CacheKey == "" {
			spec.Target.CacheKey = fs.Fingerprint(spec.Source, spec.Patches)
			l.logger.Info("derived cache key " + spec.Target.CacheKey + " for target " + name)
		}
		if err := manifest.AddTarget(spec); err != nil {
			return nil, err
		}
	}

	return manifest, nil
}

func specFromDTO(name string, dto TargetDTO) *domain.TargetSpec {
	patches := make([]domain.ConfigPatch, len(dto.Patches))
	for i, p := range dto.Patches {
		patches[i] = domain.ConfigPatch{
			FilePattern: p.File,
			Key:         p.Key,
			NewValue:    p.Value,
		}
	}

	return &domain.TargetSpec{
		Target: domain.BuildTarget{
			Name:         name,
			ArtifactPath: dto.Artifact,
			CacheKey:     dto.CacheKey,
		},
		Source: domain.SourceRef{
			RepositoryURL: dto.Source.URL,
			CheckoutPath:  dto.Source.Checkout,
			Revision:      dto.Source.Revision,
		},
		Patches:      patches,
		BuildCommand: dto.Build.Cmd,
		BuildOutput:  dto.Build.Output,
		Environment:  dto.Build.Environment,
	}
}
