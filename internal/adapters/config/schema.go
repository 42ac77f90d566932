package config

// Prefabfile represents the structure of the prefab.yaml manifest.
type Prefabfile struct {
	Version string               `yaml:"version"`
	Targets map[string]TargetDTO `yaml:"targets"`
}

// TargetDTO represents a target definition in the manifest.
type TargetDTO struct {
	Artifact string     `yaml:"artifact"`
	CacheKey string     `yaml:"cacheKey"`
	Source   SourceDTO  `yaml:"source"`
	Build    BuildDTO   `yaml:"build"`
	Patches  []PatchDTO `yaml:"patches"`
}

// SourceDTO pins the repository used for the build-from-source path.
type SourceDTO struct {
	URL      string `yaml:"url"`
	Checkout string `yaml:"checkout"`
	Revision string `yaml:"revision"`
}

// BuildDTO describes the build command and its expected output.
type BuildDTO struct {
	Cmd         []string          `yaml:"cmd"`
	Output      string            `yaml:"output"`
	Environment map[string]string `yaml:"environment"`
}

// PatchDTO is one line-oriented config replacement.
type PatchDTO struct {
	File  string `yaml:"file"`
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}
