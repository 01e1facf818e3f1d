package entities

// EngineProfile is the fixed configuration the primary OCR engine is
// initialized with. The defaults mirror the production pipeline: Spanish
// recognition, angle classification on, CPU only.
type EngineProfile struct {
	Language            string `json:"language" yaml:"language"`
	AngleClassification bool   `json:"angle_classification" yaml:"angle_classification"`
	UseGPU              bool   `json:"use_gpu" yaml:"use_gpu"`
}

// DefaultEngineProfile returns the pipeline's production profile.
func DefaultEngineProfile() EngineProfile {
	return EngineProfile{
		Language:            "es",
		AngleClassification: true,
		UseGPU:              false,
	}
}

// ModelKind distinguishes the roles of the engine's model artifacts.
type ModelKind string

// Model artifact kinds.
const (
	ModelKindDetection      ModelKind = "detection"
	ModelKindRecognition    ModelKind = "recognition"
	ModelKindClassification ModelKind = "classification"
)

// ModelArtifact describes one downloadable model archive. The URL and file
// name are owned by the upstream engine project; this tool only mirrors them
// into the local cache.
type ModelArtifact struct {
	Name      string    `json:"name" yaml:"name"`
	Kind      ModelKind `json:"kind" yaml:"kind"`
	FileName  string    `json:"file_name" yaml:"file_name"`
	URL       string    `json:"url" yaml:"url"`
	SizeLabel string    `json:"size_label,omitempty" yaml:"size_label,omitempty"`
}

// ArtifactStatus reports the cache state of a single model artifact.
type ArtifactStatus struct {
	Artifact  ModelArtifact `json:"artifact" yaml:"artifact"`
	Present   bool          `json:"present" yaml:"present"`
	SizeBytes int64         `json:"size_bytes" yaml:"size_bytes"`
	LocalPath string        `json:"local_path,omitempty" yaml:"local_path,omitempty"`
}

// BackupEngineStatus reports whether the backup OCR engine binary is
// installed and reachable on PATH.
type BackupEngineStatus struct {
	Name    string `json:"name" yaml:"name"`
	Found   bool   `json:"found" yaml:"found"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// InstallReport is the verify command's view of the whole installation.
type InstallReport struct {
	ModelsDir    string             `json:"models_dir" yaml:"models_dir"`
	Profile      EngineProfile      `json:"profile" yaml:"profile"`
	Artifacts    []ArtifactStatus   `json:"artifacts" yaml:"artifacts"`
	AllPresent   bool               `json:"all_present" yaml:"all_present"`
	BackupEngine BackupEngineStatus `json:"backup_engine" yaml:"backup_engine"`
}

// PrefetchResult summarizes one setup run.
type PrefetchResult struct {
	Downloaded []string `json:"downloaded" yaml:"downloaded"`
	CacheHits  []string `json:"cache_hits" yaml:"cache_hits"`
}
