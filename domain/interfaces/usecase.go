package interfaces

import (
	"context"

	"statement-ocr/domain/entities"
)

// SetupModelsUseCase prefetches the primary OCR engine's model artifacts.
type SetupModelsUseCase interface {
	// Execute downloads every artifact the profile needs, skipping ones
	// already cached.
	Execute(ctx context.Context, params SetupModelsParams) (*entities.PrefetchResult, error)
}

// SetupModelsParams represents parameters for the model prefetch.
type SetupModelsParams struct {
	ModelsDir string
	Profile   entities.EngineProfile
}

// VerifyInstallUseCase reports the state of the installation without
// modifying it.
type VerifyInstallUseCase interface {
	// Execute inspects the model cache and the backup engine.
	Execute(ctx context.Context, params VerifyInstallParams) (*entities.InstallReport, error)
}

// VerifyInstallParams represents parameters for the install inspection.
type VerifyInstallParams struct {
	ModelsDir string
	Profile   entities.EngineProfile
}

// ParseStatementUseCase turns extracted statement text into structured data.
type ParseStatementUseCase interface {
	// Execute detects the bank, runs its parser, validates the balance,
	// and optionally writes the three result files.
	Execute(ctx context.Context, params ParseStatementParams) (*entities.ExtractionResult, error)
}

// ParseStatementParams represents parameters for one parse run.
type ParseStatementParams struct {
	// InputPath points at a plain-text statement dump; pages are
	// separated by form feed characters.
	InputPath string

	// OutputDir receives the DATOS/INGRESOS/EGRESOS JSON files when
	// WriteFiles is set.
	OutputDir  string
	WriteFiles bool
}
