package usecases

import (
	"context"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/interfaces"
)

// verifyInstallUseCase implements the VerifyInstallUseCase interface.
type verifyInstallUseCase struct {
	catalog interfaces.ModelCatalog
	probe   interfaces.BackupEngineProbe
	logger  interfaces.Logger
}

// NewVerifyInstallUseCase creates a new install inspection use case.
func NewVerifyInstallUseCase(
	catalog interfaces.ModelCatalog,
	probe interfaces.BackupEngineProbe,
	logger interfaces.Logger,
) interfaces.VerifyInstallUseCase {
	return &verifyInstallUseCase{
		catalog: catalog,
		probe:   probe,
		logger:  logger,
	}
}

// Execute inspects the model cache and the backup engine. It only reads; a
// missing model or engine is reported, never fixed.
func (uc *verifyInstallUseCase) Execute(
	ctx context.Context,
	params interfaces.VerifyInstallParams,
) (*entities.InstallReport, error) {
	statuses := uc.catalog.Status(params.Profile, params.ModelsDir)

	allPresent := true
	for _, status := range statuses {
		if !status.Present {
			allPresent = false
			uc.logger.Warn("Model artifact missing",
				"artifact", status.Artifact.Name,
				"expected", status.Artifact.FileName)
		}
	}

	backup := uc.probe.Detect(ctx)
	if !backup.Found {
		uc.logger.Warn("Backup OCR engine not found on PATH", "binary", backup.Name)
	}

	return &entities.InstallReport{
		ModelsDir:    params.ModelsDir,
		Profile:      params.Profile,
		Artifacts:    statuses,
		AllPresent:   allPresent,
		BackupEngine: backup,
	}, nil
}
