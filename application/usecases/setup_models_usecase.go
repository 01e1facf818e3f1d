// Package usecases implements the application use cases behind the CLI
// commands.
package usecases

import (
	"context"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/interfaces"
)

// setupModelsUseCase implements the SetupModelsUseCase interface.
type setupModelsUseCase struct {
	catalog interfaces.ModelCatalog
	fetcher interfaces.ArtifactFetcher
	logger  interfaces.Logger
}

// NewSetupModelsUseCase creates a new model prefetch use case.
func NewSetupModelsUseCase(
	catalog interfaces.ModelCatalog,
	fetcher interfaces.ArtifactFetcher,
	logger interfaces.Logger,
) interfaces.SetupModelsUseCase {
	return &setupModelsUseCase{
		catalog: catalog,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Execute downloads every artifact the profile needs, skipping ones already
// cached. The first failed artifact aborts the run; there is no retry.
func (uc *setupModelsUseCase) Execute(
	ctx context.Context,
	params interfaces.SetupModelsParams,
) (*entities.PrefetchResult, error) {
	artifacts := uc.catalog.ArtifactsFor(params.Profile)

	uc.logger.Info("Prefetching engine models",
		"models_dir", params.ModelsDir,
		"language", params.Profile.Language,
		"artifacts", len(artifacts))

	result := &entities.PrefetchResult{
		Downloaded: []string{},
		CacheHits:  []string{},
	}

	for _, artifact := range artifacts {
		path, cacheHit, err := uc.fetcher.Fetch(ctx, artifact, params.ModelsDir)
		if err != nil {
			uc.logger.Error("Model prefetch failed",
				"artifact", artifact.Name,
				"url", artifact.URL,
				"error", err)
			return nil, err
		}

		if cacheHit {
			result.CacheHits = append(result.CacheHits, artifact.Name)
		} else {
			result.Downloaded = append(result.Downloaded, artifact.Name)
		}
		uc.logger.Debug("Artifact ready", "artifact", artifact.Name, "path", path)
	}

	return result, nil
}
