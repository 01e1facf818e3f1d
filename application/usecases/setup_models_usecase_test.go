package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/errors"
	"statement-ocr/domain/interfaces"
	"statement-ocr/test/helpers"
)

// fakeFetcher records fetch calls and serves canned outcomes per artifact.
type fakeFetcher struct {
	cached map[string]bool
	fail   map[string]error
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, artifact entities.ModelArtifact, destDir string) (string, bool, error) {
	f.calls = append(f.calls, artifact.Name)
	if err := f.fail[artifact.Name]; err != nil {
		return "", false, err
	}
	return destDir + "/" + artifact.FileName, f.cached[artifact.Name], nil
}

// fakeCatalog serves a fixed artifact list.
type fakeCatalog struct {
	artifacts []entities.ModelArtifact
	statuses  []entities.ArtifactStatus
}

func (c *fakeCatalog) ArtifactsFor(entities.EngineProfile) []entities.ModelArtifact {
	return c.artifacts
}

func (c *fakeCatalog) Status(entities.EngineProfile, string) []entities.ArtifactStatus {
	return c.statuses
}

func setupParams() interfaces.SetupModelsParams {
	return interfaces.SetupModelsParams{
		ModelsDir: "/tmp/statement-ocr-models",
		Profile:   entities.DefaultEngineProfile(),
	}
}

func testArtifacts() []entities.ModelArtifact {
	return []entities.ModelArtifact{
		{Name: "det", Kind: entities.ModelKindDetection, FileName: "det.tar"},
		{Name: "rec", Kind: entities.ModelKindRecognition, FileName: "rec.tar"},
		{Name: "cls", Kind: entities.ModelKindClassification, FileName: "cls.tar"},
	}
}

func TestSetupModelsUseCase_Execute(t *testing.T) {
	ctx := helpers.TestContext(t)
	params := setupParams()

	t.Run("downloads everything on a cold cache", func(t *testing.T) {
		fetcher := &fakeFetcher{cached: map[string]bool{}, fail: map[string]error{}}
		uc := NewSetupModelsUseCase(&fakeCatalog{artifacts: testArtifacts()}, fetcher, helpers.NewNopLogger())

		result, err := uc.Execute(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, []string{"det", "rec", "cls"}, result.Downloaded)
		assert.Empty(t, result.CacheHits)
		assert.Equal(t, []string{"det", "rec", "cls"}, fetcher.calls)
	})

	t.Run("second run is all cache hits", func(t *testing.T) {
		fetcher := &fakeFetcher{
			cached: map[string]bool{"det": true, "rec": true, "cls": true},
			fail:   map[string]error{},
		}
		uc := NewSetupModelsUseCase(&fakeCatalog{artifacts: testArtifacts()}, fetcher, helpers.NewNopLogger())

		result, err := uc.Execute(ctx, params)
		require.NoError(t, err)

		assert.Empty(t, result.Downloaded)
		assert.Equal(t, []string{"det", "rec", "cls"}, result.CacheHits)
	})

	t.Run("first failure aborts the run", func(t *testing.T) {
		dlErr := &errors.DownloadError{Artifact: "rec", URL: "http://example", Err: errors.ErrDownload}
		fetcher := &fakeFetcher{
			cached: map[string]bool{},
			fail:   map[string]error{"rec": dlErr},
		}
		uc := NewSetupModelsUseCase(&fakeCatalog{artifacts: testArtifacts()}, fetcher, helpers.NewNopLogger())

		result, err := uc.Execute(ctx, params)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrDownload)
		assert.Nil(t, result)
		// No retry, and nothing after the failed artifact is attempted.
		assert.Equal(t, []string{"det", "rec"}, fetcher.calls)
	})
}

func TestSetupModelsUseCase_ProfileWithoutAngleClassifier(t *testing.T) {
	ctx := helpers.TestContext(t)

	catalog := &fakeCatalog{artifacts: testArtifacts()[:2]}
	fetcher := &fakeFetcher{cached: map[string]bool{}, fail: map[string]error{}}
	uc := NewSetupModelsUseCase(catalog, fetcher, helpers.NewNopLogger())

	result, err := uc.Execute(ctx, setupParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"det", "rec"}, result.Downloaded)
}
