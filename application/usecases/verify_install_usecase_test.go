package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/interfaces"
	"statement-ocr/test/helpers"
)

// fakeProbe serves a canned backup engine status.
type fakeProbe struct {
	status entities.BackupEngineStatus
}

func (p *fakeProbe) Detect(context.Context) entities.BackupEngineStatus {
	return p.status
}

func (p *fakeProbe) Instructions() string {
	return "install it by hand"
}

func TestVerifyInstallUseCase_Execute(t *testing.T) {
	ctx := helpers.TestContext(t)
	params := interfaces.VerifyInstallParams{
		ModelsDir: "/tmp/statement-ocr-models",
		Profile:   entities.DefaultEngineProfile(),
	}

	artifacts := testArtifacts()

	t.Run("complete install", func(t *testing.T) {
		catalog := &fakeCatalog{statuses: []entities.ArtifactStatus{
			{Artifact: artifacts[0], Present: true, SizeBytes: 100},
			{Artifact: artifacts[1], Present: true, SizeBytes: 200},
			{Artifact: artifacts[2], Present: true, SizeBytes: 50},
		}}
		probe := &fakeProbe{status: entities.BackupEngineStatus{
			Name: "tesseract", Found: true, Path: "/usr/bin/tesseract", Version: "5.3.4",
		}}

		uc := NewVerifyInstallUseCase(catalog, probe, helpers.NewNopLogger())
		report, err := uc.Execute(ctx, params)
		require.NoError(t, err)

		assert.True(t, report.AllPresent)
		assert.True(t, report.BackupEngine.Found)
		assert.Len(t, report.Artifacts, 3)
		assert.Equal(t, params.ModelsDir, report.ModelsDir)
	})

	t.Run("missing model flips AllPresent", func(t *testing.T) {
		catalog := &fakeCatalog{statuses: []entities.ArtifactStatus{
			{Artifact: artifacts[0], Present: true},
			{Artifact: artifacts[1], Present: false},
		}}
		probe := &fakeProbe{status: entities.BackupEngineStatus{Name: "tesseract"}}

		uc := NewVerifyInstallUseCase(catalog, probe, helpers.NewNopLogger())
		report, err := uc.Execute(ctx, params)
		require.NoError(t, err)

		assert.False(t, report.AllPresent)
		assert.False(t, report.BackupEngine.Found)
	})
}
