// Package modelstore manages the local cache of the primary OCR engine's
// model artifacts: a fixed catalog of upstream archives and an HTTP
// downloader that mirrors them to disk.
package modelstore

import (
	"os"
	"path/filepath"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/interfaces"
)

// Upstream model archives, as published by the engine project. The Spanish
// profile uses the multilingual detector and the Latin recognizer.
var (
	detectionModel = entities.ModelArtifact{
		Name:      "multilingual-detection",
		Kind:      entities.ModelKindDetection,
		FileName:  "Multilingual_PP-OCRv3_det_infer.tar",
		URL:       "https://paddleocr.bj.bcebos.com/PP-OCRv3/multilingual/Multilingual_PP-OCRv3_det_infer.tar",
		SizeLabel: "3.8 MB",
	}

	latinRecognitionModel = entities.ModelArtifact{
		Name:      "latin-recognition",
		Kind:      entities.ModelKindRecognition,
		FileName:  "latin_PP-OCRv3_rec_infer.tar",
		URL:       "https://paddleocr.bj.bcebos.com/PP-OCRv3/multilingual/latin_PP-OCRv3_rec_infer.tar",
		SizeLabel: "9.7 MB",
	}

	angleClassifierModel = entities.ModelArtifact{
		Name:      "angle-classifier",
		Kind:      entities.ModelKindClassification,
		FileName:  "ch_ppocr_mobile_v2.0_cls_infer.tar",
		URL:       "https://paddleocr.bj.bcebos.com/dygraph_v2.0/ch/ch_ppocr_mobile_v2.0_cls_infer.tar",
		SizeLabel: "1.4 MB",
	}
)

// registry implements the ModelCatalog interface.
type registry struct{}

// NewRegistry creates the fixed artifact catalog.
func NewRegistry() interfaces.ModelCatalog {
	return &registry{}
}

// ArtifactsFor returns the artifacts the profile needs, in download order.
// Only Latin-script languages are served; anything else falls back to the
// same detector/recognizer pair the production pipeline uses for "es".
func (r *registry) ArtifactsFor(profile entities.EngineProfile) []entities.ModelArtifact {
	artifacts := []entities.ModelArtifact{detectionModel, latinRecognitionModel}
	if profile.AngleClassification {
		artifacts = append(artifacts, angleClassifierModel)
	}
	return artifacts
}

// Status inspects the local cache for every artifact of the profile.
func (r *registry) Status(profile entities.EngineProfile, modelsDir string) []entities.ArtifactStatus {
	artifacts := r.ArtifactsFor(profile)
	statuses := make([]entities.ArtifactStatus, 0, len(artifacts))

	for _, artifact := range artifacts {
		status := entities.ArtifactStatus{Artifact: artifact}
		path := filepath.Join(modelsDir, string(artifact.Kind), artifact.FileName)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			status.Present = true
			status.SizeBytes = info.Size()
			status.LocalPath = path
		}
		statuses = append(statuses, status)
	}

	return statuses
}
