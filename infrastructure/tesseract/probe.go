// Package tesseract inspects the backup OCR engine installation. The engine
// itself is never invoked for recognition; this tool only documents how to
// install it and reports whether its binary is reachable.
package tesseract

import (
	"context"
	"os/exec"
	"strings"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/interfaces"
)

// BinaryName is the executable expected on PATH.
const BinaryName = "tesseract"

// installInstructions are the manual, per-OS steps operators run by hand.
// They are printed verbatim during setup and never executed.
const installInstructions = `The backup OCR engine (Tesseract) must be installed manually:

  macOS:          brew install tesseract tesseract-lang
  Debian/Ubuntu:  sudo apt-get install tesseract-ocr tesseract-ocr-spa
  Fedora/RHEL:    sudo dnf install tesseract tesseract-langpack-spa
  Windows:        download the installer from
                  https://github.com/UB-Mannheim/tesseract/wiki
                  and add the install directory to PATH

The Spanish trained data (spa) is required for statement processing.`

// probe implements the BackupEngineProbe interface.
type probe struct {
	logger interfaces.Logger
}

// NewProbe creates a backup engine probe.
func NewProbe(logger interfaces.Logger) interfaces.BackupEngineProbe {
	return &probe{logger: logger}
}

// Instructions returns the manual install steps.
func (p *probe) Instructions() string {
	return installInstructions
}

// Detect looks the binary up on PATH and asks it for its version. A missing
// binary is not an error here; the status carries the result either way.
func (p *probe) Detect(ctx context.Context) entities.BackupEngineStatus {
	status := entities.BackupEngineStatus{Name: BinaryName}

	path, err := exec.LookPath(BinaryName)
	if err != nil {
		p.logger.Debug("Backup engine not found on PATH", "binary", BinaryName)
		return status
	}
	status.Found = true
	status.Path = path

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		p.logger.Warn("Backup engine found but version query failed", "error", err)
		return status
	}
	status.Version = parseVersion(string(out))

	return status
}

// parseVersion extracts the version token from "tesseract --version" output,
// whose first line looks like "tesseract 5.3.4".
func parseVersion(out string) string {
	lines := strings.SplitN(out, "\n", 2)
	fields := strings.Fields(strings.TrimSpace(lines[0]))
	if len(fields) >= 2 && fields[0] == BinaryName {
		return strings.TrimPrefix(fields[1], "v")
	}
	return strings.TrimSpace(lines[0])
}
