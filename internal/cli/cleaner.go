package cli

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/templates"
	"github.com/toyz/routegen/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a new cleaner
func NewCleaner(diagnostics *utils.DiagnosticSystem) *Cleaner {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Cleaner{diagnostics: diagnostics}
}

// CleanGeneratedFiles removes every router under the routes root that starts with the
// generated-code marker. Hand-written files are left alone. A missing routes root is not an error.
func (c *Cleaner) CleanGeneratedFiles(cfg *Config) ([]string, error) {
	root := cfg.RoutesRoot()
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var removed []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSourceFile(d.Name()) {
			return nil
		}

		generated, err := utils.HasPrefixLine(path, templates.GeneratedMarker)
		if err != nil {
			return err
		}
		if !generated {
			c.diagnostics.Debug("Keeping %s: not generated", path)
			return nil
		}

		if err := os.Remove(path); err != nil {
			return err
		}
		removed = append(removed, path)
		c.diagnostics.PhaseItem("Removed %s", path)
		return nil
	})
	if err != nil {
		return removed, errors.WrapFileSystemError("clean", root, err)
	}
	return removed, nil
}
