package cli

import (
	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/utils"
)

// ResolveModule returns the module generated imports are rooted at. A custom
// module path is taken to be rooted at root; otherwise the nearest go.mod at
// or above root is used.
func ResolveModule(customModule, root string) (utils.GoModule, error) {
	if customModule != "" {
		return utils.GoModule{Path: customModule, Dir: root}, nil
	}

	module, err := utils.FindGoModule(root)
	if err != nil {
		return utils.GoModule{}, errors.NewConfigurationError("module", customModule, err.Error()).
			WithSuggestions("Check your go.mod file exists and is valid", "Try specifying --module flag explicitly")
	}
	return module, nil
}
