package parser

import "github.com/toyz/routegen/internal/models"

// MetadataExtractor turns the annotated declarations of one file into route specs
type MetadataExtractor interface {
	Extract(path string) ([]models.RouteSpec, error)
}
