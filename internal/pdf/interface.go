package pdf

import (
	"github.com/kpauljoseph/lumen/pkg/models"
)

type DocumentAssembler interface {
	Assemble(pagePaths []string, tier models.Tier) (*Document, error)
}
