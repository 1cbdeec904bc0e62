package converter

import (
	"fmt"

	"github.com/David-Botos/app-profiles/pkg/model"
)

// Parser converts a single field string to a float64
type Parser func(value string) (float64, error)

// ParserFor returns the parser matching how a popularity column is encoded
func ParserFor(kind model.PopularityKind) (Parser, error) {
	switch kind {
	case model.PopularityPlain, "":
		return ParseFloat, nil
	case model.PopularityInstalls:
		return ParseInstalls, nil
	default:
		return nil, fmt.Errorf("unknown popularity kind: %s", kind)
	}
}
