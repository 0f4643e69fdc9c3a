package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/networth-projector/internal/domain"
)

// GenerateReport writes the projection in the requested format to dir and
// returns the written paths. "all" writes every registered formatter.
func GenerateReport(p *domain.Projection, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, f := range builtInFormatters {
			path, err := WriteFormatted(f, p, dir, ExtensionFor(f.Name()))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, p, dir, ExtensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
