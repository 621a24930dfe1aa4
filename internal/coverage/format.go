package coverage

import "fmt"

// Format names a raw report encoding.
type Format string

const (
	FormatSimpleCov Format = "simplecov"
	FormatGoCover   Format = "gocover"
)

// ParseFormat validates a format name. The empty string selects simplecov.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatSimpleCov:
		return FormatSimpleCov, nil
	case FormatGoCover:
		return FormatGoCover, nil
	default:
		return "", fmt.Errorf("unsupported input format: %s", name)
	}
}

// ParseAs decodes raw in the given format.
func ParseAs(format Format, raw, identifier string) (*Metrics, error) {
	switch format {
	case "", FormatSimpleCov:
		return Parse(raw, identifier)
	case FormatGoCover:
		return ParseProfile(raw, identifier)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}
