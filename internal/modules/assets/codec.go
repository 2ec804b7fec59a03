package assets

import (
	"strings"

	"github.com/aristath/investa/internal/domain"
)

// Delimiter separates the category, name and value fields of a record.
//
// The delimiter is not escaped. Categories may not contain it, but a name
// containing it produces a line with more than three fields, which the
// lenient loader drops on the next load.
const Delimiter = domain.FieldSeparator

// FormatLine serializes an asset as "category,name,value"
func FormatLine(a domain.Asset) string {
	return strings.Join([]string{a.Category, a.Name, domain.FormatAmount(a.Value)}, Delimiter)
}

// ParseLine decodes one record. ok is false when the line does not have
// exactly three fields, the value is not a positive finite number, or the
// trimmed name is empty.
func ParseLine(line string) (asset domain.Asset, ok bool) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != 3 {
		return domain.Asset{}, false
	}

	value, err := domain.ParseAmount("value", parts[2])
	if err != nil {
		return domain.Asset{}, false
	}

	asset = domain.Asset{
		Category: parts[0],
		Name:     strings.TrimSpace(parts[1]),
		Value:    value,
	}
	if asset.Validate() != nil {
		return domain.Asset{}, false
	}
	return asset, true
}

// decodeLines parses lines in order, skipping malformed records
func decodeLines(lines []string) (assets []domain.Asset, dropped int) {
	assets = make([]domain.Asset, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		asset, ok := ParseLine(line)
		if !ok {
			dropped++
			continue
		}
		assets = append(assets, asset)
	}
	return assets, dropped
}

func encodeLines(assets []domain.Asset) []string {
	lines := make([]string, len(assets))
	for i, a := range assets {
		lines[i] = FormatLine(a)
	}
	return lines
}
