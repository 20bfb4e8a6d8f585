// Package catalog turns raw delimited-text library exports into normalized
// catalog items and filters them.
//
// The source files are semicolon- or comma-delimited tables with a banner
// line or two before the header row, inconsistent header accenting between
// exports, and occasional quoting around cells that embed the delimiter. The
// parser is total over that input alphabet: malformed rows are dropped, never
// reported.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/campushub/campus-server/internal/domain"
)

// UnknownAuthor is the default when a row has no author cell.
const UnknownAuthor = "unknown author"

// ParseOptions configures one parsing session.
type ParseOptions struct {
	// SkipLines is the fixed number of banner lines before the header row.
	// This is a property of the source format, never inferred.
	SkipLines int
	// Delimiter separates fields. Zero means detect from the header row.
	Delimiter rune
}

// Header aliases per logical field. Exports disagree on accenting, so each
// alias is tried in order and the first column with a non-empty cell wins.
// Aliases are matched diacritic- and case-insensitively.
var (
	titleAliases   = []string{"título", "titulo", "title"}
	authorAliases  = []string{"autor/a", "autora", "autor", "author"}
	subjectAliases = []string{"materias", "temas", "subjects"}
	summaryAliases = []string{"resumen", "descripción", "descripcion", "summary"}
	statusAliases  = []string{"estado", "disponibilidad", "status"}
)

// Parse converts raw delimited text into catalog items for one subject area.
//
// It never fails: empty and malformed lines are skipped, missing optional
// fields resolve to defaults. Item IDs are (area, ordinal) and are only
// unique within this load cycle.
func Parse(raw, area string, opts ParseOptions) []domain.CatalogItem {
	lines := splitLines(raw)
	if opts.SkipLines >= len(lines) {
		return nil
	}
	lines = lines[opts.SkipLines:]

	headerLine := lines[0]
	delim := opts.Delimiter
	if delim == 0 {
		delim = detectDelimiter(headerLine)
	}

	columns := buildColumnMap(splitFields(headerLine, delim))

	items := make([]domain.CatalogItem, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, delim)

		title := firstNonEmpty(fields, columns, titleAliases)
		if title == "" {
			// No title means the row carries no usable record.
			continue
		}

		author := firstNonEmpty(fields, columns, authorAliases)
		if author == "" {
			author = UnknownAuthor
		}

		item := domain.CatalogItem{
			ID:       domain.CatalogItemID(area, len(items)),
			Title:    title,
			Author:   author,
			Area:     area,
			Subjects: splitSubjects(firstNonEmpty(fields, columns, subjectAliases)),
			Summary:  firstNonEmpty(fields, columns, summaryAliases),
			Status:   parseStatus(firstNonEmpty(fields, columns, statusAliases)),
		}
		items = append(items, item)
	}

	return items
}

// splitFields splits one line on the delimiter, tracking double-quote state
// character by character so quoted cells may embed the delimiter. One layer
// of surrounding quotes is stripped from each field afterwards.
func splitFields(line string, delim rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == delim && !inQuotes:
			fields = append(fields, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(cur.String()))

	return fields
}

// cleanField trims whitespace and strips a single surrounding quote layer.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}

// detectDelimiter picks semicolon or comma by counting unquoted occurrences
// in the header row. Semicolon wins ties because the exports favor it.
func detectDelimiter(header string) rune {
	semis, commas := 0, 0
	inQuotes := false
	for _, r := range header {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ';':
			if !inQuotes {
				semis++
			}
		case ',':
			if !inQuotes {
				commas++
			}
		}
	}
	if commas > semis {
		return ','
	}
	return ';'
}

// buildColumnMap maps each folded header name to its column index.
// The first occurrence of a duplicated header wins.
func buildColumnMap(headers []string) map[string]int {
	columns := make(map[string]int, len(headers))
	for i, h := range headers {
		key := Fold(h)
		if key == "" {
			continue
		}
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}
	return columns
}

// firstNonEmpty tries each alias in order and returns the first non-empty
// cell found for it.
func firstNonEmpty(fields []string, columns map[string]int, aliases []string) string {
	for _, alias := range aliases {
		idx, ok := columns[Fold(alias)]
		if !ok || idx >= len(fields) {
			continue
		}
		if v := strings.TrimSpace(fields[idx]); v != "" {
			return v
		}
	}
	return ""
}

// splitSubjects splits a comma-delimited multi-value cell, trimming
// whitespace and dropping empty tokens.
func splitSubjects(cell string) []string {
	if cell == "" {
		return []string{}
	}
	parts := strings.Split(cell, ",")
	subjects := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			subjects = append(subjects, p)
		}
	}
	return subjects
}

// parseStatus maps a status cell to the import-time availability enum.
// Anything that doesn't read as loaned counts as available.
func parseStatus(cell string) domain.ItemStatus {
	folded := Fold(cell)
	if strings.HasPrefix(folded, "prest") || strings.HasPrefix(folded, "loan") || folded == "no disponible" {
		return domain.StatusLoaned
	}
	return domain.StatusAvailable
}

// foldTransformer strips combining marks after NFD decomposition, turning
// "Título" into "Titulo".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and removes diacritics for alias and status comparison.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// splitLines splits on line breaks, tolerating CRLF sources.
func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}
