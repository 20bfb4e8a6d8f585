package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-server/internal/domain"
)

func TestParseBasicRow(t *testing.T) {
	raw := "Catálogo biblioteca\n" +
		"Título;Autor/a;Materias;Resumen;Estado\n" +
		"Intro to Stats;J. Doe;Math, Stats;;Disponible\n"

	items := Parse(raw, "Salud", ParseOptions{SkipLines: 1})

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Salud-0", item.ID)
	assert.Equal(t, "Intro to Stats", item.Title)
	assert.Equal(t, "J. Doe", item.Author)
	assert.Equal(t, "Salud", item.Area)
	assert.Equal(t, []string{"Math", "Stats"}, item.Subjects)
	assert.Empty(t, item.Summary)
	assert.Equal(t, domain.StatusAvailable, item.Status)
}

func TestParseHeaderAliases(t *testing.T) {
	// Unaccented export headers must resolve to the same logical fields.
	raw := "Titulo,Autor,Materias,Resumen\n" +
		"A Book,Someone,History,Long summary\n"

	items := Parse(raw, "Humanidades", ParseOptions{})

	require.Len(t, items, 1)
	assert.Equal(t, "A Book", items[0].Title)
	assert.Equal(t, "Someone", items[0].Author)
	assert.Equal(t, []string{"History"}, items[0].Subjects)
	assert.Equal(t, "Long summary", items[0].Summary)
}

func TestParseQuotedFieldRoundTrip(t *testing.T) {
	// A quoted cell containing the delimiter parses back to exactly the
	// original substring.
	raw := "Título;Autor/a;Materias\n" +
		`"Stats; an introduction";"Pérez, Luis";Math` + "\n"

	items := Parse(raw, "Salud", ParseOptions{Delimiter: ';'})

	require.Len(t, items, 1)
	assert.Equal(t, "Stats; an introduction", items[0].Title)
	assert.Equal(t, "Pérez, Luis", items[0].Author)
}

func TestParseDefaults(t *testing.T) {
	raw := "Título;Autor/a;Materias;Resumen\n" +
		"Orphan Work;;;\n"

	items := Parse(raw, "Salud", ParseOptions{})

	require.Len(t, items, 1)
	assert.Equal(t, UnknownAuthor, items[0].Author)
	assert.Equal(t, []string{}, items[0].Subjects)
	assert.Empty(t, items[0].Summary)
	assert.Equal(t, domain.StatusAvailable, items[0].Status)
}

func TestParseSkipsMalformedRows(t *testing.T) {
	raw := "Título;Autor/a\n" +
		"Good Book;A. Author\n" +
		"\n" +
		";\n" +
		";;;;;\n" +
		"Another Book;B. Author\n"

	items := Parse(raw, "Salud", ParseOptions{})

	require.Len(t, items, 2)
	assert.Equal(t, "Good Book", items[0].Title)
	assert.Equal(t, "Another Book", items[1].Title)
	// IDs follow the parsed ordinal within this load cycle.
	assert.Equal(t, "Salud-0", items[0].ID)
	assert.Equal(t, "Salud-1", items[1].ID)
}

func TestParseTotality(t *testing.T) {
	// The parser never fails: arbitrary garbage yields a (possibly empty)
	// slice, never a panic.
	inputs := []string{
		"",
		"\n\n\n",
		`"""`,
		"no header delimiters at all",
		"Título;Autor/a\n\"unterminated;quote\n",
		strings.Repeat(";", 100),
		"Título;Autor/a\n" + strings.Repeat("x", 10000) + "\n",
		"\r\n\r\nTítulo;Autor/a\r\nCRLF Book;C. Author\r\n",
	}

	for _, raw := range inputs {
		var items []domain.CatalogItem
		assert.NotPanics(t, func() {
			items = Parse(raw, "Salud", ParseOptions{})
		})
		for _, item := range items {
			assert.NotEmpty(t, item.Title, "parsed rows always carry a title")
		}
	}
}

func TestParseCRLF(t *testing.T) {
	raw := "Título;Autor/a\r\nCRLF Book;C. Author\r\n"
	items := Parse(raw, "Salud", ParseOptions{})
	require.Len(t, items, 1)
	assert.Equal(t, "CRLF Book", items[0].Title)
	assert.Equal(t, "C. Author", items[0].Author)
}

func TestParseSkipLinesBeyondInput(t *testing.T) {
	items := Parse("only one line", "Salud", ParseOptions{SkipLines: 5})
	assert.Empty(t, items)
}

func TestParseLoanedStatus(t *testing.T) {
	raw := "Título;Estado\n" +
		"Taken Book;Prestado\n" +
		"Free Book;Disponible\n" +
		"English Export;Loaned\n"

	items := Parse(raw, "Salud", ParseOptions{})

	require.Len(t, items, 3)
	assert.Equal(t, domain.StatusLoaned, items[0].Status)
	assert.Equal(t, domain.StatusAvailable, items[1].Status)
	assert.Equal(t, domain.StatusLoaned, items[2].Status)
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', detectDelimiter("Título;Autor/a;Materias"))
	assert.Equal(t, ',', detectDelimiter("Titulo,Autor,Materias"))
	// Quoted delimiters don't count.
	assert.Equal(t, ';', detectDelimiter(`"a,b,c,d";x;y`))
	// Ties favor semicolon.
	assert.Equal(t, ';', detectDelimiter("a;b,c"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "titulo", Fold("Título"))
	assert.Equal(t, "autor/a", Fold("  AUTOR/A  "))
	assert.Equal(t, "descripcion", Fold("Descripción"))
}

// End-to-end scenario: one accented-header row parsed, then filtered by
// subject both ways.
func TestParseAndFilterScenario(t *testing.T) {
	raw := "Título;Autor/a;Materias\n" +
		"Intro to Stats;J. Doe;Math, Stats\n"

	items := Parse(raw, "Salud", ParseOptions{})
	require.Len(t, items, 1)
	assert.Equal(t, "Intro to Stats", items[0].Title)
	assert.Equal(t, []string{"Math", "Stats"}, items[0].Subjects)
	assert.Equal(t, domain.StatusAvailable, items[0].Status)

	hit := Apply(items, FilterSpec{Subject: "Stats"}, RelationSets{})
	require.Len(t, hit, 1)
	assert.Equal(t, "Intro to Stats", hit[0].Title)

	miss := Apply(items, FilterSpec{Subject: "History"}, RelationSets{})
	assert.Empty(t, miss)
}
