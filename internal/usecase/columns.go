package usecase

import (
	"strings"

	"corazones/internal/domain"
)

// Column-variant tables for the spreadsheet import. Real sheets arrive with
// mixed-language, mixed-case headers; each logical field is resolved by
// trying these candidate keys in order, first usable value wins. The order
// is part of the import contract; do not reorder.
var (
	nameColumns         = []string{"name", "Name", "producto", "Producto"}
	descriptionColumns  = []string{"description", "Description", "descripción", "Descripción"}
	priceColumns        = []string{"price", "Price", "precio", "Precio"}
	categoryColumns     = []string{"categories", "category", "Category", "categoría", "Categoría"}
	bookTypeColumns     = []string{"book_type", "bookType", "booktype"}
	availabilityColumns = []string{"is_available", "available", "disponible"}
	measuresColumns     = []string{"measures", "Measures", "medidas", "Medidas", "measurements"}
	pagesColumns        = []string{"pages", "Pages", "páginas", "Páginas", "page_count"}
	authorsColumns      = []string{"authors", "author", "Authors", "Autor", "autores"}
	tagsColumns         = []string{"tags", "Tags", "etiquetas", "Etiquetas"}
)

// splitTags parses a tags cell into distinct trimmed names. Commas and
// semicolons both appear as separators in real sheets.
func splitTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	seen := make(map[string]bool, len(fields))
	var tags []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || seen[strings.ToLower(f)] {
			continue
		}
		seen[strings.ToLower(f)] = true
		tags = append(tags, f)
	}
	return tags
}

// categoryFromBookType marks category inputs that are too generic on their
// own ("producto") and defer to the book-type column.
const categoryFromBookType = "\x00book_type"

// categorySynonyms maps loose category input (already lowercased and
// trimmed) to the canonical stored values.
var categorySynonyms = map[string]string{
	"producto":  categoryFromBookType,
	"productos": categoryFromBookType,
	"product":   categoryFromBookType,
	"prod":      categoryFromBookType,

	"libro":  domain.CategoryBook,
	"libros": domain.CategoryBook,
	"book":   domain.CategoryBook,
	"books":  domain.CategoryBook,

	"serie":      domain.CategorySeries,
	"series":     domain.CategorySeries,
	"bolsillo":   domain.CategorySeries,
	"pocket":     domain.CategorySeries,
	"collection": domain.CategorySeries,
	"bolsillos":  domain.CategorySeries,

	"paquete":  domain.CategoryPackage,
	"packages": domain.CategoryPackage,
	"package":  domain.CategoryPackage,
	"pack":     domain.CategoryPackage,

	"otro producto":   domain.CategoryOtherProduct,
	"otro_producto":   domain.CategoryOtherProduct,
	"otros productos": domain.CategoryOtherProduct,
	"other product":   domain.CategoryOtherProduct,
	"other products":  domain.CategoryOtherProduct,
}

// bookTypeSeriesTokens are book-type values that force the serie category
// (pocket/series editions).
var bookTypeSeriesTokens = map[string]bool{
	"serie_bolsillo": true,
	"serie bolsillo": true,
	"bolsillo":       true,
	"pocket":         true,
	"series":         true,
}

// Availability tokens. Anything that is neither truthy nor falsy defaults to
// available (fail open).
var (
	truthyTokens = map[string]bool{"true": true, "1": true, "yes": true, "sí": true, "si": true, "t": true, "y": true}
	falsyTokens  = map[string]bool{"false": true, "0": true, "no": true, "n": true, "f": true}
)

// resolveColumn returns the first usable value among the candidate keys:
// present, non-empty after trimming, and not a spreadsheet placeholder.
func resolveColumn(row map[string]string, candidates []string) string {
	for _, key := range candidates {
		if v, ok := row[key]; ok {
			v = strings.TrimSpace(v)
			if v != "" && !isPlaceholder(v) {
				return v
			}
		}
	}
	return ""
}

// isPlaceholder recognizes artifacts of spreadsheet round-trips ("nan" from
// pandas exports, "none") that mean "no value".
func isPlaceholder(v string) bool {
	switch strings.ToLower(v) {
	case "nan", "none":
		return true
	}
	return false
}

// resolveCategory maps the row's category input onto a canonical value,
// consulting the book-type column for generic or unrecognized inputs.
func resolveCategory(row map[string]string) string {
	raw := strings.ToLower(strings.TrimSpace(resolveColumn(row, categoryColumns)))
	if raw == "" {
		return domain.DefaultCategory
	}
	if canonical, ok := categorySynonyms[raw]; ok {
		if canonical == categoryFromBookType {
			if bookTypeIndicatesSeries(row) {
				return domain.CategorySeries
			}
			return domain.DefaultCategory
		}
		return canonical
	}
	if bookTypeIndicatesSeries(row) {
		return domain.CategorySeries
	}
	return domain.DefaultCategory
}

func bookTypeIndicatesSeries(row map[string]string) bool {
	raw := strings.ToLower(strings.TrimSpace(resolveColumn(row, bookTypeColumns)))
	return bookTypeSeriesTokens[raw]
}

// resolveAvailability maps textual availability onto a bool: explicit falsy
// tokens disable, everything else (including absence) is available.
func resolveAvailability(row map[string]string) bool {
	raw := strings.ToLower(strings.TrimSpace(resolveColumn(row, availabilityColumns)))
	if raw == "" {
		return domain.DefaultAvailability
	}
	if truthyTokens[raw] {
		return true
	}
	if falsyTokens[raw] {
		return false
	}
	return domain.DefaultAvailability
}
