package query

import "strings"

// TypeName is a canonical artwork type. Stored type labels are uncontrolled
// free text in two languages, so canonical types exist only on the query
// side, mapped through a keyword table.
type TypeName string

const (
	TypePainting     TypeName = "painting"
	TypeSculpture    TypeName = "sculpture"
	TypeDrawing      TypeName = "drawing"
	TypePrint        TypeName = "print"
	TypePhotograph   TypeName = "photograph"
	TypeManuscript   TypeName = "manuscript"
	TypeArtifact     TypeName = "artifact"
	TypeInstallation TypeName = "installation"
)

// Keyword is one (language, keyword) pair of the classification table.
type Keyword struct {
	Lang string
	Word string
}

func ro(w string) Keyword { return Keyword{Lang: "ro", Word: w} }
func en(w string) Keyword { return Keyword{Lang: "en", Word: w} }

type typeRow struct {
	name     TypeName
	keywords []Keyword
}

// typeTable is the ordered classification table. Matching is plain
// case-insensitive substring containment; the first row with a hit wins, so
// material words claimed by an earlier family never reclassify a label. The
// painting row sits last because its keywords (oil, canvas) name materials
// many other families also mention.
var typeTable = []typeRow{
	{TypeDrawing, []Keyword{
		ro("desen"), en("drawing"), ro("schiță"), ro("schita"), en("sketch"),
		ro("creion"), en("pencil"), ro("cărbune"), en("charcoal"), ro("tuș"),
		en("ink"), en("pastel"), ro("grafică"), en("graphic"),
	}},
	{TypePrint, []Keyword{
		ro("gravură"), ro("gravura"), en("print"), ro("litografie"),
		en("lithograph"), ro("acvaforte"), en("etching"), ro("xilogravură"),
		en("woodcut"), ro("stampă"), ro("serigrafie"),
	}},
	{TypePhotograph, []Keyword{
		ro("fotografie"), ro("fotografia"), en("photograph"), en("photo"),
		ro("foto"), ro("negativ"), en("negative"), en("daguerreotype"),
	}},
	{TypeManuscript, []Keyword{
		ro("manuscris"), en("manuscript"), en("document"), ro("scrisoare"),
		en("letter"), ro("incunabul"), ro("carte"),
	}},
	{TypeInstallation, []Keyword{
		ro("instalație"), ro("instalatie"), en("installation"),
	}},
	{TypeArtifact, []Keyword{
		ro("artefact"), en("artifact"), ro("ceramică"), en("ceramic"),
		en("pottery"), ro("porțelan"), ro("textil"), en("textile"),
		ro("covor"), en("carpet"), ro("tapiserie"), ro("monedă"), en("coin"),
		ro("bijuterie"), en("jewelry"), ro("mobilier"), en("furniture"),
		ro("vas"), en("vessel"),
	}},
	{TypeSculpture, []Keyword{
		ro("sculptură"), ro("sculptura"), en("sculpture"), ro("statuie"),
		en("statue"), ro("bust"), en("relief"), ro("bronz"), en("bronze"),
		ro("marmură"), en("marble"), en("ronde-bosse"),
	}},
	{TypePainting, []Keyword{
		ro("ulei"), ro("pânză"), ro("panza"), ro("pictură"), ro("pictura"),
		en("oil"), en("canvas"), en("tempera"), en("painting"),
	}},
}

// ExpandType returns the keyword list a canonical type name expands to, or
// nil when the name is not in the table.
func ExpandType(name string) []string {
	canonical := TypeName(strings.ToLower(strings.TrimSpace(name)))
	for _, row := range typeTable {
		if row.name == canonical {
			words := make([]string, len(row.keywords))
			for i, kw := range row.keywords {
				words[i] = kw.Word
			}
			return words
		}
	}
	return nil
}

// ClassifyLabel maps a stored free-text type label to its canonical type.
// Labels matching no row, including empty ones, classify as TypeArtifact.
func ClassifyLabel(label string) TypeName {
	lowered := strings.ToLower(label)
	if lowered == "" {
		return TypeArtifact
	}
	for _, row := range typeTable {
		for _, kw := range row.keywords {
			if strings.Contains(lowered, kw.Word) {
				return row.name
			}
		}
	}
	return TypeArtifact
}
