package catalog

import "strings"

// CanonicalCreateTable renders t as the canonical CREATE TABLE text
// returned by the GetTable client RPC (spec.md §6), one column per line
// with explicit NULL/NOT NULL and PRIMARY KEY qualifiers so re-parsing it
// yields back an identical Table (spec.md §8's SQL round-trip property).
func CanonicalCreateTable(t Table) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(t.Name)
	b.WriteString(" (\n")
	for _, c := range t.Columns {
		b.WriteString("  ")
		b.WriteString(c.Name)
		b.WriteString(" ")
		b.WriteString(c.Type.String())
		if c.Name == t.PrimaryKey {
			b.WriteString(" PRIMARY KEY")
		}
		if c.Nullable {
			b.WriteString(" NULL")
		} else {
			b.WriteString(" NOT NULL")
		}
		b.WriteString(",\n")
	}
	b.WriteString(")")
	return b.String()
}
