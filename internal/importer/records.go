package importer

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/ledgerline/internal/model"
)

// FromRecords turns positional records into a RawTable. The first record
// with any content is the header. Adjacent columns sharing a header are
// merged into one, joining their non-blank cells with a space; table
// extractors split wide description cells that way. Remaining duplicate
// headers get a numeric suffix so every column stays addressable. Records
// with no content at all are skipped.
func FromRecords(records [][]string) model.RawTable {
	start := -1
	for i, rec := range records {
		if !blankRecord(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return model.RawTable{}
	}

	header := records[start]
	groups := groupColumns(header)

	columns := make([]string, len(groups))
	seen := make(map[string]int)
	for i, g := range groups {
		name := g.name
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		columns[i] = name
	}

	var merged [][]string
	for _, rec := range records[start+1:] {
		if blankRecord(rec) {
			continue
		}
		row := make([]string, len(groups))
		for i, g := range groups {
			var parts []string
			for c := g.from; c < g.to && c < len(rec); c++ {
				if v := strings.TrimSpace(rec[c]); v != "" {
					parts = append(parts, v)
				}
			}
			row[i] = strings.Join(parts, " ")
		}
		merged = append(merged, row)
	}
	return model.NewRawTable(columns, merged)
}

type columnGroup struct {
	name     string
	from, to int // half-open range of source columns
}

func groupColumns(header []string) []columnGroup {
	var groups []columnGroup
	for i, h := range header {
		name := strings.TrimSpace(h)
		if n := len(groups); n > 0 && groups[n-1].name == name {
			groups[n-1].to = i + 1
			continue
		}
		groups = append(groups, columnGroup{name: name, from: i, to: i + 1})
	}
	return groups
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
