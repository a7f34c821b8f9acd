package report

import (
	"encoding/json"
	"io"
)

// document is the JSON and YAML shape of a full run.
type document struct {
	Results []Row   `json:"results" yaml:"results"`
	Summary Summary `json:"summary" yaml:"summary"`
}

func newDocument(rows []Row) document {
	doc := document{Results: rows}
	if doc.Results == nil {
		doc.Results = []Row{}
	}
	for _, r := range rows {
		doc.Summary.Add(r)
	}
	return doc
}

func writeJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(rows))
}
