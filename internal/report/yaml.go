package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, rows []Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(rows)); err != nil {
		return err
	}
	return enc.Close()
}
