package util

import (
	"encoding/json"
	"os"
)

// JSONIndent is the indentation used for every JSON file filesinfo writes.
const JSONIndent = "    "

// WriteJSONFile writes any value as indented JSON to the specified file path,
// truncating whatever the file held before.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	je := json.NewEncoder(f)
	je.SetIndent("", JSONIndent)
	if err := je.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
