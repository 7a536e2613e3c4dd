package layout

import (
	"encoding/json"
	"io"
	"os"
)

// EncodeDebugJSON writes the layout result as indented JSON, for inspecting card placement.
func EncodeDebugJSON(res *Result, w io.Writer) error {
	if res == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteDebugJSON writes the layout result as JSON to path.
func WriteDebugJSON(res *Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebugJSON(res, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
