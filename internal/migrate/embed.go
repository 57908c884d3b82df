package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Embed sets field to value in a JSON object document and returns the new
// document. Every other field keeps its value and position; a new field is
// appended last. The document's indentation and trailing newline are kept.
func Embed(doc []byte, field string, value any) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, errors.New("document is not valid JSON")
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, errors.New("document is not a JSON object")
	}

	encoded, err := marshalJSON(value, "")
	if err != nil {
		return nil, err
	}

	var compact bytes.Buffer
	compact.WriteByte('{')
	first, replaced := true, false
	var walkErr error

	writeMember := func(key, val []byte) {
		if !first {
			compact.WriteByte(',')
		}
		first = false
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(val)
	}

	root.ForEach(func(key, val gjson.Result) bool {
		if key.String() == field {
			if replaced {
				return true
			}
			writeMember([]byte(key.Raw), encoded)
			replaced = true
			return true
		}
		var v bytes.Buffer
		if err := json.Compact(&v, []byte(val.Raw)); err != nil {
			walkErr = fmt.Errorf("field %q: %w", key.String(), err)
			return false
		}
		writeMember([]byte(key.Raw), v.Bytes())
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if !replaced {
		key, _ := marshalJSON(field, "")
		writeMember(key, encoded)
	}
	compact.WriteByte('}')

	indent := detectIndent(doc)
	if indent == "" {
		return finish(compact.Bytes(), doc), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("indenting document: %w", err)
	}
	return finish(out.Bytes(), doc), nil
}

// detectIndent returns the whitespace before the first member of the
// top-level object, or "" for single-line documents.
func detectIndent(doc []byte) string {
	trimmed := bytes.TrimSpace(doc)
	nl := bytes.IndexByte(trimmed, '\n')
	if nl < 0 {
		return ""
	}
	line := trimmed[nl+1:]
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	if end == 0 {
		return "  "
	}
	return string(line[:end])
}

func finish(out, original []byte) []byte {
	if bytes.HasSuffix(original, []byte("\n")) {
		out = append(out, '\n')
	}
	return out
}
