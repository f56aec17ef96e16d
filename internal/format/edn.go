package format

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// WriteEDN writes a strict EDN rendering of v. Values go through JSON first so struct
// tags decide field names; object keys become keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := ednEncoder{pretty: pretty, indent: 2}
	enc.value(&buf, x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	pretty bool
	indent int
}

func (e ednEncoder) value(buf *bytes.Buffer, v any, level int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case json.Number:
		buf.WriteString(t.String())
	case []any:
		e.vector(buf, t, level)
	case map[string]any:
		e.object(buf, t, level)
	}
}

func (e ednEncoder) vector(buf *bytes.Buffer, xs []any, level int) {
	buf.WriteByte('[')
	for i, it := range xs {
		e.sep(buf, i, level)
		e.value(buf, it, level+1)
	}
	e.close(buf, len(xs), level)
	buf.WriteByte(']')
}

func (e ednEncoder) object(buf *bytes.Buffer, m map[string]any, level int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		e.sep(buf, i, level)
		buf.WriteByte(':')
		buf.WriteString(ednKeyword(k))
		buf.WriteByte(' ')
		e.value(buf, m[k], level+1)
	}
	e.close(buf, len(keys), level)
	buf.WriteByte('}')
}

// sep writes what goes before element i of a collection.
func (e ednEncoder) sep(buf *bytes.Buffer, i, level int) {
	switch {
	case e.pretty:
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", (level+1)*e.indent))
	case i > 0:
		buf.WriteByte(' ')
	}
}

func (e ednEncoder) close(buf *bytes.Buffer, n, level int) {
	if e.pretty && n > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*e.indent))
	}
}

func ednKeyword(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
}
