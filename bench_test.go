package jpretty_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jpretty"
)

// benchInput constructs a document of n records of mixed value types.
func benchInput(n int) string {
	var sb strings.Builder
	sb.WriteString(`{"records": [`)
	for i := range n {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"item é %d","score":%d.25e-3,"tags":["a","b"],"ok":true,"nil":null}`, i, i, i)
	}
	sb.WriteString(`]}`)
	return sb.String()
}

func BenchmarkFormat(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Indent", func(b *testing.B) {
		var buf bytes.Buffer
		for i := 0; i < b.N; i++ {
			buf.Reset()
			if err := json.Indent(&buf, []byte(input), "", "  "); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Formatter", func(b *testing.B) {
		f := jpretty.NewFormatter(input, 2)
		for i := 0; i < b.N; i++ {
			if _, err := f.Format(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s := jpretty.NewScanner(input)
			for {
				tok, err := s.Next()
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				} else if tok.Kind == jpretty.EOF {
					break
				}
			}
		}
	})
}
