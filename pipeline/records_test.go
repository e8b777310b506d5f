package pipeline

import (
	"testing"

	"github.com/shenwei356/bio/seqio/fastx"
)

func TestMergeRec(t *testing.T) {
	mk := func(names ...string) <-chan *fastx.Record {
		out := make(chan *fastx.Record)
		go func() {
			for _, n := range names {
				out <- &fastx.Record{Name: []byte(n)}
			}
			close(out)
		}()
		return out
	}

	merged := MergeRec(mk("a", "b"), mk("c"), mk())

	seen := make(map[string]bool)
	for rec := range merged {
		seen[string(rec.Name)] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Errorf("record %q missing from merged stream", want)
		}
	}
	if len(seen) != 3 {
		t.Errorf("merged %d distinct records, want 3", len(seen))
	}
}
