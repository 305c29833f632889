package ioutil_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/postsaver/postsaver/common/utils/ioutil"
)

func TestProgressWriterReportsCumulativeBytes(t *testing.T) {
	var buf bytes.Buffer
	var reports []int64
	wr := ioutil.NewProgressWriter(&buf, func(written int64) {
		reports = append(reports, written)
	})

	// small buffer so io.CopyBuffer issues several writes
	if _, err := io.CopyBuffer(wr, strings.NewReader("0123456789"), make([]byte, 4)); err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	want := []int64{4, 8, 10}
	if len(reports) != len(want) {
		t.Fatalf("got %d reports %v, want %v", len(reports), reports, want)
	}
	for i := range want {
		if reports[i] != want[i] {
			t.Fatalf("report %d = %d, want %d", i, reports[i], want[i])
		}
	}
	if wr.Written() != 10 || buf.String() != "0123456789" {
		t.Fatalf("unexpected state: written=%d buf=%q", wr.Written(), buf.String())
	}
}
