package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	pr := NewPrometheusRecorder()
	var r Recorder = pr

	r.AddRecords("blog_path", 3)
	r.AddRecords("blog_path", 2)
	r.AddWords(120)
	r.IncPages(KindPost)
	r.IncPages(KindPost)
	r.IncPages(KindList)
	r.ObserveBuildDuration(1500 * time.Millisecond)

	rec := httptest.NewRecorder()
	pr.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	b, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	body := string(b)

	assert.Contains(t, body, `otsu_records_total{collection="blog_path"} 5`)
	assert.Contains(t, body, `otsu_words_total 120`)
	assert.Contains(t, body, `otsu_pages_written_total{kind="post"} 2`)
	assert.Contains(t, body, `otsu_pages_written_total{kind="list"} 1`)
	assert.Contains(t, body, `otsu_build_duration_seconds 1.5`)

	families, err := pr.Registry().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.AddRecords("x", 1)
	r.AddWords(1)
	r.IncPages(KindFeed)
	r.ObserveBuildDuration(time.Second)
}
