package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyhub/internal/store"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestInspect(t *testing.T) {
	txt := writeFile(t, "notes.txt", []byte("Derivatives measure rates of change.\n"))
	f, err := Inspect(txt, DefaultMaxBytes)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", f.Name)
	assert.Equal(t, int64(37), f.Size)
	assert.Contains(t, f.MIMEType, "text/plain")

	pdf := writeFile(t, "paper.PDF", []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n"))
	f, err = Inspect(pdf, DefaultMaxBytes)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.MIMEType)
}

func TestInspect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    []byte
		max     int64
		wantErr error
	}{
		{"extension", "image.png", []byte("x"), DefaultMaxBytes, ErrUnsupportedFileType},
		{"empty", "empty.txt", nil, DefaultMaxBytes, ErrEmptyFile},
		{"too large", "big.txt", []byte("0123456789"), 5, ErrFileTooLarge},
		{"content mismatch", "fake.pdf", []byte("just some text"), DefaultMaxBytes, ErrUnsupportedFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, tt.file, tt.data)
			_, err := Inspect(p, tt.max)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Inspect(filepath.Join(t.TempDir(), "missing.txt"), DefaultMaxBytes)
	assert.Error(t, err)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 Bytes", FormatSize(512))
	assert.Equal(t, "1 KB", FormatSize(1024))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "10 MB", FormatSize(DefaultMaxBytes))
}

func TestAllowedExtensions(t *testing.T) {
	assert.Equal(t, []string{".doc", ".docx", ".pdf", ".txt"}, AllowedExtensions())
}

func TestTaskRun(t *testing.T) {
	task := &Task{File: File{Name: "a.txt"}, Tick: time.Millisecond, Processing: time.Millisecond}

	var got []Progress
	res, err := task.Run(context.Background(), func(p Progress) { got = append(got, p) })
	require.NoError(t, err)

	require.Len(t, got, 12)
	for i := 0; i <= 9; i++ {
		assert.Equal(t, Progress{Stage: StageUploading, Percent: i * Step}, got[i])
	}
	assert.Equal(t, Progress{Stage: StageProcessing, Percent: 100}, got[10])
	assert.Equal(t, Progress{Stage: StageCompleted, Percent: 100}, got[11])
	assert.Equal(t, PlaceholderTopics, res.Topics)
	assert.Equal(t, "a.txt", res.File.Name)
}

func TestTaskRun_Cancel(t *testing.T) {
	task := &Task{Tick: time.Millisecond, Processing: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	_, err := task.Run(ctx, func(p Progress) {
		if p.Percent == 50 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTaskStream(t *testing.T) {
	task := &Task{File: File{Name: "s.txt"}, Tick: time.Millisecond}

	var updates []Update
	for u := range task.Stream(context.Background()) {
		updates = append(updates, u)
	}
	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.True(t, last.Done)
	require.NoError(t, last.Err)
	assert.Equal(t, "s.txt", last.Result.File.Name)
	assert.Equal(t, StageCompleted, last.Progress.Stage)
}

func TestEventFor(t *testing.T) {
	f := File{Name: "n.pdf", Size: 10, MIMEType: "application/pdf"}

	ok := EventFor(f, Result{File: f, Topics: []string{"x"}}, nil)
	assert.Equal(t, store.UploadCompleted, ok.Status)
	assert.Equal(t, []string{"x"}, ok.Topics)

	cancelled := EventFor(f, Result{}, context.Canceled)
	assert.Equal(t, store.UploadCancelled, cancelled.Status)

	failed := EventFor(f, Result{}, errors.New("disk"))
	assert.Equal(t, store.UploadFailed, failed.Status)
	assert.Equal(t, "disk", failed.ErrorMessage)
}
