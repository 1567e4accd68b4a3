package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFile_LoadMissing(t *testing.T) {
	f := NewReportFile(filepath.Join(t.TempDir(), "absent.json"))

	s, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RunSummary{}, s)
}

func TestReportFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "last-run.json")
	f := NewReportFile(path)
	assert.Equal(t, path, f.Path())

	offset := 2000
	want := RunSummary{
		RunID:           "run-1",
		Tool:            "delete-samples",
		Resource:        "inventory_samples",
		Verb:            "remove",
		VaultID:         42,
		Total:           2500,
		PagesPlanned:    3,
		PagesFetched:    2,
		Attempted:       2000,
		Succeeded:       1999,
		Failed:          1,
		FailedOffset:    &offset,
		Error:           "page at offset 2000: boom",
		DurationSeconds: 12.5,
		FinishedAt:      time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC),
	}
	require.NoError(t, f.Save(context.Background(), want))

	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestReportFile_SaveReplaces(t *testing.T) {
	f := NewReportFile(filepath.Join(t.TempDir(), "last-run.json"))

	require.NoError(t, f.Save(context.Background(), RunSummary{RunID: "first", Failed: 3}))
	require.NoError(t, f.Save(context.Background(), RunSummary{RunID: "second", Clean: true}))

	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", got.RunID)
	assert.Zero(t, got.Failed)
	assert.True(t, got.Clean)
}

func TestReportFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-run.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewReportFile(path).Load(context.Background())
	assert.Error(t, err)
}
