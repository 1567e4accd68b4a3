package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/vaultsweep/internal/domain"
)

func newTestRunner(vault *fakeVault) (*Runner, *recordingLogger) {
	logger := &recordingLogger{}
	s := NewSweeper(SweeperConfig{PageSize: 1000}, vault, logger, nil)
	return NewRunner(s, logger), logger
}

func TestTools_DispatchTable(t *testing.T) {
	tests := []struct {
		name     string
		resource domain.Resource
		verb     domain.Verb
		bulk     bool
	}{
		{ToolDeleteFile, domain.ResourceFiles, domain.VerbRemove, false},
		{ToolDeleteBatches, domain.ResourceBatches, domain.VerbDetach, true},
		{ToolDeleteSamples, domain.ResourceSamples, domain.VerbRemove, true},
		{ToolDiscardELNs, domain.ResourceELNEntries, domain.VerbTransition, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, err := LookupTool(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, tool.Name)
			assert.Equal(t, tt.resource, tool.Resource)
			assert.Equal(t, tt.verb, tool.Verb)
			assert.Equal(t, tt.bulk, tool.Bulk)
			assert.NotEmpty(t, tool.Short)
		})
	}

	assert.Equal(t, []string{ToolDeleteBatches, ToolDeleteFile, ToolDeleteSamples, ToolDiscardELNs}, ToolNames())
}

func TestLookupTool_Unknown(t *testing.T) {
	_, err := LookupTool("delete-everything")
	assert.ErrorIs(t, err, domain.ErrUnknownTool)
}

func TestRunner_BatchIsDetachedNotDeleted(t *testing.T) {
	vault := newFakeVault(1)
	r, logger := newTestRunner(vault)

	rep, err := r.Run(context.Background(), Tools[ToolDeleteBatches], Params{VaultID: 42})
	require.NoError(t, err)

	assert.Equal(t, []domain.Verb{domain.VerbDetach}, vault.verbs)
	assert.Equal(t, 1, rep.Succeeded)
	assert.Equal(t, 1, logger.count("INFO", "batch detached"))
	assert.Zero(t, logger.count("INFO", "batch deleted"))
	assert.Equal(t, 1, logger.count("INFO", "program started"))
	assert.Equal(t, 1, logger.count("INFO", "program completed"))
}

func TestRunner_DiscardsELNEntriesAcrossPages(t *testing.T) {
	vault := newFakeVault(1200)
	r, logger := newTestRunner(vault)

	rep, err := r.Run(context.Background(), Tools[ToolDiscardELNs], Params{VaultID: 42})
	require.NoError(t, err)

	assert.Equal(t, []domain.PageRequest{{Offset: 0, Size: 1000}, {Offset: 1000, Size: 200}}, vault.pages)
	assert.Len(t, vault.mutations, 1200)
	for _, v := range vault.verbs {
		require.Equal(t, domain.VerbTransition, v)
	}
	assert.Equal(t, 1200, rep.Attempted)
	assert.Equal(t, 1200, logger.count("INFO", "ELN entry discarded"))

	// One line per entry, each naming its own id.
	ids := map[string]bool{}
	for _, line := range logger.lines {
		if line.msg == "ELN entry discarded" {
			ids[line.id] = true
		}
	}
	assert.Len(t, ids, 1200)
}

func TestRunner_DeleteSamples(t *testing.T) {
	vault := newFakeVault(3)
	r, _ := newTestRunner(vault)

	_, err := r.Run(context.Background(), Tools[ToolDeleteSamples], Params{VaultID: 42})
	require.NoError(t, err)
	assert.Equal(t, []domain.Verb{domain.VerbRemove, domain.VerbRemove, domain.VerbRemove}, vault.verbs)
}

func TestRunner_DeleteFileIsSingleItem(t *testing.T) {
	vault := newFakeVault(50)
	r, logger := newTestRunner(vault)

	rep, err := r.Run(context.Background(), Tools[ToolDeleteFile], Params{VaultID: 42, RecordID: "9"})
	require.NoError(t, err)
	assert.Zero(t, vault.countCalls)
	assert.Equal(t, []domain.RecordID{"9"}, vault.mutations)
	assert.Equal(t, 1, rep.Attempted)
	assert.Equal(t, 1, logger.count("INFO", "file deleted"))
}

func TestRunner_DeleteFileRequiresID(t *testing.T) {
	vault := newFakeVault(0)
	r, logger := newTestRunner(vault)

	_, err := r.Run(context.Background(), Tools[ToolDeleteFile], Params{VaultID: 42})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Empty(t, vault.mutations)
	assert.Empty(t, logger.lines)
}

func TestRunner_FailuresAreLoggedAsWarnings(t *testing.T) {
	vault := newFakeVault(5)
	vault.rejects = map[domain.RecordID]int{vault.ids[2]: 500}
	r, logger := newTestRunner(vault)

	_, err := r.Run(context.Background(), Tools[ToolDeleteSamples], Params{VaultID: 42})
	assert.ErrorIs(t, err, domain.ErrPartialFailure)
	assert.Equal(t, 1, logger.count("WARN", "program completed with errors"))
	assert.Zero(t, logger.count("INFO", "program completed"))
}

func TestRunner_InvalidVerb(t *testing.T) {
	vault := newFakeVault(1)
	r, _ := newTestRunner(vault)

	_, err := r.Run(context.Background(), Tool{Name: "x", Resource: domain.ResourceFiles, Verb: "zap", Bulk: true}, Params{VaultID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Zero(t, vault.countCalls)
}
