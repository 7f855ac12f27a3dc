package common_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turnoapp/turnos-importer/internal/common"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	err := common.NewAppError("WORKER_NOT_FOUND", "miguel", common.ErrNotFound)
	require.Equal(t, "WORKER_NOT_FOUND: miguel: resource not found", err.Error())
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestDatabaseError_MatchesSentinelAndCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("database is locked")
	err := common.DatabaseError("insert turn", cause)
	require.True(t, errors.Is(err, common.ErrDatabase))
	require.True(t, errors.Is(err, cause))
	require.Contains(t, err.Error(), "insert turn")
}

func TestWrapError_NilPassthrough(t *testing.T) {
	t.Parallel()

	require.NoError(t, common.WrapError(nil, "whatever"))
	require.EqualError(t, common.WrapError(errors.New("boom"), "stage"), "stage: boom")
}
