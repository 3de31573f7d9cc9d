package runlog

import (
	"context"
	"testing"
	"time"

	"github.com/franruiloz-lab/precios-almendra/lib/sqliteutil"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	db, err := sqliteutil.OpenDB(Schema, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	empty, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, empty)

	base := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.Note(ctx, Run{
			Time:    base.Add(time.Duration(i) * time.Hour * 24 * 7),
			Records: 10 + i,
		})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, 12, runs[0].Records)
	require.Equal(t, 11, runs[1].Records)
	require.True(t, runs[0].Time.After(runs[1].Time))
}
