package seeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnpath/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDB struct {
	database.DB

	execs      [][]any
	failExec   bool
	committed  bool
	rolledBack bool
}

func (d *recordingDB) Begin(context.Context) (database.Tx, error) { return &recordingTx{db: d}, nil }

type recordingTx struct {
	db *recordingDB
}

func (t *recordingTx) Exec(_ context.Context, _ string, args ...any) (int64, error) {
	if t.db.failExec {
		return 0, errors.New("insert failed")
	}
	t.db.execs = append(t.db.execs, args)
	return 1, nil
}

func (t *recordingTx) QueryRow(context.Context, string, ...any) database.Row { return nil }

func (t *recordingTx) Commit(context.Context) error {
	t.db.committed = true
	return nil
}

func (t *recordingTx) Rollback(context.Context) error {
	if !t.db.committed {
		t.db.rolledBack = true
	}
	return nil
}

func TestQuizAttempts_Run(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	db := &recordingDB{}

	require.NoError(t, Runner{Seeders: []Seeder{QuizAttempts{Now: func() time.Time { return now }}}}.Run(context.Background(), db))

	require.Len(t, db.execs, len(demoAttempts))
	assert.True(t, db.committed)

	first := db.execs[0]
	assert.Equal(t, demoUserID, first[2])
	assert.Equal(t, "week1", first[3])
	assert.Equal(t, false, first[5], "67 is below the passing mark")
	assert.Equal(t, now.AddDate(0, 0, -6), first[8])
	assert.Equal(t, true, db.execs[1][5])
}

func TestQuizAttempts_RollsBackOnError(t *testing.T) {
	db := &recordingDB{failExec: true}
	err := Default().Run(context.Background(), db)
	assert.ErrorContains(t, err, "seed quiz_attempts")
	assert.True(t, db.rolledBack)
	assert.False(t, db.committed)
}

func TestRunner_NilDB(t *testing.T) {
	assert.Error(t, Default().Run(context.Background(), nil))
}
