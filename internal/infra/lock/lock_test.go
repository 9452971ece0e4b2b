package lock

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
)

var lockDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type fakeTx struct {
	queries []string
	args    [][]interface{}
}

func (f *fakeTx) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	return driver.RowsAffected(0), nil
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestAdvisoryKey(t *testing.T) {
	assert.Equal(t, advisoryKey(1, lockDate), advisoryKey(1, lockDate.Add(20*time.Hour)), "same calendar day")
	assert.NotEqual(t, advisoryKey(1, lockDate), advisoryKey(2, lockDate))
	assert.NotEqual(t, advisoryKey(1, lockDate), advisoryKey(1, lockDate.AddDate(0, 0, 1)))
}

func TestAdvisoryLocker_RequiresTransaction(t *testing.T) {
	_, err := NewAdvisoryLocker().Lock(context.Background(), 1, lockDate)
	assert.ErrorIs(t, err, ErrNoTransaction)
}

func TestAdvisoryLocker_LocksInsideTransaction(t *testing.T) {
	tx := &fakeTx{}
	ctx := dbmetrics.WithTx(context.Background(), tx)

	release, err := NewAdvisoryLocker().Lock(ctx, 7, lockDate)
	require.NoError(t, err)
	require.NoError(t, release(ctx))

	require.Len(t, tx.queries, 1)
	assert.Contains(t, tx.queries[0], "pg_advisory_xact_lock")
	assert.Equal(t, []interface{}{advisoryKey(7, lockDate)}, tx.args[0])
}

// fakeRedis хранит ключи в памяти и исполняет скрипт снятия блокировки
type fakeRedis struct {
	mu   sync.Mutex
	keys map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: make(map[string]string)}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) compareAndDelete(keys []string, args []interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[keys[0]] == args[0].(string) {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) EvalRO(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return f.Eval(ctx, script, keys, args...)
}

func (f *fakeRedis) EvalShaRO(ctx context.Context, sha string, keys []string, args ...interface{}) *redis.Cmd {
	return f.EvalSha(ctx, sha, keys, args...)
}

func (f *fakeRedis) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeRedis) ScriptLoad(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func TestRedisLocker_ExclusiveUntilReleased(t *testing.T) {
	client := newFakeRedis()
	locker := NewRedisLocker(client, 100*time.Millisecond)
	locker.retryInterval = 10 * time.Millisecond
	ctx := context.Background()

	release, err := locker.Lock(ctx, 1, lockDate)
	require.NoError(t, err)

	_, err = locker.Lock(ctx, 1, lockDate)
	assert.ErrorIs(t, err, ErrTimeout)

	// Другая дата не конфликтует
	otherRelease, err := locker.Lock(ctx, 1, lockDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.NoError(t, otherRelease(ctx))

	require.NoError(t, release(ctx))

	again, err := locker.Lock(ctx, 1, lockDate)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestRedisLocker_ReleaseOnlyOwnToken(t *testing.T) {
	client := newFakeRedis()
	locker := NewRedisLocker(client, time.Second)
	ctx := context.Background()

	release, err := locker.Lock(ctx, 3, lockDate)
	require.NoError(t, err)

	// Ключ истек и был захвачен другим владельцем
	key := lockName(3, lockDate)
	client.mu.Lock()
	client.keys[key] = "someone-else"
	client.mu.Unlock()

	require.NoError(t, release(ctx))
	assert.Equal(t, "someone-else", client.keys[key])
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	client := newFakeRedis()
	locker := NewRedisLocker(client, time.Second)
	locker.retryInterval = 5 * time.Millisecond
	ctx := context.Background()

	release, err := locker.Lock(ctx, 9, lockDate)
	require.NoError(t, err)

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = release(ctx)
	}()

	second, err := locker.Lock(ctx, 9, lockDate)
	require.NoError(t, err)
	require.NoError(t, second(ctx))
}
