package core

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(db DB) *SessionService {
	return NewSessionService(db, "test-hash-key", 24*time.Hour)
}

// ---------- Issue ----------

func TestSessionService_Issue_Success(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	cred, err := svc.Issue(ctx, "test-user-1")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.NotEmpty(t, cred.P1)
	assert.NotEmpty(t, cred.P2)
	assert.NotEqual(t, cred.P1, cred.P2)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), cred.ExpiresAt, time.Minute)
	db.AssertExpectations(t)
}

// The raw secret must never reach storage, only its keyed hash.
func TestSessionService_Issue_StoresHashedSecret(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	var insertArgs []any
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			insertArgs = args.Get(2).([]any)
		}).
		Return(pgconn.CommandTag{}, nil)

	cred, err := svc.Issue(ctx, "test-user-1")
	require.NoError(t, err)
	require.Len(t, insertArgs, 6)

	storedHash := insertArgs[3].(string)
	assert.NotEqual(t, cred.P2, storedHash)
	assert.NotContains(t, storedHash, cred.P2)
	assert.Equal(t, svc.hashSecret(cred.P2), storedHash)
	db.AssertExpectations(t)
}

func TestSessionService_Issue_DBError(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, errors.New("connection refused"))

	cred, err := svc.Issue(ctx, "test-user-1")
	require.Error(t, err)
	assert.Nil(t, cred)
	assert.Contains(t, err.Error(), "create session")
	db.AssertExpectations(t)
}

// ---------- Verify ----------

func TestSessionService_Verify_Success(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	storedHash := svc.hashSecret("the-secret")
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "test-user-1"
		*(dest[1].(*string)) = storedHash
		*(dest[2].(*time.Time)) = time.Now().Add(time.Hour)
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	userID, err := svc.Verify(ctx, "the-lookup-key", "the-secret")
	require.NoError(t, err)
	assert.Equal(t, "test-user-1", userID)
	db.AssertExpectations(t)
}

func TestSessionService_Verify_UnknownLookupKey(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return pgx.ErrNoRows
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	userID, err := svc.Verify(ctx, "never-issued", "whatever")
	require.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, userID)
	db.AssertExpectations(t)
}

func TestSessionService_Verify_WrongSecret(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	storedHash := svc.hashSecret("the-real-secret")
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "test-user-1"
		*(dest[1].(*string)) = storedHash
		*(dest[2].(*time.Time)) = time.Now().Add(time.Hour)
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	userID, err := svc.Verify(ctx, "the-lookup-key", "a-guessed-secret")
	require.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, userID)
	db.AssertExpectations(t)
}

// Rejection cost must not vary with how many leading characters of a guess
// are correct. Guesses are timed in batches and compared by median, which
// absorbs scheduler noise; a short-circuiting comparison would diverge far
// outside the asserted band.
func TestSessionService_SecretMatches_TimingPrefixIndependent(t *testing.T) {
	svc := newTestSessionService(nil)

	secret, err := newToken()
	require.NoError(t, err)
	storedHash := svc.hashSecret(secret)
	require.True(t, svc.secretMatches(secret, storedHash))

	// Guesses share none, a quarter, half, and all but one of the real
	// secret's characters.
	prefixLens := []int{0, len(secret) / 4, len(secret) / 2, len(secret) - 1}

	const (
		batches       = 50
		callsPerBatch = 200
	)

	medians := make([]float64, len(prefixLens))
	for i, n := range prefixLens {
		guess := secret[:n] + strings.Repeat("!", len(secret)-n)
		require.False(t, svc.secretMatches(guess, storedHash))

		samples := make([]float64, batches)
		for b := 0; b < batches; b++ {
			start := time.Now()
			for c := 0; c < callsPerBatch; c++ {
				svc.secretMatches(guess, storedHash)
			}
			samples[b] = float64(time.Since(start))
		}
		sort.Float64s(samples)
		medians[i] = samples[batches/2]
	}

	for i := 1; i < len(medians); i++ {
		ratio := medians[i] / medians[0]
		assert.Greater(t, ratio, 0.25, "prefix length %d", prefixLens[i])
		assert.Less(t, ratio, 4.0, "prefix length %d", prefixLens[i])
	}
}

// A different hash key must reject secrets hashed under the old key.
func TestSessionService_Verify_DifferentHashKey(t *testing.T) {
	db := &mockDB{}
	oldSvc := NewSessionService(db, "old-key", 24*time.Hour)
	newSvc := NewSessionService(db, "new-key", 24*time.Hour)
	ctx := context.Background()

	storedHash := oldSvc.hashSecret("the-secret")
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "test-user-1"
		*(dest[1].(*string)) = storedHash
		*(dest[2].(*time.Time)) = time.Now().Add(time.Hour)
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	_, err := newSvc.Verify(ctx, "the-lookup-key", "the-secret")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_Verify_Expired(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	storedHash := svc.hashSecret("the-secret")
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "test-user-1"
		*(dest[1].(*string)) = storedHash
		*(dest[2].(*time.Time)) = time.Now().Add(-time.Minute)
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.NewCommandTag("DELETE 1"), nil)

	userID, err := svc.Verify(ctx, "the-lookup-key", "the-secret")
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, userID)
	db.AssertExpectations(t)
}

// The lazy delete failing must not change the expired verdict.
func TestSessionService_Verify_ExpiredDeleteFails(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	storedHash := svc.hashSecret("the-secret")
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "test-user-1"
		*(dest[1].(*string)) = storedHash
		*(dest[2].(*time.Time)) = time.Now().Add(-time.Minute)
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, errors.New("connection refused"))

	_, err := svc.Verify(ctx, "the-lookup-key", "the-secret")
	require.ErrorIs(t, err, ErrSessionExpired)
	db.AssertExpectations(t)
}

func TestSessionService_Verify_DBError(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return errors.New("connection refused")
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	_, err := svc.Verify(ctx, "the-lookup-key", "the-secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	db.AssertExpectations(t)
}

// ---------- Revoke ----------

func TestSessionService_Revoke_Success(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.NewCommandTag("DELETE 1"), nil)

	err := svc.Revoke(ctx, "the-lookup-key")
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestSessionService_Revoke_UnknownIsNoError(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.NewCommandTag("DELETE 0"), nil)

	err := svc.Revoke(ctx, "never-issued")
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestSessionService_Revoke_DBError(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, errors.New("connection refused"))

	err := svc.Revoke(ctx, "the-lookup-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoke session")
	db.AssertExpectations(t)
}

func TestSessionService_RevokeAllForUser_Success(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.NewCommandTag("DELETE 4"), nil)

	err := svc.RevokeAllForUser(ctx, "test-user-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}

// ---------- PurgeExpired ----------

func TestSessionService_PurgeExpired_Success(t *testing.T) {
	db := &mockDB{}
	svc := newTestSessionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.NewCommandTag("DELETE 7"), nil)

	n, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	db.AssertExpectations(t)
}
