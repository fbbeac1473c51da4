package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/bookclub/internal/model"
)

func membershipScan(id, userID, clubID string, level int) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = userID
		*(dest[2].(*string)) = clubID
		*(dest[3].(*int)) = level
		*(dest[4].(*time.Time)) = time.Now()
		return nil
	}
}

func TestMembershipService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewMembershipService(db)
	ctx := context.Background()

	m := &model.Membership{
		ID:              "test-membership-1",
		UserID:          "test-user-1",
		ClubID:          "test-club-1",
		PermissionLevel: model.PermissionMember,
		CreatedAt:       time.Now(),
	}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Create(ctx, m)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestMembershipService_Create_AlreadyMember(t *testing.T) {
	db := &mockDB{}
	svc := NewMembershipService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"})

	err := svc.Create(ctx, &model.Membership{ID: "test-membership-1", UserID: "test-user-1", ClubID: "test-club-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already a member")
	db.AssertExpectations(t)
}

func TestMembershipService_Create_DBError(t *testing.T) {
	db := &mockDB{}
	svc := NewMembershipService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("connection refused"))

	err := svc.Create(ctx, &model.Membership{ID: "test-membership-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create membership")
	db.AssertExpectations(t)
}

func TestMembershipService_ListByClub_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewMembershipService(db)
	ctx := context.Background()

	rows := newMockRows(
		membershipScan("test-membership-1", "test-user-1", "test-club-1", model.PermissionOwner),
		membershipScan("test-membership-2", "test-user-2", "test-club-1", model.PermissionMember),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	memberships, err := svc.ListByClub(ctx, "test-club-1")
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, model.PermissionOwner, memberships[0].PermissionLevel)
	db.AssertExpectations(t)
}

func TestMembershipService_ListByUser_Empty(t *testing.T) {
	db := &mockDB{}
	svc := NewMembershipService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(newEmptyMockRows(), nil)

	memberships, err := svc.ListByUser(ctx, "test-user-1")
	require.NoError(t, err)
	assert.Empty(t, memberships)
	db.AssertExpectations(t)
}

func TestMembershipService_Delete_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewMembershipService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.NewCommandTag("DELETE 1"), nil)

	err := svc.Delete(ctx, "test-membership-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}
