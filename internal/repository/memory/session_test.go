package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor/internal/domain/profile"
	"advisor/internal/domain/session"
	"advisor/pkg/errors"
)

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	sess := session.New(profile.UserProfile{Age: 32, AnnualIncome: 85000, Savings: 45000},
		[]string{"Retirement Planning"})
	sess.PlanSummaries["Retirement Planning"] = "save more"

	require.NoError(t, repo.Create(ctx, sess))

	got, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, []string{"Retirement Planning"}, got.SelectedPlans)
	assert.Equal(t, "save more", got.PlanSummaries["Retirement Planning"])
}

func TestSessionRepository_GetUnknown(t *testing.T) {
	repo := NewSessionRepository()

	_, err := repo.Get(context.Background(), "doesnotexist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSessionNotFound))
}

func TestSessionRepository_UpdateAppendsTurns(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	sess := session.New(profile.UserProfile{Age: 40, AnnualIncome: 100000, Savings: 20000},
		[]string{"Tax Planning"})
	require.NoError(t, repo.Create(ctx, sess))

	sess.AppendTurn("user", "How much should I save monthly?")
	sess.AppendTurn("assistant", "About 15% of income.")
	require.NoError(t, repo.Update(ctx, sess))

	got, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, got.ChatHistory, 2)
	assert.Equal(t, "user", got.ChatHistory[0].Role)
	assert.Equal(t, "assistant", got.ChatHistory[1].Role)
}

func TestSessionRepository_UpdateUnknown(t *testing.T) {
	repo := NewSessionRepository()

	sess := session.New(profile.UserProfile{Age: 30}, []string{"Estate Planning"})
	err := repo.Update(context.Background(), sess)
	assert.True(t, errors.Is(err, errors.ErrSessionNotFound))
}

func TestSessionRepository_StoredStateIsIsolated(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	sess := session.New(profile.UserProfile{Age: 30}, []string{"Insurance Planning"})
	require.NoError(t, repo.Create(ctx, sess))

	// Mutating the caller's copy must not leak into the store.
	sess.PlanSummaries["Insurance Planning"] = "mutated"

	got, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PlanSummaries["Insurance Planning"])
}
