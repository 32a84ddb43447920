package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/MateoL17/LinKage/internal/repository/memory"
	"github.com/MateoL17/LinKage/internal/service"
	"github.com/google/uuid"
)

type fakeNotifier struct {
	messages []*domain.ChatMessage
	matches  []*domain.LikeRecord
}

func (n *fakeNotifier) NotifyNewMessage(msg *domain.ChatMessage) {
	n.messages = append(n.messages, msg)
}

func (n *fakeNotifier) NotifyNewMatch(rec *domain.LikeRecord) {
	n.matches = append(n.matches, rec)
}

func seedUsers(t *testing.T, repo *memory.UserRepo, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		err := repo.Create(context.Background(), &domain.User{
			ID:          uuid.New(),
			Email:       username + "@example.com",
			Username:    username,
			DisplayName: username,
			Photo:       "img/" + username + ".png",
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)
	}
}

func newMatchService(t *testing.T, usernames ...string) (*service.MatchService, *fakeNotifier) {
	t.Helper()
	userRepo := memory.NewUserRepo()
	seedUsers(t, userRepo, usernames...)
	svc := service.NewMatchService(memory.NewLikeRepo(), userRepo)
	notifier := &fakeNotifier{}
	svc.SetNotifier(notifier)
	return svc, notifier
}

func TestLikeOrderIndependence(t *testing.T) {
	ctx := context.Background()

	for _, order := range [][2][2]string{
		{{"ana", "luis"}, {"luis", "ana"}},
		{{"luis", "ana"}, {"ana", "luis"}},
	} {
		svc, _ := newMatchService(t, "ana", "luis")

		first, err := svc.Like(ctx, order[0][0], order[0][1])
		require.NoError(t, err)
		assert.False(t, first.IsMutual)
		assert.False(t, first.WasAlreadyMutual)

		second, err := svc.Like(ctx, order[1][0], order[1][1])
		require.NoError(t, err)
		assert.True(t, second.IsMutual)
		assert.False(t, second.WasAlreadyMutual)
	}
}

func TestRepeatLikeIsMonotonic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMatchService(t, "ana", "luis")

	_, err := svc.Like(ctx, "ana", "luis")
	require.NoError(t, err)

	// Repeating a one-sided like changes nothing.
	repeat, err := svc.Like(ctx, "ana", "luis")
	require.NoError(t, err)
	assert.False(t, repeat.IsMutual)

	_, err = svc.Like(ctx, "luis", "ana")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		outcome, err := svc.Like(ctx, "ana", "luis")
		require.NoError(t, err)
		assert.True(t, outcome.IsMutual)
		assert.True(t, outcome.WasAlreadyMutual)
	}
}

func TestMatchScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMatchService(t, "ana", "luis")

	first, err := svc.Like(ctx, "ana", "luis")
	require.NoError(t, err)
	assert.False(t, first.IsMutual)

	second, err := svc.Like(ctx, "luis", "ana")
	require.NoError(t, err)
	assert.True(t, second.IsMutual)
	assert.False(t, second.WasAlreadyMutual)

	third, err := svc.Like(ctx, "ana", "luis")
	require.NoError(t, err)
	assert.True(t, third.IsMutual)
	assert.True(t, third.WasAlreadyMutual)
}

func TestSelfLike(t *testing.T) {
	svc, _ := newMatchService(t, "ana")

	_, err := svc.Like(context.Background(), "ana", "ana")
	assert.ErrorIs(t, err, service.ErrSelfLike)
}

func TestLikeUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMatchService(t, "ana")

	_, err := svc.Like(ctx, "ana", "desconocido")
	assert.ErrorIs(t, err, service.ErrUnknownUser)

	_, err = svc.Like(ctx, "desconocido", "ana")
	assert.ErrorIs(t, err, service.ErrUnknownUser)
}

func TestMatchNotifiedExactlyOnce(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newMatchService(t, "ana", "luis")

	_, err := svc.Like(ctx, "ana", "luis")
	require.NoError(t, err)
	assert.Empty(t, notifier.matches)

	_, err = svc.Like(ctx, "luis", "ana")
	require.NoError(t, err)
	require.Len(t, notifier.matches, 1)

	// Repeats after the transition never re-announce.
	_, err = svc.Like(ctx, "ana", "luis")
	require.NoError(t, err)
	_, err = svc.Like(ctx, "luis", "ana")
	require.NoError(t, err)
	assert.Len(t, notifier.matches, 1)
}

func TestLikesReceived(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMatchService(t, "ana", "luis", "carol")

	_, err := svc.Like(ctx, "ana", "luis")
	require.NoError(t, err)
	_, err = svc.Like(ctx, "carol", "luis")
	require.NoError(t, err)

	likes, err := svc.LikesReceived(ctx, "luis")
	require.NoError(t, err)
	require.Len(t, likes, 2)

	// ana has sent a like but received none.
	likes, err = svc.LikesReceived(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, likes)

	// Once luis likes ana back, that like is no longer pending.
	_, err = svc.Like(ctx, "luis", "ana")
	require.NoError(t, err)

	likes, err = svc.LikesReceived(ctx, "luis")
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "carol", likes[0].Profile.Username)
}

func TestMatches(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMatchService(t, "ana", "luis", "carol")

	_, err := svc.Like(ctx, "ana", "luis")
	require.NoError(t, err)
	_, err = svc.Like(ctx, "luis", "ana")
	require.NoError(t, err)
	_, err = svc.Like(ctx, "carol", "ana")
	require.NoError(t, err)

	matches, err := svc.Matches(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "luis", matches[0].Profile.Username)
	assert.Equal(t, "img/luis.png", matches[0].Profile.Photo)

	matches, err = svc.Matches(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
