package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dice-party/internal/game/board"
	"github.com/palemoky/dice-party/internal/game/challenge"
	"github.com/palemoky/dice-party/internal/game/room"
	"github.com/palemoky/dice-party/internal/game/vote"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client, 4*time.Hour, 5*time.Minute)
	return store, mr
}

func testRoom(id, code string) *room.Room {
	return &room.Room{
		ID:         id,
		Code:       code,
		HostID:     "conn1",
		MaxPlayers: 8,
		Status:     room.StatusWaiting,
		Players: []*room.Player{
			{ID: "conn1", SessionID: "sess1", RoomID: id, Name: "Alice", IsHost: true, IsConnected: true, JoinedAt: time.Now()},
		},
		Board:     board.Generate("seed", 20),
		CreatedAt: time.Now(),
	}
}

func TestRedisStore_SaveLoadRoom(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	r := testRoom("room-1", "ABCDEF")
	require.NoError(t, store.SaveRoom(ctx, r))

	loaded, err := store.LoadRoom(ctx, "room-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, r.Code, loaded.Code)
	assert.Equal(t, r.HostID, loaded.HostID)
	assert.Len(t, loaded.Players, 1)
	assert.Len(t, loaded.Board.Tiles, 20)

	// Missing rooms come back as (nil, nil).
	loaded, err = store.LoadRoom(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_RoomExpires(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRoom(ctx, testRoom("room-1", "ABCDEF")))
	require.NoError(t, store.SaveRoomCode(ctx, "ABCDEF", "room-1"))

	mr.FastForward(4*time.Hour + time.Minute)

	loaded, err := store.LoadRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Nil(t, loaded, "room key expires after its TTL")

	id, err := store.LoadRoomID(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.Empty(t, id, "code index expires with the room")
}

func TestRedisStore_RoomCodeIndex(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRoomCode(ctx, "XYZ234", "room-9"))

	id, err := store.LoadRoomID(ctx, "XYZ234")
	require.NoError(t, err)
	assert.Equal(t, "room-9", id)

	id, err = store.LoadRoomID(ctx, "NOPE22")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestRedisStore_Sessions(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	sess := &room.Session{SessionID: "sess1", RoomID: "room-1", ConnectionID: "conn1"}
	require.NoError(t, store.SaveSession(ctx, sess))

	loaded, err := store.LoadSession(ctx, "sess1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "room-1", loaded.RoomID)
	assert.Equal(t, "conn1", loaded.ConnectionID)

	// Reconnection rewrites the mapping in place.
	sess.ConnectionID = "conn1-new"
	require.NoError(t, store.SaveSession(ctx, sess))
	loaded, err = store.LoadSession(ctx, "sess1")
	require.NoError(t, err)
	assert.Equal(t, "conn1-new", loaded.ConnectionID)

	mr.FastForward(5 * time.Hour)
	loaded, err = store.LoadSession(ctx, "sess1")
	require.NoError(t, err)
	assert.Nil(t, loaded, "session mapping expires like the room")
}

func TestRedisStore_Votes(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	v := vote.NewSession("room-1", "conn2", "Bob", "challenge_4", 2)
	v.Cast("conn1", true)
	require.NoError(t, store.SaveVote(ctx, v))

	loaded, err := store.LoadVote(ctx, "room-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Bob", loaded.PlayerName)
	assert.Len(t, loaded.Votes, 1)

	// Resolved votes are deleted explicitly.
	require.NoError(t, store.DeleteVote(ctx, "room-1"))
	loaded, err = store.LoadVote(ctx, "room-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Abandoned votes fall out after the short TTL.
	require.NoError(t, store.SaveVote(ctx, v))
	mr.FastForward(6 * time.Minute)
	loaded, err = store.LoadVote(ctx, "room-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_Challenges(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	seed := []challenge.Challenge{
		{
			ID: "t1", Type: challenge.TypeTrivia, Category: "math", AgeRating: challenge.RatingAll, Points: 10,
			Trivia: &challenge.TriviaPayload{Question: "2+2?", Answers: []string{"3", "4"}, CorrectAnswer: 1},
		},
		{
			ID: "a1", Type: challenge.TypeAction, Category: "fun", AgeRating: challenge.RatingAll, Points: 5,
			Action: &challenge.ActionPayload{Action: "dance"},
		},
	}
	require.NoError(t, store.SeedChallenges(ctx, seed))

	all, err := store.ListChallenges(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	c, err := store.GetChallenge(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.IsTrivia())
	assert.Equal(t, 1, c.Trivia.CorrectAnswer)

	c, err = store.GetChallenge(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestRedisStore_Spaces(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSpace(ctx, board.CustomSpace{ID: "s1", Name: "Quiz", Type: "QUIZ"}))
	require.NoError(t, store.SaveSpace(ctx, board.CustomSpace{ID: "s2", Name: "Jackpot", Type: "BONUS"}))

	spaces, err := store.GetActiveSpaces(ctx)
	require.NoError(t, err)
	assert.Len(t, spaces, 2)
}

func TestRedisStore_Leaderboard(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddPoints(ctx, "sess-1", "Alice", 10))
	require.NoError(t, store.AddPoints(ctx, "sess-2", "Bob", 25))
	require.NoError(t, store.AddPoints(ctx, "sess-1", "Alice", 20))

	points, err := store.GetPoints(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), points)

	top, err := store.TopPlayers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Alice", top[0].PlayerName)
	assert.Equal(t, int64(30), top[0].Points)
	assert.Equal(t, "Bob", top[1].PlayerName)
}

func TestRedisStore_Leaderboard_SameNameDifferentSessions(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	// Two players sharing a nickname keep separate scores
	require.NoError(t, store.AddPoints(ctx, "sess-1", "Alex", 10))
	require.NoError(t, store.AddPoints(ctx, "sess-2", "Alex", 25))

	points, err := store.GetPoints(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), points)

	top, err := store.TopPlayers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Alex", top[0].PlayerName)
	assert.Equal(t, int64(25), top[0].Points)
	assert.Equal(t, "Alex", top[1].PlayerName)
	assert.Equal(t, int64(10), top[1].Points)
}
