package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dice-party/internal/protocol"
	"github.com/palemoky/dice-party/internal/testutil"
)

// setupVotingRoom starts a three-player game with Alice on turn.
func setupVotingRoom(t *testing.T, h *Handler, server *testutil.FakeServer) (alice, bob, carol *testutil.SimpleClient) {
	t.Helper()
	alice = connect(server, "c1", "Alice")
	bob = connect(server, "c2", "Bob")
	carol = connect(server, "c3", "Carol")

	code := createRoom(t, h, alice)
	joinRoom(t, h, bob, code)
	joinRoom(t, h, carol, code)
	h.Handle(alice, protocol.MustNewMessage(protocol.MsgStartGame, nil))
	return alice, bob, carol
}

func castVote(h *Handler, c *testutil.SimpleClient, approve bool) {
	h.Handle(c, protocol.MustNewMessage(protocol.MsgCastVote, protocol.CastVotePayload{Vote: approve}))
}

func TestHandler_VoteFlow_MajorityApproves(t *testing.T) {
	t.Parallel()
	h, server, store := newTestHandler(t)
	alice, bob, carol := setupVotingRoom(t, h, server)

	h.Handle(alice, protocol.MustNewMessage(protocol.MsgStartVote, protocol.StartVotePayload{
		ChallengeID: "builtin_action_1",
	}))

	starts := bob.MessagesOfType(protocol.MsgVoteStarted)
	require.Len(t, starts, 1)
	payload, err := protocol.ParsePayload[protocol.VoteStartedPayload](starts[0])
	require.NoError(t, err)
	assert.Equal(t, 2, payload.TotalVoters)

	castVote(h, bob, true)

	// One of two votes in: progress broadcast, no result yet
	updates := carol.MessagesOfType(protocol.MsgVoteUpdate)
	require.Len(t, updates, 1)
	update, err := protocol.ParsePayload[protocol.VoteUpdatePayload](updates[0])
	require.NoError(t, err)
	assert.Equal(t, 1, update.VotesCast)
	assert.Empty(t, carol.MessagesOfType(protocol.MsgVoteResult))

	castVote(h, carol, true)

	results := alice.MessagesOfType(protocol.MsgVoteResult)
	require.Len(t, results, 1)
	result, err := protocol.ParsePayload[protocol.VoteResultPayload](results[0])
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.YesVotes)
	assert.Equal(t, alice.GetID(), result.PlayerID)

	// Approved challenge pays out its points to the challenger
	completions := bob.MessagesOfType(protocol.MsgChallengeCompleted)
	require.Len(t, completions, 1)
	completed, err := protocol.ParsePayload[protocol.ChallengeCompletedPayload](completions[0])
	require.NoError(t, err)
	assert.Equal(t, 10, completed.Points)

	points, err := store.GetPoints(t.Context(), alice.GetSessionID())
	require.NoError(t, err)
	assert.EqualValues(t, 10, points)

	// Turn moves on after the verdict
	turns := alice.MessagesOfType(protocol.MsgTurnChanged)
	require.GreaterOrEqual(t, len(turns), 2)
	turn, err := protocol.ParsePayload[protocol.TurnChangedPayload](turns[len(turns)-1])
	require.NoError(t, err)
	assert.Equal(t, bob.GetID(), turn.PlayerID)
}

func TestHandler_VoteFlow_TieFails(t *testing.T) {
	t.Parallel()
	h, server, store := newTestHandler(t)
	alice, bob, carol := setupVotingRoom(t, h, server)

	h.Handle(alice, protocol.MustNewMessage(protocol.MsgStartVote, protocol.StartVotePayload{
		ChallengeID: "builtin_action_1",
	}))
	castVote(h, bob, true)
	castVote(h, carol, false)

	results := alice.MessagesOfType(protocol.MsgVoteResult)
	require.Len(t, results, 1)
	result, err := protocol.ParsePayload[protocol.VoteResultPayload](results[0])
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.YesVotes)
	assert.Equal(t, 1, result.NoVotes)

	points, err := store.GetPoints(t.Context(), alice.GetSessionID())
	require.NoError(t, err)
	assert.Zero(t, points)
}

func TestHandler_CastVote_Revote_DoesNotDoubleCount(t *testing.T) {
	t.Parallel()
	h, server, _ := newTestHandler(t)
	alice, bob, _ := setupVotingRoom(t, h, server)

	h.Handle(alice, protocol.MustNewMessage(protocol.MsgStartVote, protocol.StartVotePayload{
		ChallengeID: "builtin_action_1",
	}))
	castVote(h, bob, false)
	castVote(h, bob, true) // changed their mind

	// Still waiting on Carol
	assert.Empty(t, alice.MessagesOfType(protocol.MsgVoteResult))

	updates := alice.MessagesOfType(protocol.MsgVoteUpdate)
	require.Len(t, updates, 2)
	update, err := protocol.ParsePayload[protocol.VoteUpdatePayload](updates[1])
	require.NoError(t, err)
	assert.Equal(t, 1, update.VotesCast)
}

func TestHandler_CastVote_NoVoteInProgress(t *testing.T) {
	t.Parallel()
	h, server, _ := newTestHandler(t)
	_, bob, _ := setupVotingRoom(t, h, server)

	castVote(h, bob, true)

	assert.Equal(t, protocol.ErrCodeVoteNotFound, lastErrorCode(t, bob))
}

func TestHandler_CastVote_ChallengerCannotVote(t *testing.T) {
	t.Parallel()
	h, server, _ := newTestHandler(t)
	alice, _, _ := setupVotingRoom(t, h, server)

	h.Handle(alice, protocol.MustNewMessage(protocol.MsgStartVote, protocol.StartVotePayload{
		ChallengeID: "builtin_action_1",
	}))
	castVote(h, alice, true)

	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastErrorCode(t, alice))
	assert.Empty(t, alice.MessagesOfType(protocol.MsgVoteUpdate))
}

func TestHandler_StartVote_OnlyOnYourTurn(t *testing.T) {
	t.Parallel()
	h, server, _ := newTestHandler(t)
	_, bob, _ := setupVotingRoom(t, h, server)

	h.Handle(bob, protocol.MustNewMessage(protocol.MsgStartVote, protocol.StartVotePayload{
		ChallengeID: "builtin_action_1",
	}))

	assert.Equal(t, protocol.ErrCodeNotYourTurn, lastErrorCode(t, bob))
}
