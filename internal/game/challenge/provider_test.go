package challenge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory Source for provider tests.
type fakeSource struct {
	challenges []Challenge
	err        error
}

func (f *fakeSource) ListChallenges(ctx context.Context) ([]Challenge, error) {
	return f.challenges, f.err
}

func (f *fakeSource) GetChallenge(ctx context.Context, id string) (*Challenge, error) {
	for i := range f.challenges {
		if f.challenges[i].ID == id {
			return &f.challenges[i], nil
		}
	}
	return nil, errors.New("not found")
}

func TestProvider_GetRandomChallenge_FromSource(t *testing.T) {
	t.Parallel()

	src := &fakeSource{challenges: []Challenge{
		{ID: "c1", Type: TypeTrivia, AgeRating: RatingAll, Trivia: &TriviaPayload{Question: "q", Answers: []string{"a"}}},
		{ID: "c2", Type: TypeAction, AgeRating: RatingAll, Action: &ActionPayload{Action: "do"}},
	}}
	p := NewProvider(src)

	c := p.GetRandomChallenge(context.Background(), TypeAction, RatingAll)
	require.NotNil(t, c)
	assert.Equal(t, "c2", c.ID)
}

func TestProvider_GetRandomChallenge_RelaxesTypeFilter(t *testing.T) {
	t.Parallel()

	src := &fakeSource{challenges: []Challenge{
		{ID: "c1", Type: TypeTrivia, AgeRating: RatingAll, Trivia: &TriviaPayload{}},
	}}
	p := NewProvider(src)

	// No DRINKING challenge in the source; the type filter is dropped before
	// falling back to the catalog.
	c := p.GetRandomChallenge(context.Background(), TypeDrinking, RatingAll)
	require.NotNil(t, c)
	assert.Equal(t, "c1", c.ID)
}

func TestProvider_GetRandomChallenge_SourceUnavailable(t *testing.T) {
	t.Parallel()

	p := NewProvider(&fakeSource{err: errors.New("redis down")})

	c := p.GetRandomChallenge(context.Background(), TypeTrivia, RatingAll)
	require.NotNil(t, c)
	assert.Equal(t, TypeTrivia, c.Type)
	assert.True(t, c.AgeRating == RatingAll)
}

func TestProvider_GetRandomChallenge_RatingFilter(t *testing.T) {
	t.Parallel()

	p := NewProvider(nil)

	// TEEN request may yield TEEN or ALL entries, never ADULT.
	for i := 0; i < 50; i++ {
		c := p.GetRandomChallenge(context.Background(), "", RatingTeen)
		require.NotNil(t, c)
		assert.NotEqual(t, RatingAdult, c.AgeRating)
	}
}

func TestProvider_GetRandomChallenge_FallsBackToAllRated(t *testing.T) {
	t.Parallel()

	p := NewProvider(nil)
	// Replace the catalog so the requested rating matches nothing.
	p.catalog = []Challenge{
		{ID: "adult", Type: TypeDrinking, AgeRating: RatingAdult, Action: &ActionPayload{}},
		{ID: "all", Type: TypeAction, AgeRating: RatingAll, Action: &ActionPayload{}},
	}

	c := p.GetRandomChallenge(context.Background(), TypeDrinking, RatingTeen)
	require.NotNil(t, c)
	assert.Equal(t, "all", c.ID)
}

func TestProvider_ValidateTriviaAnswer(t *testing.T) {
	t.Parallel()

	src := &fakeSource{challenges: []Challenge{
		{
			ID: "t1", Type: TypeTrivia, AgeRating: RatingAll,
			Trivia: &TriviaPayload{Question: "2+2?", Answers: []string{"3", "4"}, CorrectAnswer: 1},
		},
		{ID: "a1", Type: TypeAction, AgeRating: RatingAll, Action: &ActionPayload{Action: "x"}},
	}}
	p := NewProvider(src)
	ctx := context.Background()

	assert.True(t, p.ValidateTriviaAnswer(ctx, "t1", 1))
	assert.False(t, p.ValidateTriviaAnswer(ctx, "t1", 0))
	assert.False(t, p.ValidateTriviaAnswer(ctx, "a1", 0), "non-trivia challenge never validates")
	assert.False(t, p.ValidateTriviaAnswer(ctx, "missing", 0))
}

func TestProvider_GetChallenge_BuiltinFallback(t *testing.T) {
	t.Parallel()

	p := NewProvider(&fakeSource{})
	c := p.GetChallenge(context.Background(), "builtin_trivia_1")
	require.NotNil(t, c)
	assert.True(t, c.IsTrivia())
}
