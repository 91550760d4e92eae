package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	b1 := Generate("party-seed", 50)
	b2 := Generate("party-seed", 50)
	assert.Equal(t, b1, b2, "identical seeds must produce identical boards")

	b3 := Generate("other-seed", 50)
	assert.NotEqual(t, b1.Tiles, b3.Tiles, "different seeds should produce different boards")
}

func TestGenerate_BoundaryTiles(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 20, 50, 100} {
		b := Generate("seed", n)
		assert.Len(t, b.Tiles, n)
		assert.Equal(t, TileStart, b.Tiles[0].Type)
		assert.Equal(t, TileFinish, b.Tiles[n-1].Type)
	}
}

func TestGenerate_TileCountClamp(t *testing.T) {
	t.Parallel()

	b := Generate("seed", 0)
	assert.Len(t, b.Tiles, 2)
	assert.Equal(t, TileStart, b.Tiles[0].Type)
	assert.Equal(t, TileFinish, b.Tiles[1].Type)
}

func TestGenerate_InteriorTiles(t *testing.T) {
	t.Parallel()

	b := Generate("ABCDEF", 50)
	for _, tile := range b.Tiles[1 : len(b.Tiles)-1] {
		// Interior tiles follow the hash buckets and carry a slot reference
		// exactly when they are special.
		switch tile.Type {
		case TileChallenge, TileBonus, TilePenalty:
			assert.Equal(t, fmt.Sprintf("challenge_%d", tile.Position), tile.ChallengeID)
		case TileNormal:
			assert.Empty(t, tile.ChallengeID)
		default:
			t.Fatalf("unexpected interior tile type %s at %d", tile.Type, tile.Position)
		}
	}
}

func TestGenerate_MatchesHashBuckets(t *testing.T) {
	t.Parallel()

	seed := "XY"
	b := Generate(seed, 30)
	for i := 1; i < 29; i++ {
		h := (int('X') + int('Y')) * (i + 1) % 100
		want := bucketTileType(h)
		assert.Equal(t, want, b.Tiles[i].Type, "tile %d", i)
	}
}

func TestGenerateWithSpaces(t *testing.T) {
	t.Parallel()

	spaces := []CustomSpace{
		{ID: "s1", Name: "Quiz corner", Type: "QUIZ"},
		{ID: "s2", Name: "Jackpot", Type: "BONUS"},
		{ID: "s3", Name: "Pit", Type: "PENALTY"},
	}

	b := GenerateWithSpaces("custom", 60, spaces)
	assert.Equal(t, TileStart, b.Tiles[0].Type)
	assert.Equal(t, TileFinish, b.Tiles[59].Type)

	sawCustom := false
	for i := 1; i < 59; i++ {
		tile := b.Tiles[i]
		h := positionHash("custom", i)
		if h < 50 {
			sawCustom = true
			space := spaces[h%len(spaces)]
			assert.Equal(t, space.ID, tile.CustomSpaceID, "tile %d", i)
			assert.Equal(t, spaceTileType(space.Type), tile.Type, "tile %d", i)
		} else {
			assert.Equal(t, TileNormal, tile.Type, "tile %d", i)
			assert.Empty(t, tile.CustomSpaceID)
		}
	}
	assert.True(t, sawCustom, "expected at least one custom tile on a 60-tile board")
}

func TestSpaceTileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spaceType string
		want      TileType
	}{
		{"CHALLENGE", TileChallenge},
		{"QUIZ", TileChallenge},
		{"TRIVIA", TileChallenge},
		{"BONUS", TileBonus},
		{"PENALTY", TilePenalty},
		{"SOMETHING_ELSE", TileChallenge},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, spaceTileType(tt.spaceType), tt.spaceType)
	}
}
