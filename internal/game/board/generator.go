package board

import "fmt"

// Generate 根据种子生成确定性棋盘
// 相同的 (seed, tileCount) 总是产生完全相同的格子序列，跨进程重启不变
func Generate(seed string, tileCount int) Board {
	return GenerateWithSpaces(seed, tileCount, nil)
}

// GenerateWithSpaces 生成棋盘，可选自定义格子
// 有自定义格子时，哈希值落在特殊区间 [0,50) 的格子改为从自定义格子中选取
func GenerateWithSpaces(seed string, tileCount int, spaces []CustomSpace) Board {
	if tileCount < 2 {
		tileCount = 2
	}

	tiles := make([]Tile, tileCount)
	tiles[0] = Tile{Position: 0, Type: TileStart}
	tiles[tileCount-1] = Tile{Position: tileCount - 1, Type: TileFinish}

	for i := 1; i < tileCount-1; i++ {
		h := positionHash(seed, i)

		if len(spaces) > 0 && h < 50 {
			space := spaces[h%len(spaces)]
			tiles[i] = Tile{
				Position:      i,
				Type:          spaceTileType(space.Type),
				ChallengeID:   fmt.Sprintf("challenge_%d", i),
				CustomSpaceID: space.ID,
			}
			continue
		}

		typ := bucketTileType(h)
		tile := Tile{Position: i, Type: typ}
		if typ != TileNormal {
			tile.ChallengeID = fmt.Sprintf("challenge_%d", i)
		}
		tiles[i] = tile
	}

	return Board{Seed: seed, Tiles: tiles}
}

// positionHash 位置相关哈希：逐字符累加 ord(c)*(i+1)，再对 100 取模
func positionHash(seed string, i int) int {
	sum := 0
	for _, c := range seed {
		sum += int(c) * (i + 1)
	}
	return sum % 100
}

// bucketTileType 把哈希值分桶成格子类型
func bucketTileType(h int) TileType {
	switch {
	case h < 30:
		return TileChallenge
	case h < 40:
		return TileBonus
	case h < 50:
		return TilePenalty
	default:
		return TileNormal
	}
}

// spaceTileType 自定义格子语义类型到格子类型的映射
func spaceTileType(spaceType string) TileType {
	switch spaceType {
	case "BONUS":
		return TileBonus
	case "PENALTY":
		return TilePenalty
	default:
		// CHALLENGE/QUIZ/TRIVIA 以及其余类型都按挑战格处理
		return TileChallenge
	}
}
