package server

import (
	"fmt"
	"math/rand/v2"
)

// 派对风格的默认昵称词库，玩家没填名字时随机组合一个
var (
	nicknameAdjectives = []string{
		"Lucky", "Sneaky", "Dizzy", "Mighty", "Wobbly",
		"Turbo", "Sleepy", "Spicy", "Jolly", "Fuzzy",
	}
	nicknameAnimals = []string{
		"Panda", "Llama", "Otter", "Penguin", "Raccoon",
		"Walrus", "Gecko", "Ferret", "Moose", "Badger",
	}
)

// GenerateNickname 生成一个随机默认昵称，如 "Lucky Otter 42"
func GenerateNickname() string {
	adj := nicknameAdjectives[rand.IntN(len(nicknameAdjectives))]
	animal := nicknameAnimals[rand.IntN(len(nicknameAnimals))]
	return fmt.Sprintf("%s %s %d", adj, animal, rand.IntN(90)+10)
}
