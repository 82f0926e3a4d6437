package game

import (
	"math/rand"
)

// archetype 怪物原型（名称、基础生命、基础攻击）
type archetype struct {
	name       string
	baseHP     int
	baseAttack int
}

// 固定怪物原型表
var archetypes = []archetype{
	{"Wild Boar", 15, 4},
	{"Goblin", 20, 5},
	{"Ogre", 30, 6},
	{"Giant Spider", 25, 5},
	{"Black Knight", 35, 8},
	{"Forest Dragon", 50, 12},
}

// GenerateMonster 按玩家等级生成一只随机怪物。
// 随机源由调用方注入，便于测试时复现结果。
func GenerateMonster(playerLevel int, rng *rand.Rand) *Monster {
	if playerLevel < 1 {
		playerLevel = 1
	}

	a := archetypes[rng.Intn(len(archetypes))]

	// 每两级提升一次缩放系数
	levelFactor := 1 + (playerLevel-1)/2
	hp := a.baseHP*levelFactor + rng.Intn(5*playerLevel+1)
	attack := a.baseAttack*levelFactor + rng.Intn(playerLevel+1)

	expReward := hp/2 + attack
	if expReward < 1 {
		expReward = 1
	}
	goldReward := rng.Intn(attack*3) + 1

	return &Monster{
		Name:       a.name,
		HP:         hp,
		Attack:     attack,
		ExpReward:  expReward,
		GoldReward: goldReward,
	}
}
