package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenerateMonster_Bounds 测试怪物属性落在公式范围内
func TestGenerateMonster_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for level := 1; level <= 20; level++ {
		for i := 0; i < 50; i++ {
			m := GenerateMonster(level, rng)

			factor := 1 + (level-1)/2
			minHP, maxHP := 0, 0
			minAtk, maxAtk := 0, 0
			found := false
			for _, a := range archetypes {
				if a.name == m.Name {
					found = true
					minHP = a.baseHP * factor
					maxHP = a.baseHP*factor + 5*level
					minAtk = a.baseAttack * factor
					maxAtk = a.baseAttack*factor + level
				}
			}
			assert.True(t, found, "未知怪物: %s", m.Name)
			assert.GreaterOrEqual(t, m.HP, minHP)
			assert.LessOrEqual(t, m.HP, maxHP)
			assert.GreaterOrEqual(t, m.Attack, minAtk)
			assert.LessOrEqual(t, m.Attack, maxAtk)

			// 奖励公式
			assert.Equal(t, m.HP/2+m.Attack, m.ExpReward)
			assert.GreaterOrEqual(t, m.GoldReward, 1)
			assert.LessOrEqual(t, m.GoldReward, m.Attack*3)
		}
	}
}

// TestGenerateMonster_Deterministic 相同种子生成相同怪物
func TestGenerateMonster_Deterministic(t *testing.T) {
	a := GenerateMonster(5, rand.New(rand.NewSource(7)))
	b := GenerateMonster(5, rand.New(rand.NewSource(7)))

	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.HP, b.HP)
	assert.Equal(t, a.Attack, b.Attack)
	assert.Equal(t, a.ExpReward, b.ExpReward)
	assert.Equal(t, a.GoldReward, b.GoldReward)
}

// TestGenerateMonster_LevelScaling 等级系数每两级提升一次
func TestGenerateMonster_LevelScaling(t *testing.T) {
	assert.Equal(t, 1, 1+(1-1)/2)
	assert.Equal(t, 1, 1+(2-1)/2)
	assert.Equal(t, 2, 1+(3-1)/2)
	assert.Equal(t, 2, 1+(4-1)/2)
	assert.Equal(t, 3, 1+(5-1)/2)
}
