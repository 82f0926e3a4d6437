package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/models"
)

func testPlayer(name string) *models.Player {
	return &models.Player{
		Name:         name,
		Level:        StartingLevel,
		Gold:         StartingGold,
		MaxHP:        StartingHP,
		CurrentHP:    StartingHP,
		Attack:       StartingAttack,
		Defense:      StartingDefense,
		ForestFights: MaxDailyForestFights,
		Alive:        true,
	}
}

// TestFightMonster_Victory 测试击败弱怪并获得奖励
func TestFightMonster_Victory(t *testing.T) {
	p := testPlayer("hero")
	m := &Monster{Name: "Goblin", HP: 1, Attack: 5, ExpReward: 12, GoldReward: 8}

	result, err := FightMonster(p, m, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.True(t, result.Victory)
	assert.Equal(t, 12, result.ExpGained)
	assert.Equal(t, 8, result.GoldGained)
	assert.Equal(t, 12, p.Exp)
	assert.Equal(t, StartingGold+8, p.Gold)
	assert.Equal(t, MaxDailyForestFights-1, p.ForestFights)
	assert.True(t, p.Alive)

	// 攻击力 5 不超过门槛，不产生击杀新闻
	assert.Empty(t, result.News)
}

// TestFightMonster_NotableKill 强力怪物的击杀才记入新闻
func TestFightMonster_NotableKill(t *testing.T) {
	p := testPlayer("hero")
	m := &Monster{Name: "Forest Dragon", HP: 1, Attack: 12, ExpReward: 30, GoldReward: 20}

	result, err := FightMonster(p, m, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	require.Len(t, result.News, 1)
	assert.Contains(t, result.News[0], "defeated a Forest Dragon")
}

// TestFightMonster_PlayerDeath 玩家死亡：生命归零、存活为假、
// 恰好一条死亡新闻、战斗次数恰好扣一次
func TestFightMonster_PlayerDeath(t *testing.T) {
	p := testPlayer("victim")
	p.CurrentHP = 5
	// 怪物生命高到打不死，玩家必然战死
	m := &Monster{Name: "Ogre", HP: 100000, Attack: 20, ExpReward: 1, GoldReward: 1}

	result, err := FightMonster(p, m, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.False(t, result.Victory)
	assert.False(t, p.Alive)
	assert.Equal(t, 0, p.CurrentHP)
	assert.Equal(t, MaxDailyForestFights-1, p.ForestFights)

	deathNews := 0
	for _, n := range result.News {
		if strings.Contains(n, "was slain by") {
			deathNews++
		}
	}
	assert.Equal(t, 1, deathNews)
}

// TestFightMonster_ZeroFightGuard 战斗次数用尽时拒绝进入遭遇且无副作用
func TestFightMonster_ZeroFightGuard(t *testing.T) {
	p := testPlayer("tired")
	p.ForestFights = 0
	m := &Monster{Name: "Goblin", HP: 10, Attack: 5, ExpReward: 1, GoldReward: 1}

	_, err := FightMonster(p, m, rand.New(rand.NewSource(1)))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoForestFights))
	assert.Equal(t, 0, p.ForestFights)
	assert.Equal(t, StartingGold, p.Gold)
	assert.Equal(t, 0, p.Exp)
}

// TestFightMonster_DeadGuard 死亡玩家不能进入遭遇
func TestFightMonster_DeadGuard(t *testing.T) {
	p := testPlayer("ghost")
	p.Alive = false
	p.CurrentHP = 0
	m := &Monster{Name: "Goblin", HP: 10, Attack: 5, ExpReward: 1, GoldReward: 1}

	_, err := FightMonster(p, m, rand.New(rand.NewSource(1)))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPlayerDead))
	assert.Equal(t, MaxDailyForestFights, p.ForestFights, "前置检查失败不应扣减次数")
}

// TestFightMonster_InvariantAfterCombat 战斗后玩家状态满足不变量
func TestFightMonster_InvariantAfterCombat(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		p := testPlayer("hero")
		m := GenerateMonster(p.Level, rng)

		_, err := FightMonster(p, m, rng)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, p.CurrentHP, 0)
		assert.LessOrEqual(t, p.CurrentHP, p.MaxHP)
		assert.Equal(t, p.CurrentHP > 0, p.Alive)
		assert.GreaterOrEqual(t, p.ForestFights, 0)
		assert.Less(t, p.Exp, p.XPToNextLevel())
	}
}

// TestDuel_ChallengerWins 挑战者获胜：掠夺一半金币并获得经验
func TestDuel_ChallengerWins(t *testing.T) {
	challenger := testPlayer("alice")
	target := testPlayer("bob")
	target.Level = 3
	target.Gold = 101
	target.CurrentHP = 1 // 第一回合必然倒下

	result, err := Duel(challenger, target, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.True(t, result.ChallengerWon)
	assert.Equal(t, "alice", result.WinnerName)
	assert.Equal(t, 50, result.GoldLooted) // 101/2 向下取整
	assert.Equal(t, 51, target.Gold)
	assert.Equal(t, StartingGold+50, challenger.Gold)
	assert.Equal(t, 3*DuelExpPerLevel, result.ExpGained)
	assert.False(t, target.Alive)
	assert.Equal(t, 0, target.CurrentHP)

	// 150经验：1级门槛100升到2级，剩50
	assert.Equal(t, 2, challenger.Level)
	assert.Equal(t, 50, challenger.Exp)
	assert.Equal(t, 1, result.LevelUps)

	// 决斗新闻无条件记录
	require.NotEmpty(t, result.News)
	assert.Contains(t, result.News[len(result.News)-1], "defeated bob in a duel")
}

// TestDuel_ChallengerLoses 挑战者失败：被掠夺金币，无经验补偿
func TestDuel_ChallengerLoses(t *testing.T) {
	challenger := testPlayer("alice")
	challenger.Gold = 77
	challenger.CurrentHP = 1
	target := testPlayer("bob")
	target.MaxHP = 100000
	target.CurrentHP = 100000 // 打不死，挑战者必败

	result, err := Duel(challenger, target, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	assert.False(t, result.ChallengerWon)
	assert.Equal(t, "bob", result.WinnerName)
	assert.Equal(t, 38, result.GoldLooted) // 77/2
	assert.Equal(t, 39, challenger.Gold)
	assert.Equal(t, StartingGold+38, target.Gold)
	assert.Equal(t, 0, result.ExpGained, "败方胜者不获得经验")
	assert.Equal(t, 0, target.Exp)
	assert.False(t, challenger.Alive)
}

// TestDuel_GoldConservation 金币只转移，不凭空产生或销毁
func TestDuel_GoldConservation(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		challenger := testPlayer("alice")
		challenger.Gold = 123
		target := testPlayer("bob")
		target.Gold = 457

		before := challenger.Gold + target.Gold
		result, err := Duel(challenger, target, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		assert.Equal(t, before, challenger.Gold+target.Gold)
		if result.ChallengerWon {
			assert.Equal(t, 457/2, result.GoldLooted)
		} else {
			assert.Equal(t, 123/2, result.GoldLooted)
		}
	}
}

// TestDuel_Preconditions 决斗双方必须存活
func TestDuel_Preconditions(t *testing.T) {
	dead := testPlayer("dead")
	dead.Alive = false
	dead.CurrentHP = 0
	alive := testPlayer("alive")

	_, err := Duel(dead, alive, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPlayerDead))

	_, err = Duel(alive, dead, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOpponentDead))
}
