package game

import (
	"fmt"
	"math/rand"

	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/models"
)

// rollDamage 掷出一次伤害，范围 [1, attack]
func rollDamage(rng *rand.Rand, attack int) int {
	if attack < 1 {
		attack = 1
	}
	return rng.Intn(attack) + 1
}

// FightMonster 结算一次森林遭遇。玩家每回合先手；怪物存活则反击。
// 直接修改传入的玩家副本，持久化由调用方负责。
// 无论胜负，森林战斗次数恰好扣减一次。
func FightMonster(p *models.Player, m *Monster, rng *rand.Rand) (*EncounterResult, error) {
	if !p.Alive {
		return nil, errors.New(errors.ErrPlayerDead, p.Name)
	}
	if p.ForestFights <= 0 {
		return nil, errors.New(errors.ErrNoForestFights, p.Name)
	}

	p.ForestFights--

	result := &EncounterResult{Monster: m}

	for p.Alive && m.HP > 0 {
		// 玩家先手
		damage := rollDamage(rng, p.Attack)
		m.HP -= damage
		if m.HP < 0 {
			m.HP = 0
		}
		result.Rounds = append(result.Rounds, Round{
			Attacker:   p.Name,
			Defender:   m.Name,
			Damage:     damage,
			DefenderHP: m.HP,
		})

		if m.HP == 0 {
			// 怪物被击败，发放奖励并结算升级
			result.Victory = true
			result.ExpGained = m.ExpReward
			result.GoldGained = m.GoldReward
			p.Exp += m.ExpReward
			p.Gold += m.GoldReward

			levelBefore := p.Level
			result.LevelUps = ApplyExperience(p)
			for lv := levelBefore + 1; lv <= p.Level; lv++ {
				result.News = append(result.News, LevelUpNews(p.Name, lv))
			}

			// 只记录强力怪物的击杀，避免新闻刷屏
			if m.Attack > NotableMonsterAttack {
				result.News = append(result.News,
					fmt.Sprintf("%s defeated a %s in the forest.", p.Name, m.Name))
			}
			break
		}

		// 怪物反击
		damage = rollDamage(rng, m.Attack)
		p.ApplyDamage(damage)
		result.Rounds = append(result.Rounds, Round{
			Attacker:   m.Name,
			Defender:   p.Name,
			Damage:     damage,
			DefenderHP: p.CurrentHP,
		})

		if !p.Alive {
			// 玩家死亡新闻必定记录
			result.News = append(result.News,
				fmt.Sprintf("%s was slain by a %s in the forest.", p.Name, m.Name))
		}
	}

	return result, nil
}

// Duel 结算一场玩家决斗。挑战者每回合先手，与森林战斗同一回合算法。
// 胜者掠夺败者一半金币（向下取整，总量守恒）；仅挑战者获胜时
// 额外获得 50×对手等级 的经验。两名玩家的副本都会被修改，
// 调用方必须以单个原子事务写回两条记录。
func Duel(challenger, target *models.Player, rng *rand.Rand) (*DuelResult, error) {
	if !challenger.Alive {
		return nil, errors.New(errors.ErrPlayerDead, challenger.Name)
	}
	if !target.Alive {
		return nil, errors.New(errors.ErrOpponentDead, target.Name)
	}

	result := &DuelResult{}

	for challenger.Alive && target.Alive {
		// 挑战者先手
		damage := rollDamage(rng, challenger.Attack)
		target.ApplyDamage(damage)
		result.Rounds = append(result.Rounds, Round{
			Attacker:   challenger.Name,
			Defender:   target.Name,
			Damage:     damage,
			DefenderHP: target.CurrentHP,
		})

		if !target.Alive {
			result.ChallengerWon = true
			result.WinnerName = challenger.Name
			result.LoserName = target.Name

			// 掠夺一半金币
			looted := target.Gold / 2
			target.Gold -= looted
			challenger.Gold += looted
			result.GoldLooted = looted

			// 决斗胜利经验
			expGain := target.Level * DuelExpPerLevel
			challenger.Exp += expGain
			result.ExpGained = expGain

			levelBefore := challenger.Level
			result.LevelUps = ApplyExperience(challenger)
			for lv := levelBefore + 1; lv <= challenger.Level; lv++ {
				result.News = append(result.News, LevelUpNews(challenger.Name, lv))
			}

			result.News = append(result.News,
				fmt.Sprintf("%s defeated %s in a duel!", challenger.Name, target.Name))
			break
		}

		// 对手反击
		damage = rollDamage(rng, target.Attack)
		challenger.ApplyDamage(damage)
		result.Rounds = append(result.Rounds, Round{
			Attacker:   target.Name,
			Defender:   challenger.Name,
			Damage:     damage,
			DefenderHP: challenger.CurrentHP,
		})

		if !challenger.Alive {
			result.ChallengerWon = false
			result.WinnerName = target.Name
			result.LoserName = challenger.Name

			// 败者被掠夺一半金币；挑战失败没有经验补偿
			looted := challenger.Gold / 2
			challenger.Gold -= looted
			target.Gold += looted
			result.GoldLooted = looted

			result.News = append(result.News,
				fmt.Sprintf("%s was killed by %s in a duel!", challenger.Name, target.Name))
			break
		}
	}

	return result, nil
}
