package game

import (
	"fmt"

	"github.com/wfunc/lord-game/internal/models"
)

// ApplyExperience 结算玩家累积的经验值，返回升级次数。
// 每级门槛为 level*100；一次大额经验可以连升多级，每级
// 攻击+2、防御+1、生命上限+10 并完全恢复生命。
func ApplyExperience(p *models.Player) int {
	levelUps := 0
	for p.Exp >= p.XPToNextLevel() {
		p.Exp -= p.XPToNextLevel()
		p.Level++
		p.MaxHP += 10
		p.CurrentHP = p.MaxHP
		p.Attack += 2
		p.Defense++
		levelUps++
	}
	return levelUps
}

// LevelUpNews 升级新闻文本
func LevelUpNews(name string, level int) string {
	return fmt.Sprintf("%s has reached Level %d!", name, level)
}
