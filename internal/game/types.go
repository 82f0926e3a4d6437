package game

// 游戏规则常量
const (
	// MaxDailyForestFights 每日森林战斗次数上限
	MaxDailyForestFights = 10

	// 新角色初始属性
	StartingLevel   = 1
	StartingGold    = 100
	StartingHP      = 20
	StartingAttack  = 5
	StartingDefense = 2

	// NotableMonsterAttack 击杀新闻的怪物攻击力门槛，低于此值不记录
	NotableMonsterAttack = 10

	// DuelExpPerLevel 决斗胜利经验 = 对手等级 × 该系数
	DuelExpPerLevel = 50

	// TavernDrinkPrice 酒馆饮品价格
	TavernDrinkPrice = 5

	// MarriageRomanceThreshold 求婚成功所需好感度
	MarriageRomanceThreshold = 5
)

// Monster 森林怪物（仅存在于一次遭遇中，不持久化）
type Monster struct {
	Name       string `json:"name"`
	HP         int    `json:"hp"`
	Attack     int    `json:"attack"`
	ExpReward  int    `json:"-"`
	GoldReward int    `json:"-"`
}

// Round 一个攻击回合的记录，供渲染层回放
type Round struct {
	Attacker   string `json:"attacker"`
	Defender   string `json:"defender"`
	Damage     int    `json:"damage"`
	DefenderHP int    `json:"defender_hp"`
}

// EncounterResult 一次森林遭遇的结算
type EncounterResult struct {
	Monster    *Monster `json:"monster"`
	Victory    bool     `json:"victory"`
	ExpGained  int      `json:"exp_gained"`
	GoldGained int      `json:"gold_gained"`
	LevelUps   int      `json:"level_ups"`
	Rounds     []Round  `json:"rounds"`
	News       []string `json:"-"` // 结算产生的新闻事件，尽力而为地记录
}

// DuelResult 一次决斗的结算
type DuelResult struct {
	ChallengerWon bool    `json:"challenger_won"`
	WinnerName    string  `json:"winner_name"`
	LoserName     string  `json:"loser_name"`
	GoldLooted    int     `json:"gold_looted"`
	ExpGained     int     `json:"exp_gained"`
	LevelUps      int     `json:"level_ups"`
	Rounds        []Round `json:"rounds"`
	News          []string `json:"-"`
}
