package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/game"
	"github.com/wfunc/lord-game/internal/models"
	"github.com/wfunc/lord-game/internal/service"
	"go.uber.org/zap"
)

// Session 一条文字界面游戏会话
// 可以跑在终端标准输入输出上，也可以跑在WebSocket连接上
type Session struct {
	in    *bufio.Reader
	out   io.Writer
	auth  service.AuthService
	game  service.GameService
	reset service.ResetService
	log   *zap.Logger

	player *models.Player
}

// NewSession 创建会话
func NewSession(rw io.ReadWriter, auth service.AuthService, gameSvc service.GameService, reset service.ResetService, log *zap.Logger) *Session {
	return &Session{
		in:    bufio.NewReader(rw),
		out:   rw,
		auth:  auth,
		game:  gameSvc,
		reset: reset,
		log:   log,
	}
}

// Run 运行会话主循环，连接断开或玩家退出时返回
func (s *Session) Run(ctx context.Context) error {
	s.printf("%s\n", titleBanner)

	// 每次有人进门都检查是否跨天
	if _, err := s.reset.MaybeReset(ctx); err != nil {
		s.log.Warn("每日重置检查失败", zap.Error(err))
	}

	if err := s.loginFlow(ctx); err != nil {
		return err
	}

	return s.townLoop(ctx)
}

// loginFlow 登录或创建角色
func (s *Session) loginFlow(ctx context.Context) error {
	for {
		name, err := s.prompt("What is your name, brave warrior? ")
		if err != nil {
			return err
		}
		if name == "" {
			continue
		}

		password, err := s.prompt("Password (leave empty if none): ")
		if err != nil {
			return err
		}

		resp, err := s.auth.Login(ctx, &service.LoginRequest{Name: name, Password: password})
		if err == nil {
			s.player = resp.Player
			s.printf("%sWelcome back, %s!%s\n\n", ansiGreen, s.player.Name, ansiReset)
			return nil
		}

		if errors.Is(err, errors.ErrPlayerNotFound) {
			answer, perr := s.prompt(fmt.Sprintf("No hero named %s exists. Create them? (y/n) ", name))
			if perr != nil {
				return perr
			}
			if !strings.EqualFold(answer, "y") {
				continue
			}
			resp, rerr := s.auth.Register(ctx, &service.RegisterRequest{Name: name, Password: password})
			if rerr != nil {
				s.printf("%s%s%s\n", ansiRed, rerr.Error(), ansiReset)
				continue
			}
			s.player = resp.Player
			s.printf("%sA new hero is born: %s!%s\n\n", ansiYellow, s.player.Name, ansiReset)
			return nil
		}

		s.printf("%s%s%s\n", ansiRed, err.Error(), ansiReset)
	}
}

// townLoop 城镇主菜单
func (s *Session) townLoop(ctx context.Context) error {
	for {
		s.printStats()
		s.printf("\n%s-- The Town Square --%s\n", ansiCyan, ansiReset)
		s.printf("(F)orest  (A)ttack another player  (T)avern  (N)ews  (L)eaderboard  (Q)uit\n")

		choice, err := s.prompt("Your choice: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "f":
			s.forest(ctx)
		case "a":
			s.duel(ctx)
		case "t":
			if err := s.tavern(ctx); err != nil {
				return err
			}
		case "n":
			s.news(ctx)
		case "l":
			s.leaderboard(ctx)
		case "q":
			s.printf("Farewell, %s. The realm awaits your return.\n", s.player.Name)
			return nil
		default:
			s.printf("The townsfolk don't understand you.\n")
		}
	}
}

// forest 森林战斗，剩余次数内可连续战斗
func (s *Session) forest(ctx context.Context) {
	s.printf("%s\n", forestBanner)

	for {
		result, player, err := s.game.ForestEncounter(ctx, s.player.ID)
		if err != nil {
			s.printError(err)
			return
		}
		s.player = player

		s.printf("%sYou encounter a %s! (HP %d, Attack %d)%s\n",
			ansiYellow, result.Monster.Name, result.Monster.HP, result.Monster.Attack, ansiReset)
		s.printRounds(result.Rounds)

		if result.Victory {
			s.printf("%sThe %s falls! You gain %d experience and %d gold.%s\n",
				ansiGreen, result.Monster.Name, result.ExpGained, result.GoldGained, ansiReset)
			if result.LevelUps > 0 {
				s.printf("%s*** You have reached Level %d! ***%s\n", ansiYellow, s.player.Level, ansiReset)
			}
		} else {
			s.printf("%sYou have been slain by the %s. Return tomorrow...%s\n",
				ansiRed, result.Monster.Name, ansiReset)
		}
		s.printf("Forest fights remaining today: %d\n", s.player.ForestFights)

		if !result.Victory {
			return
		}
		if s.player.ForestFights <= 0 {
			s.printf("You are too exhausted to fight any more today.\n")
			return
		}
		choice, err := s.prompt("Fight another monster? (Y/N) ")
		if err != nil || !strings.EqualFold(choice, "y") {
			return
		}
	}
}

// duel 挑战其他玩家
func (s *Session) duel(ctx context.Context) {
	opponents, err := s.game.ListOpponents(ctx, s.player.ID)
	if err != nil {
		s.printError(err)
		return
	}
	if len(opponents) == 0 {
		s.printf("There are no living heroes to challenge.\n")
		return
	}

	s.printf("\n%s-- Heroes of the Realm --%s\n", ansiCyan, ansiReset)
	for i, op := range opponents {
		s.printf("  %d. %s (Level %d)\n", i+1, op.Name, op.Level)
	}

	choice, err := s.prompt("Challenge whom? (number, 0 to cancel) ")
	if err != nil {
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 0 || idx > len(opponents) {
		s.printf("No such hero.\n")
		return
	}
	if idx == 0 {
		return
	}

	target := opponents[idx-1]
	result, player, err := s.game.Duel(ctx, s.player.ID, target.ID)
	if err != nil {
		s.printError(err)
		return
	}
	s.player = player

	s.printRounds(result.Rounds)
	if result.ChallengerWon {
		s.printf("%sYou have defeated %s and looted %d gold!%s\n",
			ansiGreen, result.LoserName, result.GoldLooted, ansiReset)
		s.printf("You gain %d experience.\n", result.ExpGained)
		if result.LevelUps > 0 {
			s.printf("%s*** You have reached Level %d! ***%s\n", ansiYellow, s.player.Level, ansiReset)
		}
	} else {
		s.printf("%s%s has bested you in combat. You lose %d gold.%s\n",
			ansiRed, result.WinnerName, result.GoldLooted, ansiReset)
	}
}

// tavern 酒馆
func (s *Session) tavern(ctx context.Context) error {
	for {
		s.printf("\n%s-- The Red Dragon Inn --%s\n", ansiCyan, ansiReset)
		s.printf("Violetta the barmaid polishes a mug and glances your way.\n")
		s.printf("(D)rink ale (%d gold)  (F)lirt with Violetta  (G)ossip  (R)eturn to town\n", game.TavernDrinkPrice)

		choice, err := s.prompt("Your choice: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "d":
			result, err := s.game.TavernDrink(ctx, s.player.ID)
			if err != nil {
				s.printError(err)
				continue
			}
			s.player.Gold -= result.GoldSpent
			s.player.CurrentHP = result.CurrentHP
			s.printf("%sThe ale warms you. +%d HP (%d/%d)%s\n",
				ansiGreen, result.HPHealed, result.CurrentHP, result.MaxHP, ansiReset)
		case "f":
			result, err := s.game.FlirtWithVioletta(ctx, s.player.ID)
			if err != nil {
				s.printError(err)
				continue
			}
			s.player.Romance = result.Romance
			if result.JustMarried {
				s.player.Spouse = "Violetta"
				s.printf("%s%s%s\n", ansiYellow, result.Message, ansiReset)
			} else {
				s.printf("%s\n", result.Message)
			}
		case "g":
			s.printf("Violetta leans in and shares the latest gossip...\n")
			s.news(ctx)
		case "r":
			return nil
		default:
			s.printf("Violetta raises an eyebrow.\n")
		}
	}
}

// news 王国新闻
func (s *Session) news(ctx context.Context) {
	items, err := s.game.LatestNews(ctx, 20)
	if err != nil {
		s.printError(err)
		return
	}

	s.printf("\n%s-- The Daily Happenings --%s\n", ansiCyan, ansiReset)
	if len(items) == 0 {
		s.printf("Nothing of note has happened lately.\n")
		return
	}
	for _, item := range items {
		s.printf("  [%s] %s\n", item.Date.Format("2006-01-02"), item.Message)
	}
}

// leaderboard 排行榜
func (s *Session) leaderboard(ctx context.Context) {
	players, err := s.game.Leaderboard(ctx, 10)
	if err != nil {
		s.printError(err)
		return
	}

	s.printf("\n%s-- Mightiest Heroes --%s\n", ansiCyan, ansiReset)
	for i, p := range players {
		status := ""
		if !p.Alive {
			status = ansiRed + " (dead)" + ansiReset
		}
		s.printf("  %2d. %-20s Level %d, %d exp%s\n", i+1, p.Name, p.Level, p.Exp, status)
	}
}

// printRounds 打印战斗回合
func (s *Session) printRounds(rounds []game.Round) {
	for _, r := range rounds {
		s.printf("  %s strikes %s for %d damage. (%s: %d HP)\n",
			r.Attacker, r.Defender, r.Damage, r.Defender, r.DefenderHP)
	}
}

// printStats 打印角色状态行
func (s *Session) printStats() {
	p := s.player
	married := ""
	if p.IsMarried() {
		married = ", married to " + p.Spouse
	}
	s.printf("\n%s%s%s  Level %d  HP %d/%d  Exp %d/%d  Gold %d  Fights %d%s\n",
		ansiBold, p.Name, ansiReset,
		p.Level, p.CurrentHP, p.MaxHP,
		p.Exp, p.XPToNextLevel(), p.Gold, p.ForestFights, married)
}

// printError 打印业务错误
func (s *Session) printError(err error) {
	s.printf("%s%s%s\n", ansiRed, err.Error(), ansiReset)
}

// prompt 输出提示并读一行输入
func (s *Session) prompt(text string) (string, error) {
	s.printf("%s", text)
	line, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
