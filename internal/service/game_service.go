package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/wfunc/lord-game/internal/config"
	"github.com/wfunc/lord-game/internal/errors"
	"github.com/wfunc/lord-game/internal/game"
	"github.com/wfunc/lord-game/internal/models"
	"github.com/wfunc/lord-game/internal/repository"
	"go.uber.org/zap"
)

// gameService 游戏服务实现
type gameService struct {
	playerRepo repository.PlayerRepository
	newsRepo   repository.NewsRepository
	log        *zap.Logger

	newsLimit int
	topLimit  int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGameService 创建游戏服务，cfg为nil时使用内置默认值
func NewGameService(
	playerRepo repository.PlayerRepository,
	newsRepo repository.NewsRepository,
	cfg *config.GameConfig,
	log *zap.Logger,
) GameService {
	return NewGameServiceWithRand(playerRepo, newsRepo, cfg, log,
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGameServiceWithRand 使用指定随机源创建游戏服务（测试用）
func NewGameServiceWithRand(
	playerRepo repository.PlayerRepository,
	newsRepo repository.NewsRepository,
	cfg *config.GameConfig,
	log *zap.Logger,
	rng *rand.Rand,
) GameService {
	s := &gameService{
		playerRepo: playerRepo,
		newsRepo:   newsRepo,
		log:        log,
		newsLimit:  20,
		topLimit:   10,
		rng:        rng,
	}
	if cfg != nil {
		if cfg.NewsLimit > 0 {
			s.newsLimit = cfg.NewsLimit
		}
		if cfg.TopPlayersLimit > 0 {
			s.topLimit = cfg.TopPlayersLimit
		}
	}
	return s
}

// GetPlayer 查询角色
func (s *gameService) GetPlayer(ctx context.Context, playerID uint) (*models.Player, error) {
	return s.playerRepo.FindByID(ctx, playerID)
}

// Leaderboard 排行榜
func (s *gameService) Leaderboard(ctx context.Context, limit int) ([]*models.Player, error) {
	if limit <= 0 || limit > 100 {
		limit = s.topLimit
	}
	return s.playerRepo.TopPlayers(ctx, limit)
}

// LatestNews 最近的王国新闻
func (s *gameService) LatestNews(ctx context.Context, limit int) ([]models.News, error) {
	if limit <= 0 || limit > 100 {
		limit = s.newsLimit
	}
	return s.newsRepo.Latest(ctx, limit)
}

// ForestEncounter 进入森林遭遇怪物并结算战斗
func (s *gameService) ForestEncounter(ctx context.Context, playerID uint) (*game.EncounterResult, *models.Player, error) {
	player, err := s.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	s.rngMu.Lock()
	monster := game.GenerateMonster(player.Level, s.rng)
	result, err := game.FightMonster(player, monster, s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	if err := s.playerRepo.Save(ctx, player); err != nil {
		return nil, nil, err
	}

	s.log.Info("森林战斗结算",
		zap.String("player", player.Name),
		zap.String("monster", monster.Name),
		zap.Bool("victory", result.Victory),
		zap.Int("exp", result.ExpGained),
		zap.Int("gold", result.GoldGained))

	s.publishNews(result.News)
	return result, player, nil
}

// ListOpponents 列出可挑战的存活玩家
func (s *gameService) ListOpponents(ctx context.Context, playerID uint) ([]models.PlayerInfo, error) {
	return s.playerRepo.ListAlive(ctx, playerID)
}

// Duel 玩家决斗，两条记录原子结算
func (s *gameService) Duel(ctx context.Context, challengerID, targetID uint) (*game.DuelResult, *models.Player, error) {
	if challengerID == targetID {
		return nil, nil, errors.New(errors.ErrInvalidParam, "不能挑战自己")
	}

	challenger, err := s.playerRepo.FindByID(ctx, challengerID)
	if err != nil {
		return nil, nil, err
	}
	target, err := s.playerRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}

	s.rngMu.Lock()
	result, err := game.Duel(challenger, target, s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	if err := s.playerRepo.SavePair(ctx, challenger, target); err != nil {
		return nil, nil, err
	}

	s.log.Info("决斗结算",
		zap.String("challenger", challenger.Name),
		zap.String("target", target.Name),
		zap.String("winner", result.WinnerName),
		zap.Int("gold_looted", result.GoldLooted))

	s.publishNews(result.News)
	return result, challenger, nil
}

// TavernDrink 酒馆喝酒回血
func (s *gameService) TavernDrink(ctx context.Context, playerID uint) (*DrinkResult, error) {
	player, err := s.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !player.Alive {
		return nil, errors.New(errors.ErrPlayerDead, "死人喝不了酒")
	}
	if player.Gold < game.TavernDrinkPrice {
		return nil, errors.New(errors.ErrInsufficientGold, "金币不足")
	}

	player.Gold -= game.TavernDrinkPrice
	heal := player.MaxHP / 4
	if player.IsMarried() {
		// 已婚角色有Violetta照料，恢复更多
		heal += player.MaxHP / 8
	}
	healed := player.Heal(heal)

	if err := s.playerRepo.Save(ctx, player); err != nil {
		return nil, err
	}

	return &DrinkResult{
		GoldSpent: game.TavernDrinkPrice,
		HPHealed:  healed,
		CurrentHP: player.CurrentHP,
		MaxHP:     player.MaxHP,
	}, nil
}

// FlirtWithVioletta 与酒馆女侍Violetta调情
// flirtResponses 调情阶段台词，按好感度递进
var flirtResponses = []string{
	"Violetta smiles at you warmly.",
	"Violetta laughs at your joke and refills your mug on the house.",
	"Violetta brushes your hand as she passes by.",
	"Violetta whispers that she looks forward to your visits.",
}

func (s *gameService) FlirtWithVioletta(ctx context.Context, playerID uint) (*FlirtResult, error) {
	player, err := s.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !player.Alive {
		return nil, errors.New(errors.ErrPlayerDead, "死人无法调情")
	}
	if player.IsMarried() {
		return nil, errors.New(errors.ErrAlreadyMarried, "已婚角色不能再调情")
	}

	player.Romance++
	result := &FlirtResult{Romance: player.Romance}

	if player.Romance >= game.MarriageRomanceThreshold {
		player.Spouse = "Violetta"
		result.JustMarried = true
		result.Message = "Violetta says yes! Wedding bells ring across the realm."
		s.publishNews([]string{fmt.Sprintf("%s has married Violetta the barmaid!", player.Name)})
	} else {
		result.Message = flirtResponses[player.Romance-1]
	}

	if err := s.playerRepo.Save(ctx, player); err != nil {
		return nil, err
	}
	return result, nil
}

// publishNews 异步尽力写入新闻，失败只记日志不影响结算
func (s *gameService) publishNews(items []string) {
	if len(items) == 0 {
		return
	}
	go func(items []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, msg := range items {
			if err := s.newsRepo.Append(ctx, msg); err != nil {
				s.log.Warn("新闻写入失败", zap.String("message", msg), zap.Error(err))
			}
		}
	}(items)
}
