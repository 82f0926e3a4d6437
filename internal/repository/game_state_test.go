package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/wfunc/lord-game/internal/models"
	"gorm.io/gorm"
)

// GameStateRepositoryTestSuite 全局状态仓储测试套件
type GameStateRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repo       GameStateRepository
	playerRepo PlayerRepository
	newsRepo   NewsRepository
}

func (suite *GameStateRepositoryTestSuite) SetupTest() {
	suite.db = SetupTestDB()
	suite.playerRepo = NewPlayerRepository(suite.db)
	suite.newsRepo = NewNewsRepository(suite.db)
	suite.repo = NewGameStateRepository(suite.db, suite.playerRepo)
}

func (suite *GameStateRepositoryTestSuite) TearDownTest() {
	CleanupTestDB(suite.db)
}

// TestEnsureLastReset 首次启动写入当天日期，重复调用不覆盖
func (suite *GameStateRepositoryTestSuite) TestEnsureLastReset() {
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	suite.NoError(suite.repo.EnsureLastReset(ctx, today))

	value, err := suite.repo.Get(ctx, models.StateKeyLastReset)
	suite.NoError(err)
	suite.Equal(today, value)

	// 已有值时不覆盖
	suite.NoError(suite.repo.EnsureLastReset(ctx, "2099-01-01"))
	value, _ = suite.repo.Get(ctx, models.StateKeyLastReset)
	suite.Equal(today, value)
}

// TestMaybeDailyReset 跨天触发重置：恢复体力、复活、补满森林战斗次数
func (suite *GameStateRepositoryTestSuite) TestMaybeDailyReset() {
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	suite.NoError(suite.repo.EnsureLastReset(ctx, "2020-01-01"))

	dead := &models.Player{
		Name: "Dead", Level: 2, MaxHP: 30, CurrentHP: 0,
		Attack: 7, Defense: 3, ForestFights: 0, Alive: false,
	}
	tired := &models.Player{
		Name: "Tired", Level: 1, MaxHP: 20, CurrentHP: 5,
		Attack: 5, Defense: 2, ForestFights: 2, Alive: true, Gold: 42,
	}
	suite.NoError(suite.playerRepo.Create(ctx, dead))
	suite.NoError(suite.playerRepo.Create(ctx, tired))

	performed, err := suite.repo.MaybeDailyReset(ctx, today, 10, "A new day dawns in the realm. All heroes feel refreshed.")
	suite.NoError(err)
	suite.True(performed)

	foundDead, _ := suite.playerRepo.FindByID(ctx, dead.ID)
	suite.True(foundDead.Alive)
	suite.Equal(30, foundDead.CurrentHP)
	suite.Equal(10, foundDead.ForestFights)

	foundTired, _ := suite.playerRepo.FindByID(ctx, tired.ID)
	suite.Equal(20, foundTired.CurrentHP)
	suite.Equal(10, foundTired.ForestFights)
	suite.Equal(42, foundTired.Gold, "重置不应影响金币")

	items, _ := suite.newsRepo.Latest(ctx, 10)
	suite.Len(items, 1)
	suite.Contains(items[0].Message, "A new day dawns")
}

// TestMaybeDailyReset_Idempotent 同一天第二次调用不做任何事
func (suite *GameStateRepositoryTestSuite) TestMaybeDailyReset_Idempotent() {
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	suite.NoError(suite.repo.EnsureLastReset(ctx, "2020-01-01"))

	player := &models.Player{
		Name: "Hero", Level: 1, MaxHP: 20, CurrentHP: 20,
		Attack: 5, Defense: 2, ForestFights: 10, Alive: true,
	}
	suite.NoError(suite.playerRepo.Create(ctx, player))

	performed, err := suite.repo.MaybeDailyReset(ctx, today, 10, "dawn")
	suite.NoError(err)
	suite.True(performed)

	// 消耗一次战斗后再次触发重置
	player.ForestFights = 9
	suite.NoError(suite.playerRepo.Save(ctx, player))

	performed, err = suite.repo.MaybeDailyReset(ctx, today, 10, "dawn")
	suite.NoError(err)
	suite.False(performed)

	found, _ := suite.playerRepo.FindByID(ctx, player.ID)
	suite.Equal(9, found.ForestFights, "同日重复调用不应重置次数")

	items, _ := suite.newsRepo.Latest(ctx, 10)
	suite.Len(items, 1, "同日重复调用不应追加新闻")
}

func TestGameStateRepositorySuite(t *testing.T) {
	suite.Run(t, new(GameStateRepositoryTestSuite))
}
