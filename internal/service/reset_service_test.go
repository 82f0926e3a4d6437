package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/wfunc/lord-game/internal/models"
	"github.com/wfunc/lord-game/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResetServiceTestSuite 每日重置服务测试套件
type ResetServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	playerRepo repository.PlayerRepository
	stateRepo  repository.GameStateRepository
	service    ResetService
}

func (suite *ResetServiceTestSuite) SetupTest() {
	suite.db = repository.SetupTestDB()
	suite.playerRepo = repository.NewPlayerRepository(suite.db)
	suite.stateRepo = repository.NewGameStateRepository(suite.db, suite.playerRepo)
	suite.service = NewResetService(suite.stateRepo, 10, zap.NewNop())
}

func (suite *ResetServiceTestSuite) TearDownTest() {
	repository.CleanupTestDB(suite.db)
}

// TestFirstBoot 首次启动登记日期，当天不触发重置
func (suite *ResetServiceTestSuite) TestFirstBoot() {
	ctx := context.Background()

	suite.NoError(suite.service.EnsureInitialized(ctx))

	performed, err := suite.service.MaybeReset(ctx)
	suite.NoError(err)
	suite.False(performed)
}

// TestCrossDayReset 跨天触发重置且幂等
func (suite *ResetServiceTestSuite) TestCrossDayReset() {
	ctx := context.Background()

	// 模拟上次重置在过去
	suite.NoError(suite.stateRepo.EnsureLastReset(ctx, "2020-01-01"))

	dead := &models.Player{
		Name: "Dead", Level: 1, MaxHP: 20, CurrentHP: 0,
		Attack: 5, Defense: 2, Alive: false,
	}
	suite.Require().NoError(suite.playerRepo.Create(ctx, dead))

	performed, err := suite.service.MaybeReset(ctx)
	suite.NoError(err)
	suite.True(performed)

	found, _ := suite.playerRepo.FindByID(ctx, dead.ID)
	suite.True(found.Alive)
	suite.Equal(20, found.CurrentHP)
	suite.Equal(10, found.ForestFights)

	// 同一天再次调用为空操作
	performed, err = suite.service.MaybeReset(ctx)
	suite.NoError(err)
	suite.False(performed)
}

func TestResetServiceSuite(t *testing.T) {
	suite.Run(t, new(ResetServiceTestSuite))
}
