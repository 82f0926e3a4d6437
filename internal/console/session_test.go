package console

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/wfunc/lord-game/internal/repository"
	"github.com/wfunc/lord-game/internal/service"
	"github.com/wfunc/lord-game/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// scriptedIO 用脚本输入驱动会话，收集输出
type scriptedIO struct {
	in  io.Reader
	out strings.Builder
}

func (s *scriptedIO) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s *scriptedIO) Write(p []byte) (int, error) { return s.out.Write(p) }

// SessionTestSuite 文字会话测试套件
type SessionTestSuite struct {
	suite.Suite
	db    *gorm.DB
	auth  service.AuthService
	game  service.GameService
	reset service.ResetService
}

func (suite *SessionTestSuite) SetupTest() {
	suite.db = repository.SetupTestDB()
	playerRepo := repository.NewPlayerRepository(suite.db)
	newsRepo := repository.NewNewsRepository(suite.db)
	sessionRepo := repository.NewSessionRepository(suite.db)
	stateRepo := repository.NewGameStateRepository(suite.db, playerRepo)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	suite.auth = service.NewAuthService(playerRepo, sessionRepo, jwtManager, zap.NewNop())
	suite.game = service.NewGameService(playerRepo, newsRepo, nil, zap.NewNop())
	suite.reset = service.NewResetService(stateRepo, 10, zap.NewNop())
}

func (suite *SessionTestSuite) TearDownTest() {
	repository.CleanupTestDB(suite.db)
}

// run 用脚本输入跑一条会话
func (suite *SessionTestSuite) run(script string) string {
	rw := &scriptedIO{in: strings.NewReader(script)}
	sess := NewSession(rw, suite.auth, suite.game, suite.reset, zap.NewNop())
	err := sess.Run(context.Background())
	suite.NoError(err)
	return rw.out.String()
}

// TestCreateAndQuit 创建新角色后直接退出
func (suite *SessionTestSuite) TestCreateAndQuit() {
	out := suite.run("Galahad\nsecret\ny\nq\n")

	suite.Contains(out, "A new hero is born: Galahad!")
	suite.Contains(out, "The Town Square")
	suite.Contains(out, "Level 1")
	suite.Contains(out, "Farewell, Galahad")
}

// TestLoginExisting 已有角色密码登录
func (suite *SessionTestSuite) TestLoginExisting() {
	_, err := suite.auth.Register(context.Background(), &service.RegisterRequest{
		Name: "Hero", Password: "secret",
	})
	suite.Require().NoError(err)

	out := suite.run("Hero\nsecret\nq\n")
	suite.Contains(out, "Welcome back, Hero!")
}

// TestForestFromMenu 从菜单进入森林战斗
func (suite *SessionTestSuite) TestForestFromMenu() {
	// 胜利时 "n" 回答继续战斗的询问，战死时由城镇菜单吞掉
	out := suite.run("Hero\n\ny\nf\nn\nq\n")

	suite.Contains(out, "You encounter a")
	suite.Contains(out, "Forest fights remaining today")
}

// TestForestRefight 森林内连续战斗
func (suite *SessionTestSuite) TestForestRefight() {
	ctx := context.Background()
	resp, err := suite.auth.Register(ctx, &service.RegisterRequest{Name: "Hero", Password: "secret"})
	suite.Require().NoError(err)

	// 大幅强化角色，保证连胜
	err = suite.db.Model(resp.Player).
		Updates(map[string]interface{}{"attack": 1000, "max_hp": 1000, "current_hp": 1000}).Error
	suite.Require().NoError(err)

	out := suite.run("Hero\nsecret\nf\ny\nn\nq\n")

	suite.Contains(out, "Fight another monster?")
	suite.Equal(2, strings.Count(out, "You encounter a"))
	suite.Contains(out, "Forest fights remaining today: 8")
}

// TestTavernDrinkFromMenu 酒馆喝酒
func (suite *SessionTestSuite) TestTavernDrinkFromMenu() {
	out := suite.run("Hero\n\ny\nt\nd\nr\nq\n")

	suite.Contains(out, "The Red Dragon Inn")
	suite.Contains(out, "The ale warms you")
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
