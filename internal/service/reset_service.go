package service

import (
	"context"
	"time"

	"github.com/wfunc/lord-game/internal/repository"
	"go.uber.org/zap"
)

// DailyResetNews 每日重置的公告
const DailyResetNews = "A new day dawns in the realm. All heroes feel refreshed."

// resetService 每日重置服务实现
type resetService struct {
	stateRepo    repository.GameStateRepository
	forestFights int
	log          *zap.Logger
	now          func() time.Time
}

// NewResetService 创建每日重置服务
func NewResetService(stateRepo repository.GameStateRepository, forestFights int, log *zap.Logger) ResetService {
	return &resetService{
		stateRepo:    stateRepo,
		forestFights: forestFights,
		log:          log,
		now:          time.Now,
	}
}

// EnsureInitialized 首次启动登记当天日期，已有记录则不动
func (s *resetService) EnsureInitialized(ctx context.Context) error {
	return s.stateRepo.EnsureLastReset(ctx, s.today())
}

// MaybeReset 跨天时执行每日重置
// 同一天的重复调用是空操作，多实例并发调用只有一个会执行
func (s *resetService) MaybeReset(ctx context.Context) (bool, error) {
	today := s.today()
	performed, err := s.stateRepo.MaybeDailyReset(ctx, today, s.forestFights, DailyResetNews)
	if err != nil {
		return false, err
	}
	if performed {
		s.log.Info("每日重置完成", zap.String("date", today))
	}
	return performed, nil
}

func (s *resetService) today() string {
	return s.now().Format("2006-01-02")
}
