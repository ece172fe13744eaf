package janitor

import (
	"context"
	"sync"
	"time"

	"github.com/imelnikov/transferhub/internal/config"
	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/internal/pg"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=janitor.go -destination=janitor_mock.go -package=janitor

type TransactionRepo interface {
	FindStalePending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int, from, to domain.TransactionStatus) (bool, error)
}

var processingPairs sync.Map

// Service declines transfer pairs stuck in PENDING_CONFIRMATION after
// their confirmation code has expired. The guarded status update makes
// the sweep safe against a confirm racing on the same pair: whoever
// transitions first wins, the other write matches zero rows.
type Service struct {
	transactionRepo TransactionRepo
	txManager       pg.TXManager
	codeTTL         time.Duration
	limit           int
	workerPool      WorkerPoolI
	sweepInterval   time.Duration
}

func New(cfg *config.Config, transactionRepo TransactionRepo, txManager pg.TXManager) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		txManager:       txManager,
		codeTTL:         cfg.CodeTTL,
		limit:           1000,
		workerPool:      NewWorkerPool(10),
		sweepInterval:   time.Minute,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Janitor service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping janitor")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.codeTTL)
	stale, err := s.transactionRepo.FindStalePending(ctx, cutoff, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch stale pending transactions", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, tx := range stale {
		tx := tx

		if _, loaded := processingPairs.LoadOrStore(tx.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingPairs.Delete(tx.ID)
				return s.declinePair(ctx, tx)
			})
			if err != nil {
				processingPairs.Delete(tx.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error declining stale transfers", zap.Error(err))
	}
}

func (s *Service) declinePair(ctx context.Context, tx domain.Transaction) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		declined, err := s.transactionRepo.UpdateStatus(ctx, tx.ID,
			domain.StatusPendingConfirmation, domain.StatusDeclined)
		if err != nil {
			return err
		}
		if !declined {
			// a concurrent confirm got there first
			return nil
		}
		if tx.ReceiverTransactionID != 0 {
			if _, err := s.transactionRepo.UpdateStatus(ctx, tx.ReceiverTransactionID,
				domain.StatusPendingConfirmation, domain.StatusDeclined); err != nil {
				return err
			}
		}
		zap.L().Info("Stale transfer declined", zap.Int("transactionID", tx.ID))
		return nil
	})
}
