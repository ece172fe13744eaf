package codestore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type VerificationResult string

const (
	Success      VerificationResult = "SUCCESS"
	CodeMismatch VerificationResult = "CODE_MISMATCH"
	CodeNotFound VerificationResult = "CODE_NOT_FOUND"
)

// The compare and the delete must be one atomic step: whoever verifies
// successfully also consumes the code, so a code can verify at most once.
var verifyAndDeleteScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if stored == false then
  return "NOT_FOUND"
end
if stored ~= ARGV[1] then
  return "MISMATCH"
end
redis.call("DEL", KEYS[1])
return "OK"
`)

// Store keeps one-time transfer confirmation codes with a bounded TTL.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func New(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(username string, transactionID int) string {
	return fmt.Sprintf("transfer:confirm:%s:%d", username, transactionID)
}

func (s *Store) Save(ctx context.Context, username string, transactionID int, code string) error {
	if err := s.client.Set(ctx, key(username, transactionID), code, s.ttl).Err(); err != nil {
		zap.L().Error("can't save confirmation code", zap.Error(err))
		return err
	}
	zap.L().Debug("confirmation code saved",
		zap.String("username", username), zap.Int("transactionID", transactionID))
	return nil
}

func (s *Store) Verify(ctx context.Context, username string, transactionID int, code string) (VerificationResult, error) {
	raw, err := verifyAndDeleteScript.Run(ctx, s.client, []string{key(username, transactionID)}, code).Result()
	if err != nil {
		zap.L().Error("can't verify confirmation code", zap.Error(err))
		return "", err
	}

	return mapVerifyOutcome(raw)
}

func mapVerifyOutcome(raw any) (VerificationResult, error) {
	outcome, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("unexpected verify script response shape: %T", raw)
	}

	switch outcome {
	case "OK":
		return Success, nil
	case "MISMATCH":
		return CodeMismatch, nil
	case "NOT_FOUND":
		return CodeNotFound, nil
	default:
		return "", fmt.Errorf("unexpected verify script response: %q", outcome)
	}
}

func (s *Store) Delete(ctx context.Context, username string, transactionID int) error {
	if err := s.client.Del(ctx, key(username, transactionID)).Err(); err != nil {
		zap.L().Error("can't delete confirmation code", zap.Error(err))
		return err
	}
	return nil
}
