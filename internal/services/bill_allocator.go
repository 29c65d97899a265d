package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentwheels/internal/utils"
	"rentwheels/pkg/logger"
)

// BillSequenceReader is the slice of storage the allocator needs: the highest
// sequence number already persisted under a date prefix.
type BillSequenceReader interface {
	MaxBillSequence(ctx context.Context, datePrefix string) (int, error)
}

// BillAllocator hands out date-scoped settlement identifiers of the form
// BILL-YYYYMMDD-NNNNN. Persistence is delegated to the caller through the
// persist callback, which must report a uniqueness violation as
// ErrDuplicateBillID; that keeps the retry policy testable without storage.
type BillAllocator interface {
	Allocate(ctx context.Context, pickupDate time.Time, persist func(billID string) error) (string, error)
}

type billAllocator struct {
	store  BillSequenceReader
	logger *logger.Logger
}

func NewBillAllocator(store BillSequenceReader, log *logger.Logger) BillAllocator {
	return &billAllocator{
		store:  store,
		logger: log,
	}
}

// Allocate computes max+1 optimistically and retries on collision with a
// growing local offset, so two concurrent pickups that read the same maximum
// converge on distinct ids. The loop is bounded; exhausting it means systemic
// contention and the pickup must not complete without a bill id.
func (a *billAllocator) Allocate(ctx context.Context, pickupDate time.Time, persist func(billID string) error) (string, error) {
	prefix := fmt.Sprintf("%s-%s", utils.BillIDPrefix, pickupDate.Format(utils.BillIDDateFormat))

	for attempt := 0; attempt < utils.MaxBillAllocateRetries; attempt++ {
		maxSeq, err := a.store.MaxBillSequence(ctx, prefix)
		if err != nil {
			return "", fmt.Errorf("failed to read bill sequence for %s: %w", prefix, err)
		}

		candidate := fmt.Sprintf("%s-%0*d", prefix, utils.BillSequenceDigits, maxSeq+1+attempt)

		err = persist(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, ErrDuplicateBillID) {
			return "", err
		}

		a.logger.WithFields(map[string]interface{}{
			"bill_id": candidate,
			"attempt": attempt + 1,
		}).Warn("Bill id collision, retrying allocation")
	}

	a.logger.WithField("date_prefix", prefix).Error("Bill id allocation exhausted; pickup contention needs attention")
	return "", fmt.Errorf("%w: prefix=%s attempts=%d", ErrBillAllocationExhausted, prefix, utils.MaxBillAllocateRetries)
}
