package createpayment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kudzaim/paynow-relay/internal/domain/payment"
)

// ErrRejected reports that the processor declined the transaction. The
// decline detail is logged, never returned to the caller.
var ErrRejected = errors.New("processor rejected transaction")

// lineItemName is the single item every relayed payment carries.
const lineItemName = "Subscription"

type Request struct {
	Email     string
	Amount    float64
	Reference string
}

type Response struct {
	RedirectURL string
	PollURL     string
}

type UseCase struct {
	client payment.Client
	logger *slog.Logger
}

func NewUseCase(client payment.Client, logger *slog.Logger) *UseCase {
	return &UseCase{client: client, logger: logger}
}

// Execute submits a single-item subscription payment to the processor.
// ErrRejected means the processor declined the transaction; any other error
// is a transport or processor fault.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	attemptID := uuid.NewString()

	draft := payment.NewDraft(req.Reference, req.Email)
	draft.Add(lineItemName, req.Amount)

	result, err := uc.client.Submit(ctx, draft)
	if err != nil {
		uc.logger.Error("payment submit failed",
			"attempt_id", attemptID, "reference", req.Reference, "error", err)
		return nil, err
	}
	if !result.Success {
		uc.logger.Warn("payment rejected",
			"attempt_id", attemptID, "reference", req.Reference, "reason", result.Reason)
		return nil, ErrRejected
	}

	uc.logger.Info("payment created", "attempt_id", attemptID, "reference", req.Reference)
	return &Response{
		RedirectURL: result.RedirectURL,
		PollURL:     result.PollURL,
	}, nil
}
