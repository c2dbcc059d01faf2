package payment

import "context"

//go:generate mockgen -destination=mocks/client_mock.go -package=mocks github.com/kudzaim/paynow-relay/internal/domain/payment Client

// LineItem is a single named charge on a payment draft.
type LineItem struct {
	Name   string
	Amount float64
}

// Draft is a payment being assembled before submission to the processor.
type Draft struct {
	Reference string
	Email     string
	Items     []LineItem
}

func NewDraft(reference, email string) Draft {
	return Draft{Reference: reference, Email: email}
}

// Add appends a line item to the draft.
func (d *Draft) Add(name string, amount float64) {
	d.Items = append(d.Items, LineItem{Name: name, Amount: amount})
}

// Total is the sum of all line item amounts.
func (d Draft) Total() float64 {
	var total float64
	for _, item := range d.Items {
		total += item.Amount
	}
	return total
}

// Result is the processor's answer to a submitted draft. Success false with a
// nil error means the processor declined the transaction; Reason carries the
// decline detail and stays server-side.
type Result struct {
	Success     bool
	RedirectURL string
	PollURL     string
	Reason      string
}

// Client submits payment drafts to an external processor. A non-nil error
// means the call itself failed (network fault, malformed response); a decline
// is reported through Result.Success instead.
type Client interface {
	Submit(ctx context.Context, d Draft) (*Result, error)
}
