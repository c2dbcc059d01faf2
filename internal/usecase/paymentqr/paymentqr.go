package paymentqr

import (
	"context"

	"github.com/kudzaim/paynow-relay/internal/usecase/createpayment"
)

// Renderer turns a URL into QR image bytes.
type Renderer interface {
	Generate(url string) ([]byte, error)
}

type UseCase struct {
	create   *createpayment.UseCase
	renderer Renderer
}

func NewUseCase(create *createpayment.UseCase, renderer Renderer) *UseCase {
	return &UseCase{create: create, renderer: renderer}
}

// Execute creates the payment and renders its redirect URL as a PNG so the
// payer can complete it on another device.
func (uc *UseCase) Execute(ctx context.Context, req createpayment.Request) ([]byte, error) {
	resp, err := uc.create.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Generate(resp.RedirectURL)
}
