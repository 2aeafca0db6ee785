package payments

import (
	"context"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Linker gera um link de checkout para um agendamento com pagamento
// pendente. Best-effort: falha é logada pelo chamador e o agendamento
// segue sem link.
type Linker interface {
	CreateLink(ctx context.Context, reference string, description string, amount float64) (string, error)
}

type MercadoPago struct {
	client preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{
		client: preference.NewClient(cfg),
	}, nil
}

func (mp *MercadoPago) CreateLink(
	ctx context.Context,
	reference string,
	description string,
	amount float64,
) (string, error) {

	req := preference.Request{
		ExternalReference: reference,
		Items: []preference.ItemRequest{
			{
				Title:      description,
				Quantity:   1,
				UnitPrice:  amount,
				CurrencyID: "BRL",
			},
		},
	}

	resource, err := mp.client.Create(ctx, req)
	if err != nil {
		return "", err
	}

	return resource.InitPoint, nil
}
