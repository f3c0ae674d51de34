package payment

import "context"

// Settings is the singleton bank-transfer account record shown to
// customers who choose the card-to-card payment method. Only an
// administrator may change it.
type Settings struct {
	CardNumber    string `json:"cardNumber"`
	AccountHolder string `json:"accountHolder"`
	BankName      string `json:"bankName"`
}

// Repository provides read and admin write access to the settings
// singleton. Get returns defaults when nothing has been stored yet.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
