package valueobjects

import "fmt"

type PaymentMethod string

const (
	PaymentMethodBankWire   PaymentMethod = "bank_wire"
	PaymentMethodStablecoin PaymentMethod = "stablecoin"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
)

func NewPaymentMethod(method string) (PaymentMethod, error) {
	pm := PaymentMethod(method)
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", method)
	}
	return pm, nil
}

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodBankWire, PaymentMethodStablecoin, PaymentMethodCreditCard:
		return true
	default:
		return false
	}
}

// RequiresReferenceCode is true for rails that are matched by hand against
// incoming bank statements.
func (pm PaymentMethod) RequiresReferenceCode() bool {
	return pm == PaymentMethodBankWire
}

func (pm PaymentMethod) String() string {
	return string(pm)
}
