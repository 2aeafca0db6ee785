package scheduling

import "github.com/agendaestetica/detailing-scheduler/internal/httperr"

// ===============================
// Status do Agendamento
// ===============================

type Status string

const (
	StatusPending    Status = "PENDENTE"
	StatusConfirmed  Status = "CONFIRMADO"
	StatusInProgress Status = "EM_ANDAMENTO"
	StatusCompleted  Status = "CONCLUIDO"
	StatusCancelled  Status = "CANCELADO"
	StatusNoShow     Status = "NAO_COMPARECEU"
)

// forward: PENDENTE → CONFIRMADO → EM_ANDAMENTO → CONCLUIDO.
// CANCELADO e NAO_COMPARECEU são alcançáveis de qualquer estado não terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// Blocks informa se um agendamento neste status ocupa a janela de conflito.
func Blocks(s Status) bool {
	return s != StatusCancelled && s != StatusNoShow
}

func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// ===============================
// Pagamento
// ===============================

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDENTE"
	PaymentPaid     PaymentStatus = "PAGO"
	PaymentRefunded PaymentStatus = "REEMBOLSADO"
)

func IsValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentRefunded
}

type PaymentMethod string

const (
	PaymentPix   PaymentMethod = "PIX"
	PaymentCash  PaymentMethod = "DINHEIRO"
	PaymentCard  PaymentMethod = "CARTAO"
	PaymentDebit PaymentMethod = "DEBITO"
)

func IsValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentPix || m == PaymentCash || m == PaymentCard || m == PaymentDebit
}
