package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
)

// Mensagens por código de negócio. Código fora da tabela vira 400.
var businessMessages = map[string]string{
	"tenant_inactive":           "Conta desativada.",
	"invalid_date_or_time":      "Data ou hora inválida.",
	"invalid_date":              "Data inválida.",
	"customer_not_found":        "Cliente não encontrado.",
	"vehicle_not_found":         "Veículo não encontrado.",
	"vehicle_customer_mismatch": "Veículo não pertence ao cliente.",
	"no_services":               "Informe ao menos um serviço.",
	"service_not_found":         "Serviço não encontrado.",
	"service_inactive":          "Serviço está inativo.",
	"past_date":                 "Data/hora deve ser futura.",
	"closed_day":                "Estabelecimento fechado neste dia.",
	"outside_business_hours":    "Fora do horário de funcionamento.",
	"blackout":                  "Horário bloqueado.",
	"slot_taken":                "Já existe um agendamento neste horário.",
	"appointment_not_found":     "Agendamento não encontrado.",
	"invalid_state":             "Transição de status inválida.",
	"invalid_status":            "Status inválido.",
	"invalid_payment_status":    "Status de pagamento inválido.",
	"invalid_payment_method":    "Forma de pagamento inválida.",
	"missing_payment_fields":    "Pagamento pago exige forma e valor.",
	"invalid_blackout_kind":     "Tipo de bloqueio inválido.",
	"missing_specific_date":     "Bloqueio pontual exige data.",
	"invalid_weekday":           "Dia da semana inválido (0-6).",
	"invalid_time_range":        "Faixa de horário inválida.",
}

var notFoundCodes = map[string]bool{
	"customer_not_found":    true,
	"vehicle_not_found":     true,
	"service_not_found":     true,
	"appointment_not_found": true,
}

func respondError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		msg := businessMessages[be.Code]
		if msg == "" {
			msg = "Requisição inválida."
		}

		switch {
		case notFoundCodes[be.Code]:
			httperr.NotFound(c, be.Code, msg)
		case be.Code == "slot_taken":
			httperr.Conflict(c, be.Code, msg)
		default:
			httperr.BadRequest(c, be.Code, msg)
		}
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}
