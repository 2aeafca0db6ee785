package notify

import (
	"fmt"
	"strings"
	"time"
)

// Templates das mensagens enviadas ao cliente (pt-BR).

func ConfirmationMessage(
	customerName string,
	startTime time.Time,
	serviceNames []string,
	totalPrice float64,
) string {
	return fmt.Sprintf(`✅ *Agendamento Confirmado!*

Olá %s! Seu agendamento foi confirmado com sucesso.

📅 *Data/Hora:* %s
🚗 *Serviços:* %s
💰 *Valor Total:* R$ %.2f

Nos vemos em breve! 🚗✨`,
		customerName,
		startTime.Format("02/01/2006 15:04"),
		strings.Join(serviceNames, ", "),
		totalPrice,
	)
}

func CancellationMessage(customerName string, startTime time.Time) string {
	return fmt.Sprintf(`❌ *Agendamento Cancelado*

Olá %s, seu agendamento para %s foi cancelado.

Se precisar reagendar, estamos à disposição!`,
		customerName,
		startTime.Format("02/01/2006 15:04"),
	)
}
