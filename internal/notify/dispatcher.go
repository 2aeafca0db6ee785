package notify

import (
	"context"
	"log"
	"time"
)

// Sender é o colaborador de entrega (WhatsApp em produção, fake em teste).
type Sender interface {
	Send(ctx context.Context, phone string, message string) error
}

// Notifier é o contrato que os usecases enxergam: best-effort, sem retorno.
// O sucesso do agendamento é definido pela persistência, nunca pelo envio.
type Notifier interface {
	Notify(phone string, message string)
}

// Dispatcher entrega mensagens em background por um canal com buffer,
// descartando quando a fila enche. Mesmo desenho do audit.Dispatcher.
type Dispatcher struct {
	sender Sender
	queue  chan outgoing
}

type outgoing struct {
	phone   string
	message string
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan outgoing, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := d.sender.Send(ctx, msg.phone, msg.message); err != nil {
			log.Println("notify error:", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Notify(phone string, message string) {
	if phone == "" {
		return
	}

	select {
	case d.queue <- outgoing{phone: phone, message: message}:
	default:
		log.Println("notify queue full, dropping message")
	}
}

// NopNotifier é usado quando a Evolution API não está configurada.
type NopNotifier struct{}

func (NopNotifier) Notify(phone string, message string) {}
