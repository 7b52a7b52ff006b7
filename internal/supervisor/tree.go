// Package supervisor управляет жизненным циклом фоновых сервисов через suture.
package supervisor

import (
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/valeevte/PurchaseReport/internal/logging"
)

// New создаёт корневой супервизор; события пишутся в zerolog.
func New(name string, shutdownTimeout time.Duration) *suture.Supervisor {
	log := logging.WithComponent("supervisor")
	return suture.New(name, suture.Spec{
		EventHook: func(e suture.Event) {
			log.Warn().Fields(e.Map()).Msg(e.String())
		},
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		Timeout:          shutdownTimeout,
	})
}
