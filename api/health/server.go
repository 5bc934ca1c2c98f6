package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	status := hrm.healthService.GetServerHealthStatus()
	gecho.Success(w,
		gecho.WithMessage("Server is healthy"),
		gecho.WithData(status),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	status, err := hrm.healthService.GetDatabaseHealthStatus()
	if err != nil {
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Database unreachable"),
			gecho.WithData(status),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}
