package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/utils"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap holds the service errors a client may see. The targets are
// disjoint: no service error wraps another one from this map.
var errorStatusMap = map[error]errorResponse{
	service.ErrDuplicateEmail:     {http.StatusConflict, app.MsgEmailAlreadyExists},
	service.ErrInvalidCredentials: {http.StatusUnauthorized, app.MsgInvalidEmailPassword},
	service.ErrTokenExpired:       {http.StatusUnauthorized, app.MsgTokenIsExpired},
	service.ErrTokenInvalid:       {http.StatusUnauthorized, app.MsgTokenIsInvalid},
	service.ErrDecryptionFailed:   {http.StatusBadRequest, app.MsgDecryptionFailed},
	service.ErrQuotaExceeded:      {http.StatusRequestEntityTooLarge, app.MsgQuotaExceeded},
	service.ErrFileNotFound:       {http.StatusNotFound, app.MsgFileNotFound},
	service.ErrUserNotFound:       {http.StatusNotFound, app.MsgUserNotFound},
}

func statusFromError(err error) (int, string) {
	// validation errors carry their reason in the message
	if errors.Is(err, service.ErrValidation) {
		return http.StatusBadRequest, err.Error()
	}

	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeServiceError logs err and answers with the mapped status. Internal
// errors are logged at error level, client errors at info level.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	status, body := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Info().Str("reason", body).Int("status", status).Msg(msg)
	}

	utils.WriteError(w, body, status)
}
