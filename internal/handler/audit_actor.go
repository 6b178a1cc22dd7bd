package handler

import (
	"net/http"

	"admedia-backoffice/internal/middleware"
	"admedia-backoffice/internal/model"
)

func actorFromRequest(r *http.Request) model.AuditActor {
	actor := model.AuditActor{IP: middleware.ExtractClientIP(r)}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return actor
	}

	actor.UserID = claims.UserID()
	actor.Email = claims.Email
	actor.Role = string(claims.Role)

	return actor
}
