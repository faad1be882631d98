package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"pingrelay/apperr"
	"pingrelay/auth"
	"pingrelay/blacklist"
	"pingrelay/config"
	"pingrelay/models"
	"pingrelay/pings"
	"pingrelay/utils"
)

// Env bundles the shared service state handed to every handler.
type Env struct {
	Auth      *auth.Authenticator
	Pings     *pings.Registry
	Blacklist *blacklist.Blacklist
}

// NewMux wires every route.
func NewMux(env *Env) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) { LoginHandler(w, r, env) })
	mux.HandleFunc("GET /api/pings", func(w http.ResponseWriter, r *http.Request) { ListPingsHandler(w, r, env) })
	mux.HandleFunc("POST /api/pings", func(w http.ResponseWriter, r *http.Request) { PostPingHandler(w, r, env) })
	mux.HandleFunc("DELETE /api/pings/{id}", func(w http.ResponseWriter, r *http.Request) { DeletePingHandler(w, r, env) })
	mux.HandleFunc("GET /api/blacklist", func(w http.ResponseWriter, r *http.Request) { ListBlacklistHandler(w, r, env) })
	mux.HandleFunc("POST /api/blacklist", func(w http.ResponseWriter, r *http.Request) { AddBlacklistHandler(w, r, env) })
	mux.HandleFunc("DELETE /api/blacklist", func(w http.ResponseWriter, r *http.Request) { RemoveBlacklistHandler(w, r, env) })
	mux.HandleFunc("GET /api/health", HealthHandler)
	return mux
}

// writeError maps an engine error onto the HTTP surface.
func writeError(w http.ResponseWriter, err error) {
	utils.WriteJSONResponse(w, apperr.Status(err), map[string]string{"error": err.Error()})
}

// resolve authenticates the request before any handler logic runs.
func resolve(w http.ResponseWriter, r *http.Request, env *Env) (models.Session, bool) {
	sess, err := env.Auth.Resolve(r.Header.Get(config.TokenHeader))
	if err != nil {
		writeError(w, err)
		return models.Session{}, false
	}
	return sess, true
}

// resolveAdmin additionally requires the admin role.
func resolveAdmin(w http.ResponseWriter, r *http.Request, env *Env) (models.Session, bool) {
	sess, ok := resolve(w, r, env)
	if !ok {
		return models.Session{}, false
	}
	if sess.Role != models.RoleAdmin {
		writeError(w, apperr.New(apperr.Forbidden, "admin role required"))
		return models.Session{}, false
	}
	return sess, true
}

// Login Handler
func LoginHandler(w http.ResponseWriter, r *http.Request, env *Env) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	sess, err := env.Auth.Login(creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"token": sess.Token, "role": sess.Role})
}

// List pings Handler
func ListPingsHandler(w http.ResponseWriter, r *http.Request, env *Env) {
	if _, ok := resolve(w, r, env); !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, env.Pings.List())
}

// Post ping Handler
func PostPingHandler(w http.ResponseWriter, r *http.Request, env *Env) {
	sess, ok := resolve(w, r, env)
	if !ok {
		return
	}
	var req pings.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	p, err := env.Pings.Post(sess.Username, sess.Role, req, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, p)
}

// Delete ping Handler
func DeletePingHandler(w http.ResponseWriter, r *http.Request, env *Env) {
	sess, ok := resolve(w, r, env)
	if !ok {
		return
	}
	if err := env.Pings.Delete(r.PathValue("id"), sess); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Ping deleted"})
}

// List blacklist Handler (admin only)
func ListBlacklistHandler(w http.ResponseWriter, r *http.Request, env *Env) {
	if _, ok := resolveAdmin(w, r, env); !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, env.Blacklist.List())
}

// Add blacklist Handler (admin only). The banned user's live session
// is not dropped here: their next call hits the resolver's blacklist
// check, reports Blacklisted and evicts the session there.
func AddBlacklistHandler(w http.ResponseWriter, r *http.Request, env *Env) {
	if _, ok := resolveAdmin(w, r, env); !ok {
		return
	}
	username, ok := decodeUsername(w, r)
	if !ok {
		return
	}
	env.Blacklist.Add(username)
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"success": true, "blacklist": env.Blacklist.List()})
}

// Remove blacklist Handler (admin only)
func RemoveBlacklistHandler(w http.ResponseWriter, r *http.Request, env *Env) {
	if _, ok := resolveAdmin(w, r, env); !ok {
		return
	}
	username, ok := decodeUsername(w, r)
	if !ok {
		return
	}
	env.Blacklist.Remove(username)
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"success": true, "blacklist": env.Blacklist.List()})
}

func decodeUsername(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Missing username"})
		return "", false
	}
	return body.Username, true
}

// Health Handler
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
