package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/maison-storefront/internal/domain/session"
)

// GetSession reports the current session role and login state.
func (h *Handler) GetSession(w http.ResponseWriter, _ *http.Request) {
	h.writeSession(w)
}

// Login signs the single session in. A customer login always succeeds; an
// admin login is checked against the configured credential. A failed
// attempt leaves the session untouched.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var role, key string
	err := decodeBody(r, func(d *jx.Decoder, k string) error {
		switch k {
		case "role":
			v, err := d.Str()
			role = v
			return err
		case "key":
			v, err := d.Str()
			key = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.sessions.Login(r.Context(), session.Role(role), key); err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidCredential):
			writeError(w, http.StatusUnauthorized, "invalid admin key")
		case errors.Is(err, session.ErrUnknownRole):
			writeError(w, http.StatusUnprocessableEntity, "unknown role")
		default:
			writeError(w, http.StatusInternalServerError, "login failure")
		}
		return
	}

	h.writeSession(w)
}

// Logout signs the session out and reverts it to the customer role.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.sessions.Logout()
	h.writeSession(w)
}

func (h *Handler) writeSession(w http.ResponseWriter) {
	s := h.sessions.Current()
	writeObj(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("role", func(e *jx.Encoder) { e.Str(string(s.Role)) })
		e.Field("loggedIn", func(e *jx.Encoder) { e.Bool(s.LoggedIn) })
	})
}
