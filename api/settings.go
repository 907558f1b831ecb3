package api

import (
	"errors"
	"net/http"

	"github.com/openclaw/labelgen/config"
)

type settingsResponse struct {
	config.Settings
	Defaults bool `json:"defaults"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st, defaulted := s.Settings.Load()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, settingsResponse{Settings: st, Defaults: defaulted})
}

type settingsRequest struct {
	Currency string `json:"currency"`
}

// handlePutSettings changes the currency symbol. The logo has its own routes.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, _ := s.Settings.Load()
	st.Currency = req.Currency
	if err := s.Settings.Save(st); err != nil {
		writeFailure(w, err)
		return
	}
	st, _ = s.Settings.Load()
	s.Log.Info("settings updated", "currency", st.Currency)
	writeJSON(w, http.StatusOK, settingsResponse{Settings: st})
}

func (s *Server) handlePutLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, _ := s.Settings.Load()
	path, err := s.Settings.InstallLogoFrom(header.Filename, file)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if st.LogoPath != "" && st.LogoPath != path {
		// A previous upload with another extension is now stale.
		if st, err = s.Settings.RemoveLogo(st); err != nil {
			s.Log.Warn("could not remove previous logo", "path", st.LogoPath, "error", err)
		}
	}
	st.LogoPath = path
	if err := s.Settings.Save(st); err != nil {
		writeFailure(w, err)
		return
	}
	s.Log.Info("logo installed", "path", path)
	writeJSON(w, http.StatusOK, settingsResponse{Settings: st})
}

func (s *Server) handleDeleteLogo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, _ := s.Settings.Load()
	st, err := s.Settings.RemoveLogo(st)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.Settings.Save(st); err != nil {
		writeFailure(w, errors.Join(errors.New("logo removed but settings not saved"), err))
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Settings: st})
}
