package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appadvice "github.com/ssd-1524/crop-disease-detection/internal/application/advice"
	appanalyses "github.com/ssd-1524/crop-disease-detection/internal/application/analyses"
	appauth "github.com/ssd-1524/crop-disease-detection/internal/application/auth"
	appsubs "github.com/ssd-1524/crop-disease-detection/internal/application/submissions"
	domadvice "github.com/ssd-1524/crop-disease-detection/internal/domain/advice"
	domanalyses "github.com/ssd-1524/crop-disease-detection/internal/domain/analyses"
	"github.com/ssd-1524/crop-disease-detection/internal/domain/sessions"
	"github.com/ssd-1524/crop-disease-detection/internal/domain/users"
	"github.com/ssd-1524/crop-disease-detection/internal/middleware"
)

type Router struct {
	authSvc     *appauth.Service
	submitSvc   *appsubs.Service
	analysesSvc *appanalyses.Service
	adviceSvc   *appadvice.Service
}

func NewRouter(authSvc *appauth.Service, submitSvc *appsubs.Service, analysesSvc *appanalyses.Service, adviceSvc *appadvice.Service) http.Handler {
	r := &Router{authSvc: authSvc, submitSvc: submitSvc, analysesSvc: analysesSvc, adviceSvc: adviceSvc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.SessionAuth(authSvc))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(60, 2))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Get("/metrics", middleware.MetricsHandler)

	// browser-facing routes carry the redirect contract; rendering itself
	// lives in the frontend
	mux.Group(func(pg chi.Router) {
		pg.Use(middleware.PageGuard)
		pg.Get("/", r.handleLanding)
		pg.Get("/login", r.handleLoginPage)
		pg.Get("/dashboard", r.handleDashboardPage)
		pg.Get("/dashboard/analysis/{id}", r.handleDashboardPage)
	})

	mux.Route("/v1", func(api chi.Router) {
		api.Post("/auth/signup", r.wrap(r.handleSignUp))
		api.Post("/auth/login", r.wrap(r.handleLogIn))
		api.Post("/auth/logout", r.wrap(r.handleLogOut))

		api.Group(func(priv chi.Router) {
			priv.Use(middleware.RequireOwner)
			priv.Get("/me", r.wrap(r.handleMe))
			priv.Post("/analyses", r.wrap(r.handleSubmit))
			priv.Get("/analyses", r.wrap(r.handleHistory))
			priv.Get("/analyses/{id}", r.wrap(r.handleDetail))
			priv.Post("/analyses/{id}/advice", r.wrap(r.handleAdvice))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, sessions.ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, err)
		case errors.Is(err, domanalyses.ErrNotFound), errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, users.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, domadvice.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, err)
		default:
			var stageErr *appsubs.StageError
			if errors.As(err, &stageErr) {
				writeJSON(w, http.StatusBadGateway, map[string]any{
					"error": stageErr.Err.Error(),
					"stage": string(stageErr.Stage),
				})
				return
			}
			writeError(w, http.StatusInternalServerError, err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// POST /v1/auth/signup
// Body: {"email": "...", "password": "..."}
func (r *Router) handleSignUp(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateEmail(body.Email); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil
	}
	if err := middleware.ValidatePassword(body.Password); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil
	}
	u, err := r.authSvc.SignUp(req.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, u)
	return nil
}

// POST /v1/auth/login
func (r *Router) handleLogIn(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	sess, err := r.authSvc.LogIn(req.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
	})
	return nil
}

// POST /v1/auth/logout
func (r *Router) handleLogOut(w http.ResponseWriter, req *http.Request) error {
	if c, err := req.Cookie(middleware.SessionCookie); err == nil {
		if err := r.authSvc.LogOut(req.Context(), c.Value); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
	return nil
}

// GET /v1/me
func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) error {
	owner, _ := middleware.OwnerFromContext(req.Context())
	writeJSON(w, http.StatusOK, map[string]string{"owner_id": owner})
	return nil
}

// POST /v1/analyses
// Multipart body with one "file" field: runs upload → inference → persist.
func (r *Router) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	owner, _ := middleware.OwnerFromContext(req.Context())

	req.Body = http.MaxBytesReader(w, req.Body, middleware.MaxUploadBytes)
	if err := req.ParseMultipartForm(middleware.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err))
		return nil
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing file field"))
		return nil
	}
	defer file.Close()

	if err := middleware.ValidateImageFilename(header.Filename); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil
	}
	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("reading upload: %w", err))
		return nil
	}

	middleware.IncrementSubmissions()
	res, err := r.submitSvc.Submit(req.Context(), appsubs.SubmitCommand{
		OwnerID:  owner,
		Filename: header.Filename,
		Image:    image,
	})
	if err != nil {
		middleware.IncrementSubmissionsFailed()
		var stageErr *appsubs.StageError
		// a persist failure still delivers the verdict to the caller
		if errors.As(err, &stageErr) && stageErr.Result != nil {
			writeJSON(w, http.StatusOK, map[string]any{
				"result":    stageErr.Result,
				"persisted": false,
				"warning":   stageErr.Err.Error(),
			})
			return nil
		}
		return err
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"result":    res.Result,
		"record":    res.Record,
		"persisted": true,
	})
	return nil
}

// GET /v1/analyses
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	owner, _ := middleware.OwnerFromContext(req.Context())
	list, err := r.analysesSvc.History(req.Context(), owner)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, list)
	return nil
}

// GET /v1/analyses/{id}
func (r *Router) handleDetail(w http.ResponseWriter, req *http.Request) error {
	owner, _ := middleware.OwnerFromContext(req.Context())
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil
	}
	view, err := r.analysesSvc.Detail(req.Context(), owner, domanalyses.AnalysisID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, view)
	return nil
}

// POST /v1/analyses/{id}/advice
func (r *Router) handleAdvice(w http.ResponseWriter, req *http.Request) error {
	if r.adviceSvc == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("advice is not configured"))
		return nil
	}
	owner, _ := middleware.OwnerFromContext(req.Context())
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil
	}
	text, err := r.adviceSvc.ForAnalysis(req.Context(), owner, domanalyses.AnalysisID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": text})
	return nil
}

func (r *Router) handleLanding(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome! The API is running."})
}

func (r *Router) handleLoginPage(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "login"})
}

func (r *Router) handleDashboardPage(w http.ResponseWriter, req *http.Request) {
	owner, _ := middleware.OwnerFromContext(req.Context())
	writeJSON(w, http.StatusOK, map[string]string{"page": "dashboard", "owner_id": owner})
}
