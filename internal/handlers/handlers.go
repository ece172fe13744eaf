package handlers

import (
	"net/http"

	_ "github.com/imelnikov/transferhub/docs"
	"github.com/imelnikov/transferhub/internal/handlers/account"
	authhandlers "github.com/imelnikov/transferhub/internal/handlers/auth"
	"github.com/imelnikov/transferhub/internal/handlers/transfer"
	"github.com/imelnikov/transferhub/internal/service"
	"github.com/imelnikov/transferhub/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=handlers_mock.go -package=handlers

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	CreateAccount(w http.ResponseWriter, r *http.Request)
	DeleteAccount(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	CreateBalance(w http.ResponseWriter, r *http.Request)
	DeleteBalance(w http.ResponseWriter, r *http.Request)
	SwitchPrimaryBalance(w http.ResponseWriter, r *http.Request)
}

type TransferHandler interface {
	Initiate(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	AccountHandler  AccountHandler
	TransferHandler TransferHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		AccountHandler:  account.New(s.AccountService),
		TransferHandler: transfer.New(s.TransferService),
		jwtService:      jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.jwtService))
			r.Route("/account", func(r chi.Router) {
				r.Post("/", h.AccountHandler.CreateAccount)
				r.Get("/", h.AccountHandler.GetAccount)
				r.Delete("/", h.AccountHandler.DeleteAccount)
				r.Route("/balances", func(r chi.Router) {
					r.Post("/", h.AccountHandler.CreateBalance)
					r.Delete("/{balanceNumber}", h.AccountHandler.DeleteBalance)
					r.Post("/{balanceNumber}/primary", h.AccountHandler.SwitchPrimaryBalance)
				})
			})
			r.Route("/transfer", func(r chi.Router) {
				r.Post("/", h.TransferHandler.Initiate)
				r.Post("/confirm", h.TransferHandler.Confirm)
			})
		})
	})

	return r
}
