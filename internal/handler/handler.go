package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/paylinq/workforce/backend/internal/cache"
	"github.com/paylinq/workforce/backend/internal/config"
	"github.com/paylinq/workforce/backend/internal/currency"
	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	cache       *cache.Cache
	fxClient    *currency.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, c *cache.Cache, fxClient *currency.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		cache:       c,
		fxClient:    fxClient,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in worker
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/workers", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin})).Post("/", h.CreateWorker)
			r.Get("/", h.GetAllWorkers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.workerInfo)
				r.Get("/", h.GetWorker)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin})).Patch("/", h.UpdateWorker)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin})).Delete("/", h.DeleteWorker)
			})
		})

		r.Route("/stations", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateStation)
			r.Get("/", h.GetAllStations)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.station)
				r.Get("/", h.GetStation)
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Patch("/", h.UpdateStation)
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin})).Delete("/", h.DeleteStation)
				r.Get("/coverage", h.GetStationCoverage)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateShift)
			r.Get("/", h.GetShifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shift)
				r.Get("/", h.GetShift)
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Patch("/", h.UpdateShift)
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Patch("/time", h.UpdateShiftTime)
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Delete("/", h.DeleteShift)
			})
		})

		r.Route("/shift-templates", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateShiftTemplate)
			r.Get("/", h.GetAllShiftTemplates)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftTemplate)
				r.Get("/", h.GetShiftTemplate)
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Patch("/", h.UpdateShiftTemplate)
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin})).Delete("/", h.DeleteShiftTemplate)
			})
		})

		r.Route("/shift-swaps", func(r chi.Router) {
			r.With(h.myInfo).Post("/", h.RequestShiftSwap)
			r.Get("/", h.GetAllShiftSwaps)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftSwap)
				r.Get("/", h.GetShiftSwap)
				r.With(h.myInfo).With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Post("/decide", h.DecideShiftSwap)
				r.With(h.myInfo).Post("/cancel", h.CancelShiftSwap)
			})
		})

		r.Route("/worker-types", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin})).Post("/", h.CreateWorkerType)
			r.Get("/", h.GetAllWorkerTypes)
			r.Route("/{id}", func(r chi.Router) {
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin})).Patch("/", h.UpdateWorkerType)
				r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin})).Delete("/", h.DeleteWorkerType)
			})
		})

		r.Route("/pay-components", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager}))
			r.Post("/", h.CreatePayComponent)
			r.Get("/", h.GetAllPayComponents)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", h.UpdatePayComponent)
				r.Delete("/", h.DeletePayComponent)
			})
		})

		r.Route("/pay-structures", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager}))
			r.Post("/", h.CreatePayStructure)
			r.Get("/", h.GetAllPayStructures)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetPayStructure)
				r.Delete("/", h.DeletePayStructure)
			})
		})

		r.Route("/timesheets", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Post("/generate", h.GenerateTimesheet)
			r.Get("/", h.GetTimesheet)
			r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Post("/approve", h.ApproveTimesheet)
		})

		r.Route("/payroll-runs", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager}))
			r.Post("/", h.CreatePayrollRun)
			r.Get("/", h.GetAllPayrollRuns)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.payrollRun)
				r.Get("/", h.GetPayrollRun)
				r.Post("/transition", h.TransitionPayrollRun)
				r.Post("/calculate", h.CalculatePayrollRun)
				r.Get("/entries", h.GetPayrollRunEntries)
				r.Delete("/", h.DeletePayrollRun)
			})
		})

		r.Route("/currency-rates", func(r chi.Router) {
			r.Get("/", h.GetCurrencyRates)
			r.With(h.RequiredRole([]domain.AccountRole{domain.RoleAdmin, domain.RoleManager})).Post("/refresh", h.RefreshCurrencyRates)
		})
	})
}
