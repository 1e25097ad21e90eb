package httpserver

import (
	"net/http"
	"time"

	"club-app-go/internal/config"
	"club-app-go/internal/transport/httpserver/handler"
	authmw "club-app-go/internal/transport/httpserver/middleware"
	"club-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, members authmw.MemberLoader, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:5173"}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		identity := authmw.NewIdentity(members, log)
		r.Group(func(r chi.Router) {
			r.Use(identity.Middleware)

			r.Get("/dashboard/stats", handlers.DashboardStats)

			r.Get("/members/me", handlers.GetMe)
			r.Post("/members/me/password", handlers.ChangePassword)
			r.Get("/members", handlers.ListMembers)
			r.Get("/members/rankings", handlers.MemberRankings)
			r.Get("/members/{id}", handlers.GetMember)
			r.Patch("/members/{id}", handlers.UpdateMember)

			r.Get("/votes", handlers.ListActiveVotes)
			r.Get("/votes/history", handlers.VoteHistory)
			r.Get("/votes/{id}/responses", handlers.VoteResponses)
			r.Post("/votes/{id}/respond", handlers.Respond)

			r.Get("/attendance/member/{memberId}", handlers.AttendanceByMember)
			r.Get("/attendance", handlers.AttendanceByDate)
			r.Post("/pending-attendance", handlers.SubmitPendingAttendance)
			r.Put("/pending-attendance/{id}", handlers.UpdatePendingAttendance)
			r.Delete("/pending-attendance/{id}", handlers.DeletePendingAttendance)

			r.Get("/room-assignments", handlers.ListRoomAssignments)
			r.Get("/room-assignments/{id}", handlers.GetRoomAssignment)

			r.Get("/financial/account", handlers.GetMyAccount)
			r.Get("/financial/transactions", handlers.ListTransactions)
			r.Get("/financial/transactions/{memberId}", handlers.ListTransactions)

			r.Get("/locations", handlers.ListLocations)

			r.Get("/presenters", handlers.ListPresenters)
			r.Post("/presenters/{id}/topic", handlers.SubmitPresenterTopic)

			r.Post("/suggestions", handlers.CreateSuggestion)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAdmin)

				r.Post("/members", handlers.CreateMember)
				r.Post("/members/{id}/status", handlers.SetMemberStatus)

				r.Post("/votes", handlers.CreateVote)

				r.Get("/pending-attendance", handlers.ListPendingAttendance)
				r.Post("/pending-attendance/{id}/approve", handlers.ApprovePendingAttendance)
				r.Post("/pending-attendance/{id}/reject", handlers.RejectPendingAttendance)
				r.Post("/attendance", handlers.RecordAttendance)

				r.Post("/room-assignments", handlers.CreateRoomAssignment)
				r.Post("/room-assignments/suggest", handlers.SuggestRooms)

				r.Get("/financial/accounts", handlers.ListAccounts)
				r.Post("/financial/deposit", handlers.Deposit)
				r.Post("/financial/deduct", handlers.Deduct)
				r.Post("/financial/annual-fee", handlers.SetAnnualFee)

				r.Get("/warnings", handlers.ListWarnings)
				r.Post("/warnings", handlers.IssueWarning)
				r.Post("/warnings/{id}/resolve", handlers.ResolveWarning)
				r.Post("/warnings/restore/{memberId}", handlers.RestoreMember)

				r.Post("/locations", handlers.CreateLocation)
				r.Patch("/locations/{id}", handlers.UpdateLocation)

				r.Post("/presenters", handlers.SchedulePresenter)

				r.Get("/suggestions", handlers.ListSuggestions)
				r.Post("/suggestions/{id}/review", handlers.ReviewSuggestion)

				r.Post("/sweeps/vote-deadline", handlers.TriggerVoteDeadlineSweep)
				r.Post("/sweeps/warning-reset", handlers.TriggerWarningReset)
			})
		})
	})

	return r
}
