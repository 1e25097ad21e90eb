package handler

import (
	attendancedomain "club-app-go/internal/domain/attendance"
	financedomain "club-app-go/internal/domain/finance"
	locationdomain "club-app-go/internal/domain/location"
	memberdomain "club-app-go/internal/domain/member"
	presenterdomain "club-app-go/internal/domain/presenter"
	roomsdomain "club-app-go/internal/domain/rooms"
	suggestiondomain "club-app-go/internal/domain/suggestion"
	votingdomain "club-app-go/internal/domain/voting"
	warningdomain "club-app-go/internal/domain/warning"
	"club-app-go/internal/scheduler"
	"club-app-go/pkg/logger"
)

type Handlers struct {
	Members     *memberdomain.Service
	Finance     *financedomain.Service
	Warnings    *warningdomain.Engine
	Attendance  *attendancedomain.Service
	Voting      *votingdomain.Service
	Rooms       *roomsdomain.Service
	Locations   *locationdomain.Service
	Presenters  *presenterdomain.Service
	Suggestions *suggestiondomain.Service
	Sweeps      *scheduler.Scheduler

	log logger.Logger
}

func New(
	members *memberdomain.Service,
	finance *financedomain.Service,
	warnings *warningdomain.Engine,
	attendance *attendancedomain.Service,
	voting *votingdomain.Service,
	rooms *roomsdomain.Service,
	locations *locationdomain.Service,
	presenters *presenterdomain.Service,
	suggestions *suggestiondomain.Service,
	sweeps *scheduler.Scheduler,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Members:     members,
		Finance:     finance,
		Warnings:    warnings,
		Attendance:  attendance,
		Voting:      voting,
		Rooms:       rooms,
		Locations:   locations,
		Presenters:  presenters,
		Suggestions: suggestions,
		Sweeps:      sweeps,
		log:         log,
	}
}
