package core

import (
	"github.com/rs/zerolog"

	"github.com/edvin/bookclub/internal/config"
)

type Services struct {
	AuthState  *AuthStateService
	Session    *SessionService
	User       *UserService
	Login      *LoginService
	Book       *BookService
	Club       *ClubService
	Membership *MembershipService
	Meeting    *MeetingService
	Attendance *AttendanceService
}

func NewServices(db DB, log zerolog.Logger, verifier IdentityVerifier, cfg *config.Config) *Services {
	states := NewAuthStateService(db, cfg.StateTTL, cfg.ReturnURLAllowList)
	sessions := NewSessionService(db, cfg.SessionHashKey, cfg.SessionTTL)
	users := NewUserService(db)

	return &Services{
		AuthState:  states,
		Session:    sessions,
		User:       users,
		Login:      NewLoginService(log, states, users, sessions, verifier, cfg.ExchangeTimeout),
		Book:       NewBookService(db),
		Club:       NewClubService(db),
		Membership: NewMembershipService(db),
		Meeting:    NewMeetingService(db),
		Attendance: NewAttendanceService(db),
	}
}
