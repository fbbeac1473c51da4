package request

type CreateMembership struct {
	UserID          string `json:"user_id" validate:"required"`
	ClubID          string `json:"club_id" validate:"required"`
	PermissionLevel int    `json:"permission_level" validate:"min=0,max=2"`
}
