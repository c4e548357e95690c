package usecases

import (
	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
)

type UnverifiedAccountDTO struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	CreatedAt          string `json:"created_at"`
	Status             string `json:"status"`
	HoursSinceCreation int    `json:"hours_since_creation"`
	ExpiresInHours     int    `json:"expires_in_hours"`
	Protected          bool   `json:"protected"`
}

// DeletedAccountDTO is the pre-delete snapshot returned by cleanups.
type DeletedAccountDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func toDeletedDTO(a *account.Account) DeletedAccountDTO {
	return DeletedAccountDTO{
		ID:        a.ID(),
		Username:  a.Username(),
		Email:     a.Email(),
		CreatedAt: biztime.FormatRFC3339(a.CreatedAt()),
	}
}

// usernames lists the usernames for audit descriptions.
func usernames(accounts []*account.Account) []string {
	names := make([]string, 0, len(accounts))
	for _, a := range accounts {
		names = append(names, a.Username())
	}
	return names
}
