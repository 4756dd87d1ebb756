package patients

import (
	"strings"

	"github.com/dentara/dentara/internal/masterdata/shared"
)

func (s *Service) validate(p Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return shared.ErrRequiredField
	}
	return nil
}
