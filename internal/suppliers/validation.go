package suppliers

import (
	"fmt"
	"strings"

	"github.com/khohang/khohang/internal/platform/httpx"
)

func (s *Service) validate(sup Supplier) error {
	if strings.TrimSpace(sup.Name) == "" {
		return fmt.Errorf("supplier name is required: %w", httpx.ErrValidation)
	}
	if strings.TrimSpace(sup.Contact) == "" {
		return fmt.Errorf("supplier contact is required: %w", httpx.ErrValidation)
	}
	if strings.TrimSpace(sup.Address) == "" {
		return fmt.Errorf("supplier address is required: %w", httpx.ErrValidation)
	}
	return nil
}
