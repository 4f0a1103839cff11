package domain

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// HoursScale is the number of fractional digits hours are stored with.
const HoursScale = 2

// Project is the single record managed by the console. It is storage-agnostic
// and shared by the repositories and the session controller.
//
// Every field except ID is optional: a nil pointer means no value was supplied.
// ID is zero until the store assigns one on creation.
type Project struct {
	ID             int              `json:"id"`
	Name           *string          `json:"name"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
	ActualHours    *decimal.Decimal `json:"actual_hours"`
	Difficulty     *int             `json:"difficulty"`
	Notes          *string          `json:"notes"`
}

// String renders the full description shown in the status line.
func (p Project) String() string {
	return fmt.Sprintf("Project(id=%d, name=%s, estimatedHours=%s, actualHours=%s, difficulty=%s, notes=%s)",
		p.ID,
		FormatString(p.Name),
		FormatHours(p.EstimatedHours),
		FormatHours(p.ActualHours),
		FormatInt(p.Difficulty),
		FormatString(p.Notes),
	)
}

// FormatString returns s or "null" when absent.
func FormatString(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

// FormatHours renders a decimal with exactly two fractional digits, or "null".
func FormatHours(d *decimal.Decimal) string {
	if d == nil {
		return "null"
	}
	return d.StringFixed(HoursScale)
}

// FormatInt returns the decimal form of n, or "null" when absent.
func FormatInt(n *int) string {
	if n == nil {
		return "null"
	}
	return strconv.Itoa(*n)
}

// Merge returns a copy of base where every non-nil field of patch replaces
// the value in base. The id always comes from base.
func Merge(base, patch Project) Project {
	out := base
	if patch.Name != nil {
		out.Name = patch.Name
	}
	if patch.EstimatedHours != nil {
		out.EstimatedHours = patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		out.ActualHours = patch.ActualHours
	}
	if patch.Difficulty != nil {
		out.Difficulty = patch.Difficulty
	}
	if patch.Notes != nil {
		out.Notes = patch.Notes
	}
	return out
}

// Clone returns a copy that shares no pointers with p.
func (p Project) Clone() Project {
	out := Project{ID: p.ID}
	if p.Name != nil {
		v := *p.Name
		out.Name = &v
	}
	if p.EstimatedHours != nil {
		v := *p.EstimatedHours
		out.EstimatedHours = &v
	}
	if p.ActualHours != nil {
		v := *p.ActualHours
		out.ActualHours = &v
	}
	if p.Difficulty != nil {
		v := *p.Difficulty
		out.Difficulty = &v
	}
	if p.Notes != nil {
		v := *p.Notes
		out.Notes = &v
	}
	return out
}
