package domain

import (
	"fmt"
	"strings"
)

// ValidationError is a structural precondition failure, distinct from the
// domain-error taxonomy raised by commands.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ValidateOrganization checks structural constraints on an organization.
func ValidateOrganization(org *Organization) error {
	if strings.TrimSpace(org.Name) == "" {
		return invalidField("name", "must not be empty")
	}
	return nil
}

// ValidateProject checks structural constraints on a project.
func ValidateProject(project *Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return invalidField("name", "must not be empty")
	}
	if !ValidKeyPrefix(project.KeyPrefix) {
		return invalidField("key_prefix", "must be an uppercase letter followed by uppercase alphanumerics")
	}
	return nil
}

// ValidateColumn checks structural constraints on a workflow column.
func ValidateColumn(column *WorkflowColumn) error {
	if strings.TrimSpace(column.Name) == "" {
		return invalidField("name", "must not be empty")
	}
	if column.Position < 0 {
		return invalidField("position", "must not be negative")
	}
	return nil
}

// ValidateMembership checks structural constraints on a membership.
func ValidateMembership(membership *Membership) error {
	switch membership.Role {
	case MemberRoleAdmin, MemberRoleMember, MemberRoleViewer:
		return nil
	default:
		return invalidField("role", "unknown membership role")
	}
}

// ValidateTicket checks structural constraints on a ticket and applies
// normalized defaults: tags are normalized in place and an absent
// description stays the empty string.
func ValidateTicket(ticket *Ticket) error {
	title := strings.TrimSpace(ticket.Title)
	if title == "" {
		return invalidField("title", "must not be empty")
	}
	if len(title) > TitleMaxLength {
		return invalidField("title", "exceeds maximum length")
	}
	if len(ticket.Description) > DescriptionMaxLength {
		return invalidField("description", "exceeds maximum length")
	}
	if ticket.Number <= 0 {
		return invalidField("number", "must be positive")
	}
	if ticket.StatusColumnID == "" {
		return invalidField("status_column_id", "must reference a column")
	}
	if ticket.UpdatedAt.Before(ticket.CreatedAt) {
		return invalidField("updated_at", "must not precede created_at")
	}
	ticket.Tags = NormalizeTags(ticket.Tags)
	return nil
}
