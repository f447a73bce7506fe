package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage project membership",
	Long: `Add, list, and remove project members and change their roles.

Members are addressed by email. Membership changes require the admin
role on the project; you can never change or remove your own
membership.

Examples:
  # Add a viewer (the default role)
  docvault member add api-reference teammate@example.com

  # Add an editor
  docvault member add api-reference teammate@example.com --role editor

  # Promote to admin
  docvault member set-role api-reference teammate@example.com admin

  # List members
  docvault member list api-reference`,
}

var memberAddCmd = &cobra.Command{
	Use:   "add [project-slug] [email]",
	Short: "Add a member to a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runMemberAdd,
}

var memberSetRoleCmd = &cobra.Command{
	Use:   "set-role [project-slug] [email] [role]",
	Short: "Change a member's role",
	Args:  cobra.ExactArgs(3),
	RunE:  runMemberSetRole,
}

var memberRemoveCmd = &cobra.Command{
	Use:   "remove [project-slug] [email]",
	Short: "Remove a member from a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runMemberRemove,
}

var memberListCmd = &cobra.Command{
	Use:   "list [project-slug]",
	Short: "List a project's members",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemberList,
}

var memberRolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List available roles",
	RunE:  runMemberRoles,
}

var memberRole string

func init() {
	memberAddCmd.Flags().StringVar(&memberRole, "role", "", "role name (defaults to the viewer role)")

	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberSetRoleCmd)
	memberCmd.AddCommand(memberRemoveCmd)
	memberCmd.AddCommand(memberListCmd)
	memberCmd.AddCommand(memberRolesCmd)
	rootCmd.AddCommand(memberCmd)
}

// resolveMemberTarget resolves a project slug and a member email to
// IDs usable with the membership service.
func resolveMemberTarget(ctx context.Context, actorID, slug, email string) (projectID, userID string, err error) {
	project, err := projectService.GetBySlug(ctx, actorID, slug)
	if err != nil {
		return "", "", fmt.Errorf("project not found: %s", slug)
	}

	user, err := membershipService.FindUser(ctx, actorID, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", fmt.Errorf("no account with email %s", email)
		}
		return "", "", fmt.Errorf("looking up user: %w", err)
	}
	return project.ID, user.ID, nil
}

func runMemberAdd(cmd *cobra.Command, args []string) error {
	if membershipService == nil || projectService == nil || authService == nil {
		return errors.New("membership service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	projectID, userID, err := resolveMemberTarget(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	member, err := membershipService.AddMember(ctx, actorID, projectID, userID, memberRole)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			return fmt.Errorf("%s is already a member of %s", args[1], args[0])
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("adding members requires the admin role")
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("no such user or role")
		}
		return fmt.Errorf("adding member: %w", err)
	}

	cmd.Printf("Added %s to %s (role: %s)\n", args[1], args[0], roleNameFor(ctx, member.RoleID))
	return nil
}

// roleNameFor maps a role ID to its display name, falling back to the
// ID when the lookup fails.
func roleNameFor(ctx context.Context, roleID string) string {
	roles, err := membershipService.Roles(ctx)
	if err != nil {
		return roleID
	}
	for _, r := range roles {
		if r.ID == roleID {
			return r.Name
		}
	}
	return roleID
}

func runMemberSetRole(cmd *cobra.Command, args []string) error {
	if membershipService == nil || projectService == nil {
		return errors.New("membership service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	projectID, userID, err := resolveMemberTarget(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	if err = membershipService.UpdateMemberRole(ctx, actorID, projectID, userID, args[2]); err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfModification):
			return fmt.Errorf("you cannot change your own role")
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("changing roles requires the admin role")
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("%s is not a member of %s", args[1], args[0])
		}
		return fmt.Errorf("changing role: %w", err)
	}

	cmd.Printf("Set %s's role on %s to %s\n", args[1], args[0], args[2])
	return nil
}

func runMemberRemove(cmd *cobra.Command, args []string) error {
	if membershipService == nil || projectService == nil {
		return errors.New("membership service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	projectID, userID, err := resolveMemberTarget(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	if err = membershipService.RemoveMember(ctx, actorID, projectID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfModification):
			return fmt.Errorf("you cannot remove yourself from a project")
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("removing members requires the admin role")
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("%s is not a member of %s", args[1], args[0])
		}
		return fmt.Errorf("removing member: %w", err)
	}

	cmd.Printf("Removed %s from %s\n", args[1], args[0])
	return nil
}

func runMemberList(cmd *cobra.Command, args []string) error {
	if membershipService == nil || projectService == nil {
		return errors.New("membership service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	project, err := projectService.GetBySlug(ctx, actorID, args[0])
	if err != nil {
		return fmt.Errorf("project not found: %s", args[0])
	}

	members, err := membershipService.ListMembers(ctx, actorID, project.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return fmt.Errorf("listing members requires project membership")
		}
		return fmt.Errorf("listing members: %w", err)
	}

	if len(members) == 0 {
		cmd.Println("No members.")
		return nil
	}

	cmd.Printf("Members of %s:\n", project.Name)
	cmd.Println()
	for i := range members {
		name := members[i].User.DisplayName
		if name == "" {
			name = members[i].User.Email
		}
		cmd.Printf("  %s <%s>\n", name, members[i].User.Email)
		cmd.Printf("    Role: %s\n", members[i].Role.Name)
	}
	return nil
}

func runMemberRoles(cmd *cobra.Command, _ []string) error {
	if membershipService == nil {
		return errors.New("membership service not configured")
	}

	roles, err := membershipService.Roles(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing roles: %w", err)
	}

	cmd.Println("Roles:")
	for _, r := range roles {
		marker := ""
		if r.IsDefault {
			marker = " (default)"
		}
		cmd.Printf("  %s%s\n", r.Name, marker)
	}
	return nil
}
