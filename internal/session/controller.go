// Package session implements the interactive menu loop that drives project
// CRUD against a Store and tracks the currently selected project.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-console/internal/projects/domain"
)

// Store is the persistence collaborator used by the controller.
// FetchByID returns domain.ErrNotFound when the id does not exist; Update and
// Delete fail for unknown ids.
type Store interface {
	Create(ctx context.Context, p domain.Project) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	FetchByID(ctx context.Context, id int) (*domain.Project, error)
	Update(ctx context.Context, p domain.Project) error
	Delete(ctx context.Context, id int) error
}

// Controller owns the session state. It is not safe for concurrent use.
type Controller struct {
	store   Store
	prompt  *Prompter
	out     io.Writer
	log     *zap.Logger
	current *domain.Project
}

// NewController creates a controller reading commands from in and writing to out.
func NewController(store Store, in io.Reader, out io.Writer, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		store:  store,
		prompt: NewPrompter(in, out),
		out:    out,
		log:    log,
	}
}

// Current returns the selected project, or nil.
func (c *Controller) Current() *domain.Project {
	return c.current
}

// Run loops until the user exits with blank input. Validation and store
// errors are reported and the loop continues; only a failing input stream
// or a cancelled context ends it with an error.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		done, err := c.step(ctx)
		if done {
			return nil
		}
		if err == nil {
			continue
		}

		var ie *InputError
		switch {
		case errors.As(err, &ie):
			// a broken input stream would fail again on every iteration
			c.log.Error("session aborted", zap.Error(err))
			return err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			c.log.Debug("recovered from error", zap.Error(err))
			c.printf("\nError: %v Try again\n", err)
		}
	}
}

func (c *Controller) step(ctx context.Context) (bool, error) {
	c.printStatus()

	n, err := c.prompt.Int("Enter a menu selection")
	if err != nil {
		return false, err
	}

	choice := ParseChoice(n)
	switch choice {
	case ChoiceExit:
		c.println("\nExiting application. Goodbye!")
		return true, nil
	case ChoiceAdd:
		return false, c.Add(ctx)
	case ChoiceList:
		return false, c.List(ctx)
	case ChoiceSelect:
		return false, c.Select(ctx)
	case ChoiceUpdate:
		return false, c.Update(ctx)
	case ChoiceDelete:
		return false, c.Delete(ctx)
	case ChoiceInvalid:
		c.printf("\n%d is not a valid selection. Try again\n", *n)
		return false, nil
	}
	return false, nil
}

func (c *Controller) printStatus() {
	printMenu(c.out)
	if c.current == nil {
		c.println("\nYou are not working with a project")
	} else {
		c.printf("\nYou are working with project: %s\n", c.current)
	}
}

// Add prompts for every field and creates a project. Blank fields stay absent.
func (c *Controller) Add(ctx context.Context) error {
	fields, err := c.readFields(fieldPrompts{
		name:           "Enter the project name",
		estimatedHours: "Enter the estimated hours",
		actualHours:    "Enter the actual hours",
		difficulty:     "Enter the project difficulty (1-5)",
		notes:          "Enter the project notes",
	})
	if err != nil {
		return err
	}

	created, err := c.store.Create(ctx, fields)
	if err != nil {
		return err
	}
	c.printf("You have successfully created project: %s\n", created)
	return nil
}

// List prints every project id and name in store order.
func (c *Controller) List(ctx context.Context) error {
	projects, err := c.store.ListAll(ctx)
	if err != nil {
		return err
	}

	c.println("\nProjects:")
	for _, p := range projects {
		c.printf("   %d:   %s\n", p.ID, domain.FormatString(p.Name))
	}
	return nil
}

// Select lists projects, asks for an id and makes that project current.
func (c *Controller) Select(ctx context.Context) error {
	if err := c.List(ctx); err != nil {
		return err
	}

	id, err := c.prompt.Int("Enter a project ID to select a project")
	if err != nil {
		return err
	}

	c.current = nil
	if id == nil {
		c.println("\nInvalid project ID selected")
		return nil
	}

	p, err := c.store.FetchByID(ctx, *id)
	if errors.Is(err, domain.ErrNotFound) {
		c.println("\nInvalid project ID selected")
		return nil
	}
	if err != nil {
		return err
	}
	c.current = p
	return nil
}

// Update edits the current project. Blank answers keep the current value.
func (c *Controller) Update(ctx context.Context) error {
	if c.current == nil {
		c.println("\nPlease select a project.")
		return nil
	}

	cur := *c.current
	patch, err := c.readFields(fieldPrompts{
		name:           hint("Enter the project name", domain.FormatString(cur.Name)),
		estimatedHours: hint("Enter the estimated hours", domain.FormatHours(cur.EstimatedHours)),
		actualHours:    hint("Enter the actual hours", domain.FormatHours(cur.ActualHours)),
		difficulty:     hint("Enter the project difficulty (1-5)", domain.FormatInt(cur.Difficulty)),
		notes:          hint("Enter the project notes", domain.FormatString(cur.Notes)),
	})
	if err != nil {
		return err
	}

	merged := domain.Merge(cur, patch)
	if err := c.store.Update(ctx, merged); err != nil {
		return err
	}

	refreshed, err := c.store.FetchByID(ctx, cur.ID)
	if errors.Is(err, domain.ErrNotFound) {
		// deleted behind our back
		c.current = nil
		return nil
	}
	if err != nil {
		return err
	}
	c.current = refreshed
	return nil
}

// Delete lists projects, asks for an id and deletes it. Deleting the current
// project clears the selection.
func (c *Controller) Delete(ctx context.Context) error {
	if err := c.List(ctx); err != nil {
		return err
	}

	id, err := c.prompt.Int("Enter the ID of the project to delete")
	if err != nil {
		return err
	}
	if id == nil {
		c.println("\nNo project ID entered. Nothing was deleted.")
		return nil
	}

	if err := c.store.Delete(ctx, *id); err != nil {
		return err
	}
	c.printf("Project %d has been successfully deleted.\n", *id)

	if c.current != nil && c.current.ID == *id {
		c.current = nil
	}
	return nil
}

type fieldPrompts struct {
	name, estimatedHours, actualHours, difficulty, notes string
}

// readFields asks for the five editable fields in order. The first invalid
// answer aborts the whole form.
func (c *Controller) readFields(prompts fieldPrompts) (domain.Project, error) {
	var p domain.Project
	var err error

	if p.Name, err = c.prompt.String(prompts.name); err != nil {
		return domain.Project{}, err
	}
	if p.EstimatedHours, err = c.prompt.Decimal(prompts.estimatedHours); err != nil {
		return domain.Project{}, err
	}
	if p.ActualHours, err = c.prompt.Decimal(prompts.actualHours); err != nil {
		return domain.Project{}, err
	}
	if p.Difficulty, err = c.prompt.Int(prompts.difficulty); err != nil {
		return domain.Project{}, err
	}
	if p.Notes, err = c.prompt.String(prompts.notes); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func hint(prompt, current string) string {
	return fmt.Sprintf("%s [%s]", prompt, current)
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Controller) println(s string) {
	fmt.Fprintln(c.out, s)
}
