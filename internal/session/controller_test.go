package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/projects-console/internal/projects/domain"
	"github.com/GoSim-25-26J-441/projects-console/internal/projects/repository"
)

// recordingStore wraps the in-memory repository and records every call.
type recordingStore struct {
	*repository.MemoryRepository
	calls   []string
	created []domain.Project
	updated []domain.Project
	failOn  map[string]error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		MemoryRepository: repository.NewMemoryRepository(),
		failOn:           map[string]error{},
	}
}

func (s *recordingStore) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	s.calls = append(s.calls, "create")
	s.created = append(s.created, p)
	if err := s.failOn["create"]; err != nil {
		return nil, err
	}
	return s.MemoryRepository.Create(ctx, p)
}

func (s *recordingStore) ListAll(ctx context.Context) ([]domain.Project, error) {
	s.calls = append(s.calls, "list")
	if err := s.failOn["list"]; err != nil {
		return nil, err
	}
	return s.MemoryRepository.ListAll(ctx)
}

func (s *recordingStore) FetchByID(ctx context.Context, id int) (*domain.Project, error) {
	s.calls = append(s.calls, "fetch")
	if err := s.failOn["fetch"]; err != nil {
		return nil, err
	}
	return s.MemoryRepository.FetchByID(ctx, id)
}

func (s *recordingStore) Update(ctx context.Context, p domain.Project) error {
	s.calls = append(s.calls, "update")
	s.updated = append(s.updated, p)
	if err := s.failOn["update"]; err != nil {
		return err
	}
	return s.MemoryRepository.Update(ctx, p)
}

func (s *recordingStore) Delete(ctx context.Context, id int) error {
	s.calls = append(s.calls, "delete")
	if err := s.failOn["delete"]; err != nil {
		return err
	}
	return s.MemoryRepository.Delete(ctx, id)
}

func (s *recordingStore) reset() {
	s.calls = nil
	s.created = nil
	s.updated = nil
}

func strPtr(s string) *string {
	return &s
}

func intPtr(n int) *int {
	return &n
}

func hours(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// seedAlpha stores the reference project {1, Alpha, 10.00, 5.00, 3, x}.
func seedAlpha(t *testing.T, s *recordingStore) domain.Project {
	t.Helper()
	p, err := s.MemoryRepository.Create(context.Background(), domain.Project{
		Name:           strPtr("Alpha"),
		EstimatedHours: hours("10.00"),
		ActualHours:    hours("5.00"),
		Difficulty:     intPtr(3),
		Notes:          strPtr("x"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, p.ID)
	return *p
}

func newTestController(s Store, input string) (*Controller, *bytes.Buffer) {
	var out bytes.Buffer
	return NewController(s, strings.NewReader(input), &out, nil), &out
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestRun_ExitsOnBlankInput(t *testing.T) {
	store := newRecordingStore()
	c, out := newTestController(store, "\n")

	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "These are the available selections. Press the Enter key to quit:")
	assert.Contains(t, text, "  1) Add a project\n  2) List projects\n  3) Select a project\n  4) Update project details\n  5) Delete a project\n")
	assert.Contains(t, text, "You are not working with a project")
	assert.Contains(t, text, "Enter a menu selection: ")
	assert.Contains(t, text, "Exiting application. Goodbye!")
	assert.Empty(t, store.calls)
}

func TestRun_ExitsOnEndOfInput(t *testing.T) {
	c, out := newTestController(newRecordingStore(), "")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_InvalidSelectionContinues(t *testing.T) {
	store := newRecordingStore()
	c, out := newTestController(store, script("9", "-1", ""))

	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "9 is not a valid selection. Try again")
	assert.Contains(t, text, "-1 is not a valid selection. Try again")
	assert.Contains(t, text, "Goodbye!")
	assert.Empty(t, store.calls)
}

func TestRun_RecoversFromBadMenuInput(t *testing.T) {
	c, out := newTestController(newRecordingStore(), script("abc", ""))

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: abc is not a valid number. Try again")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_RecoversFromStoreFailure(t *testing.T) {
	store := newRecordingStore()
	store.failOn["list"] = &domain.StoreError{Op: "list", Err: errors.New("connection refused")}
	c, out := newTestController(store, script("2", ""))

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: list project: connection refused Try again")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_RecoversFromUntypedStoreFailure(t *testing.T) {
	store := newRecordingStore()
	store.failOn["list"] = errors.New("boom")
	c, out := newTestController(store, script("2", ""))

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: boom Try again")
}

func TestRun_StopsOnInputFailure(t *testing.T) {
	c := NewController(newRecordingStore(), failingReader{}, &bytes.Buffer{}, nil)

	err := c.Run(context.Background())
	var ie *InputError
	assert.True(t, errors.As(err, &ie))
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newTestController(newRecordingStore(), script("2", ""))

	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestRun_StatusLineShowsSelection(t *testing.T) {
	store := newRecordingStore()
	seedAlpha(t, store)
	c, out := newTestController(store, script("3", "1", ""))

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(),
		"You are working with project: Project(id=1, name=Alpha, estimatedHours=10.00, actualHours=5.00, difficulty=3, notes=x)")
}

func TestAdd(t *testing.T) {
	t.Run("blank fields are passed through as absent", func(t *testing.T) {
		store := newRecordingStore()
		c, out := newTestController(store, script("Proto", "", "", "", ""))

		require.NoError(t, c.Add(context.Background()))

		require.Len(t, store.created, 1)
		req := store.created[0]
		assert.Zero(t, req.ID)
		require.NotNil(t, req.Name)
		assert.Equal(t, "Proto", *req.Name)
		assert.Nil(t, req.EstimatedHours)
		assert.Nil(t, req.ActualHours)
		assert.Nil(t, req.Difficulty)
		assert.Nil(t, req.Notes)

		assert.Contains(t, out.String(), "You have successfully created project: Project(id=1, name=Proto, estimatedHours=null, actualHours=null, difficulty=null, notes=null)")
		assert.Nil(t, c.Current())
	})

	t.Run("all fields are coerced", func(t *testing.T) {
		store := newRecordingStore()
		c, _ := newTestController(store, script(" Beta ", "12.5", "3", "7", "some notes"))

		require.NoError(t, c.Add(context.Background()))

		require.Len(t, store.created, 1)
		req := store.created[0]
		assert.Equal(t, "Beta", *req.Name)
		assert.Equal(t, "12.50", req.EstimatedHours.StringFixed(2))
		assert.Equal(t, "3.00", req.ActualHours.StringFixed(2))
		assert.Equal(t, 7, *req.Difficulty)
		assert.Equal(t, "some notes", *req.Notes)
	})

	t.Run("prompts are issued in order", func(t *testing.T) {
		c, out := newTestController(newRecordingStore(), script("", "", "", "", ""))

		require.NoError(t, c.Add(context.Background()))
		assert.Contains(t, out.String(),
			"Enter the project name: Enter the estimated hours: Enter the actual hours: "+
				"Enter the project difficulty (1-5): Enter the project notes: ")
	})

	t.Run("invalid decimal aborts without store call", func(t *testing.T) {
		store := newRecordingStore()
		c, _ := newTestController(store, script("Proto", "ten"))

		err := c.Add(context.Background())

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Empty(t, store.calls)
	})

	t.Run("invalid difficulty aborts without store call", func(t *testing.T) {
		store := newRecordingStore()
		c, _ := newTestController(store, script("Proto", "1", "1", "hard"))

		err := c.Add(context.Background())

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Empty(t, store.calls)
	})

	t.Run("difficulty range is not enforced", func(t *testing.T) {
		store := newRecordingStore()
		c, _ := newTestController(store, script("Proto", "", "", "42", ""))

		require.NoError(t, c.Add(context.Background()))
		assert.Equal(t, 42, *store.created[0].Difficulty)
	})
}

func TestList(t *testing.T) {
	t.Run("empty store lists nothing", func(t *testing.T) {
		c, out := newTestController(newRecordingStore(), "")

		require.NoError(t, c.List(context.Background()))
		assert.Equal(t, "\nProjects:\n", out.String())
	})

	t.Run("prints id and name in store order", func(t *testing.T) {
		store := newRecordingStore()
		ctx := context.Background()
		_, _ = store.MemoryRepository.Create(ctx, domain.Project{Name: strPtr("Zeta")})
		_, _ = store.MemoryRepository.Create(ctx, domain.Project{Name: strPtr("Alpha")})
		c, out := newTestController(store, "")

		require.NoError(t, c.List(ctx))
		assert.Equal(t, "\nProjects:\n   2:   Alpha\n   1:   Zeta\n", out.String())
	})
}

func TestSelect(t *testing.T) {
	t.Run("selects an existing project", func(t *testing.T) {
		store := newRecordingStore()
		alpha := seedAlpha(t, store)
		c, out := newTestController(store, script("1"))

		require.NoError(t, c.Select(context.Background()))

		assert.Equal(t, []string{"list", "fetch"}, store.calls)
		require.NotNil(t, c.Current())
		assert.Equal(t, alpha, *c.Current())
		assert.Contains(t, out.String(), "   1:   Alpha")
		assert.Contains(t, out.String(), "Enter a project ID to select a project: ")
	})

	t.Run("unknown id leaves selection absent", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, out := newTestController(store, script("1", "99"))

		require.NoError(t, c.Select(context.Background()))
		require.NotNil(t, c.Current())

		require.NoError(t, c.Select(context.Background()))
		assert.Nil(t, c.Current())
		assert.Contains(t, out.String(), "Invalid project ID selected")
	})

	t.Run("blank id clears selection without fetching", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, out := newTestController(store, script("1", ""))

		require.NoError(t, c.Select(context.Background()))
		store.reset()

		require.NoError(t, c.Select(context.Background()))
		assert.Nil(t, c.Current())
		assert.Equal(t, []string{"list"}, store.calls)
		assert.Contains(t, out.String(), "Invalid project ID selected")
	})

	t.Run("invalid id keeps previous selection", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, _ := newTestController(store, script("1", "one"))

		require.NoError(t, c.Select(context.Background()))

		err := c.Select(context.Background())
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		require.NotNil(t, c.Current())
		assert.Equal(t, 1, c.Current().ID)
	})

	t.Run("fetch failure leaves selection absent", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, _ := newTestController(store, script("1", "1"))

		require.NoError(t, c.Select(context.Background()))
		store.failOn["fetch"] = &domain.StoreError{Op: "fetch", ID: 1, Err: errors.New("timeout")}

		err := c.Select(context.Background())
		require.Error(t, err)
		assert.Nil(t, c.Current())
	})
}

func TestUpdate(t *testing.T) {
	t.Run("requires a selection", func(t *testing.T) {
		store := newRecordingStore()
		c, out := newTestController(store, "")

		require.NoError(t, c.Update(context.Background()))
		assert.Equal(t, "\nPlease select a project.\n", out.String())
		assert.Empty(t, store.calls)
	})

	t.Run("single field change is merged with the selection", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, out := newTestController(store, script("1", "", "20", "", "", ""))

		require.NoError(t, c.Select(context.Background()))
		store.reset()

		require.NoError(t, c.Update(context.Background()))

		assert.Equal(t, []string{"update", "fetch"}, store.calls)
		require.Len(t, store.updated, 1)
		sent := store.updated[0]
		assert.Equal(t, 1, sent.ID)
		assert.Equal(t, "Alpha", *sent.Name)
		assert.Equal(t, "20.00", sent.EstimatedHours.StringFixed(2))
		assert.Equal(t, "5.00", sent.ActualHours.StringFixed(2))
		assert.Equal(t, 3, *sent.Difficulty)
		assert.Equal(t, "x", *sent.Notes)

		require.NotNil(t, c.Current())
		assert.Equal(t, "20.00", c.Current().EstimatedHours.StringFixed(2))

		text := out.String()
		assert.Contains(t, text, "Enter the project name [Alpha]: ")
		assert.Contains(t, text, "Enter the estimated hours [10.00]: ")
		assert.Contains(t, text, "Enter the actual hours [5.00]: ")
		assert.Contains(t, text, "Enter the project difficulty (1-5) [3]: ")
		assert.Contains(t, text, "Enter the project notes [x]: ")
	})

	t.Run("all blank reproduces the selection", func(t *testing.T) {
		store := newRecordingStore()
		alpha := seedAlpha(t, store)
		c, _ := newTestController(store, script("1", "", "", "", "", ""))

		require.NoError(t, c.Select(context.Background()))
		store.reset()

		require.NoError(t, c.Update(context.Background()))

		require.Len(t, store.updated, 1)
		assert.Equal(t, alpha, store.updated[0])
		assert.Equal(t, []string{"update", "fetch"}, store.calls)
		assert.Equal(t, alpha, *c.Current())
	})

	t.Run("every field replaced", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, _ := newTestController(store, script("1", "Beta", "1.5", "2", "5", "done"))

		require.NoError(t, c.Select(context.Background()))
		require.NoError(t, c.Update(context.Background()))

		cur := c.Current()
		require.NotNil(t, cur)
		assert.Equal(t, 1, cur.ID)
		assert.Equal(t, "Beta", *cur.Name)
		assert.Equal(t, "1.50", cur.EstimatedHours.StringFixed(2))
		assert.Equal(t, "2.00", cur.ActualHours.StringFixed(2))
		assert.Equal(t, 5, *cur.Difficulty)
		assert.Equal(t, "done", *cur.Notes)
	})

	t.Run("selection is refreshed from the store", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, _ := newTestController(store, script("1", "Beta", "", "", "", ""))

		require.NoError(t, c.Select(context.Background()))
		before := c.Current()

		require.NoError(t, c.Update(context.Background()))
		assert.NotSame(t, before, c.Current())
		assert.Equal(t, "Beta", *c.Current().Name)
	})

	t.Run("validation error leaves selection and store untouched", func(t *testing.T) {
		store := newRecordingStore()
		alpha := seedAlpha(t, store)
		c, _ := newTestController(store, script("1", "", "lots"))

		require.NoError(t, c.Select(context.Background()))
		store.reset()

		err := c.Update(context.Background())
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Empty(t, store.calls)
		assert.Equal(t, alpha, *c.Current())
	})

	t.Run("store failure keeps the previous selection", func(t *testing.T) {
		store := newRecordingStore()
		alpha := seedAlpha(t, store)
		c, _ := newTestController(store, script("1", "Beta", "", "", "", ""))

		require.NoError(t, c.Select(context.Background()))
		store.failOn["update"] = &domain.StoreError{Op: "update", ID: 1, Err: domain.ErrNotFound}

		err := c.Update(context.Background())
		require.Error(t, err)
		assert.Equal(t, alpha, *c.Current())
	})
}

func TestDelete(t *testing.T) {
	t.Run("deleting the selection clears it", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, out := newTestController(store, script("1", "1"))

		require.NoError(t, c.Select(context.Background()))
		require.NoError(t, c.Delete(context.Background()))

		assert.Nil(t, c.Current())
		assert.Contains(t, out.String(), "Enter the ID of the project to delete: ")
		assert.Contains(t, out.String(), "Project 1 has been successfully deleted.")

		_, err := store.FetchByID(context.Background(), 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("deleting another project keeps the selection", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		_, err := store.MemoryRepository.Create(context.Background(), domain.Project{Name: strPtr("Beta")})
		require.NoError(t, err)
		c, _ := newTestController(store, script("1", "2"))

		require.NoError(t, c.Select(context.Background()))
		require.NoError(t, c.Delete(context.Background()))

		require.NotNil(t, c.Current())
		assert.Equal(t, 1, c.Current().ID)
	})

	t.Run("unknown id is a store error", func(t *testing.T) {
		store := newRecordingStore()
		c, out := newTestController(store, script("7"))

		err := c.Delete(context.Background())

		var se *domain.StoreError
		require.True(t, errors.As(err, &se))
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NotContains(t, out.String(), "successfully deleted")
	})

	t.Run("blank id deletes nothing", func(t *testing.T) {
		store := newRecordingStore()
		seedAlpha(t, store)
		c, _ := newTestController(store, script(""))

		require.NoError(t, c.Delete(context.Background()))
		assert.Equal(t, []string{"list"}, store.calls)
	})
}

func TestRun_FullSession(t *testing.T) {
	store := newRecordingStore()
	seedAlpha(t, store)
	input := script(
		// select Alpha
		"3", "1",
		// change estimated hours only
		"4", "", "20", "", "", "",
		// add Proto
		"1", "Proto", "", "", "", "",
		// delete Alpha, then try to update with nothing selected
		"5", "1",
		"4",
		"",
	)
	c, out := newTestController(store, input)

	require.NoError(t, c.Run(context.Background()))

	require.Len(t, store.updated, 1)
	assert.Equal(t, "20.00", store.updated[0].EstimatedHours.StringFixed(2))
	assert.Nil(t, c.Current())

	remaining, err := store.MemoryRepository.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Proto", *remaining[0].Name)

	text := out.String()
	assert.Contains(t, text, "Please select a project.")
	assert.Contains(t, text, "Goodbye!")
}
