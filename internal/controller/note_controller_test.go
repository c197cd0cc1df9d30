package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/pkg/serverutils"
	"notevault-be/internal/repository/contract"
	"notevault-be/internal/service"
	"notevault-be/pkg/attachment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memNoteRepo mirrors the store's observable behavior: newest-first listing
// with a deterministic tie-break, case-insensitive substring search, and
// attachment lookup across all notes.
type memNoteRepo struct {
	notes map[primitive.ObjectID]*entity.Note
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: make(map[primitive.ObjectID]*entity.Note)}
}

func (m *memNoteRepo) Create(_ context.Context, note *entity.Note) error {
	cp := *note
	m.notes[note.Id] = &cp
	return nil
}

func (m *memNoteRepo) FindById(_ context.Context, id primitive.ObjectID) (*entity.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *memNoteRepo) FindAll(_ context.Context, search string) ([]*entity.Note, error) {
	term := strings.ToLower(search)
	out := make([]*entity.Note, 0, len(m.notes))
	for _, n := range m.notes {
		if term != "" &&
			!strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Content), term) {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Id.Hex() > out[j].Id.Hex()
	})
	return out, nil
}

func (m *memNoteRepo) Update(_ context.Context, note *entity.Note, expectedVersion *int64) (*entity.Note, error) {
	stored, ok := m.notes[note.Id]
	if !ok {
		return nil, nil
	}
	if expectedVersion != nil && stored.Version != *expectedVersion {
		return nil, contract.ErrVersionConflict
	}
	cp := *note
	cp.Version = stored.Version + 1
	m.notes[note.Id] = &cp
	out := cp
	return &out, nil
}

func (m *memNoteRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := m.notes[id]; !ok {
		return false, nil
	}
	delete(m.notes, id)
	return true, nil
}

func (m *memNoteRepo) FindAttachmentById(_ context.Context, id primitive.ObjectID) (*entity.Attachment, error) {
	for _, n := range m.notes {
		for _, a := range n.Attachments {
			if a.Id == id {
				cp := a
				return &cp, nil
			}
		}
	}
	return nil, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestApp(forwardMediaType bool) *fiber.App {
	repo := newMemNoteRepo()
	builder := attachment.NewBuilder(attachment.NewCodec(5 * 1024 * 1024))
	noteService := service.NewNoteService(repo, builder, nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopLogger{}))

	api := app.Group("/api")
	NewNoteController(noteService).RegisterRoutes(api)
	NewAttachmentController(noteService, forwardMediaType).RegisterRoutes(api)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeNote(t *testing.T, resp *http.Response) dto.NoteResponse {
	t.Helper()
	var note dto.NoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&note))
	return note
}

const noteBody = `{
	"title": "project kickoff",
	"content": "<p>agenda</p>",
	"priority": "high",
	"createdAt": "2026-04-01T10:00:00Z"
}`

func noteBodyWithAttachments(attachments string) string {
	return fmt.Sprintf(`{
		"title": "project kickoff",
		"content": "<p>agenda</p>",
		"priority": "high",
		"createdAt": "2026-04-01T10:00:00Z",
		"attachments": %s
	}`, attachments)
}

func TestCreateNoteAndDownloadAttachment(t *testing.T) {
	app := newTestApp(false)

	body := noteBodyWithAttachments(`[{"name":"spec.pdf","type":"application/pdf","content":"SGVsbG8="}]`)
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", body))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	note := decodeNote(t, resp)
	require.Len(t, note.Attachments, 1)
	assert.NotEmpty(t, note.Attachments[0].Id)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/attachments/"+note.Attachments[0].Id, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(payload))
	assert.Equal(t, fiber.MIMEOctetStream, resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="spec.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))
}

func TestDownloadForwardsMediaTypeWhenConfigured(t *testing.T) {
	app := newTestApp(true)

	body := noteBodyWithAttachments(`[{"name":"spec.pdf","type":"application/pdf","content":"SGVsbG8="}]`)
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", body))
	require.NoError(t, err)
	note := decodeNote(t, resp)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/attachments/"+note.Attachments[0].Id, nil))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
}

func TestDownloadEscapesFilename(t *testing.T) {
	app := newTestApp(false)

	body := noteBodyWithAttachments(`[{"name":"we\"ird.txt","type":"text/plain","content":"SGVsbG8="}]`)
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", body))
	require.NoError(t, err)
	note := decodeNote(t, resp)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/attachments/"+note.Attachments[0].Id, nil))
	require.NoError(t, err)
	assert.Equal(t, `attachment; filename="we\"ird.txt"`, resp.Header.Get(fiber.HeaderContentDisposition))
}

func TestCreateNoteAttachmentsNotAList(t *testing.T) {
	app := newTestApp(false)

	body := noteBodyWithAttachments(`"not-a-list"`)
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateNoteMissingFields(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", `{"title": "only a title"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errBody map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.NotEmpty(t, errBody["message"])
}

func TestCreateNoteMalformedAttachmentContent(t *testing.T) {
	app := newTestApp(false)

	body := noteBodyWithAttachments(`[{"name":"bad.bin","type":"application/octet-stream","content":"%%%"}]`)
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetAttachmentInvalidId(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/attachments/not-an-object-id", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetAttachmentUnknownId(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/attachments/"+primitive.NewObjectID().Hex(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateNoteIdempotent(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", noteBody))
	require.NoError(t, err)
	created := decodeNote(t, resp)

	// Same payload again; the response carries the stored document's current
	// values, not an error.
	resp, err = app.Test(jsonRequest(fiber.MethodPut, "/api/notes/"+created.Id, noteBody))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := decodeNote(t, resp)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Priority, updated.Priority)
}

func TestUpdateNoteErrors(t *testing.T) {
	app := newTestApp(false)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{
			name:       "invalid id",
			id:         "nope",
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "unknown id",
			id:         primitive.NewObjectID().Hex(),
			wantStatus: fiber.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(fiber.MethodPut, "/api/notes/"+tt.id, noteBody))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestUpdateNoteVersionConflict(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", noteBody))
	require.NoError(t, err)
	created := decodeNote(t, resp)

	req := jsonRequest(fiber.MethodPut, "/api/notes/"+created.Id, noteBody)
	req.Header.Set(fiber.HeaderIfMatch, `"42"`)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	req = jsonRequest(fiber.MethodPut, "/api/notes/"+created.Id, noteBody)
	req.Header.Set(fiber.HeaderIfMatch, `"1"`)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteNoteTwice(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", noteBody))
	require.NoError(t, err)
	created := decodeNote(t, resp)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/notes/"+created.Id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/notes/"+created.Id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteNoteInvalidId(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/notes/garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListNotesSearch(t *testing.T) {
	app := newTestApp(false)

	makeNote := func(title, createdAt string) {
		body := fmt.Sprintf(`{
			"title": %q,
			"content": "<p>body</p>",
			"priority": "low",
			"createdAt": %q
		}`, title, createdAt)
		resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", body))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	makeNote("Grocery list", "2026-04-01T08:00:00Z")
	makeNote("Meeting agenda", "2026-04-02T08:00:00Z")
	makeNote("grocery backup", "2026-04-03T08:00:00Z")

	t.Run("no match is empty array not 404", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/notes?search=zzzz", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "[]", strings.TrimSpace(string(body)))
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/notes?search=GROCERY", nil))
		require.NoError(t, err)

		var notes []dto.NoteResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
		require.Len(t, notes, 2)
		// Newest first.
		assert.Equal(t, "grocery backup", notes[0].Title)
		assert.Equal(t, "Grocery list", notes[1].Title)
	})

	t.Run("full list newest first", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/notes", nil))
		require.NoError(t, err)

		var notes []dto.NoteResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
		require.Len(t, notes, 3)
		assert.Equal(t, "grocery backup", notes[0].Title)
		assert.Equal(t, "Meeting agenda", notes[1].Title)
		assert.Equal(t, "Grocery list", notes[2].Title)
	})
}

func TestShowNote(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", noteBody))
	require.NoError(t, err)
	created := decodeNote(t, resp)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/notes/"+created.Id, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, created.Title, decodeNote(t, resp).Title)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/notes/"+primitive.NewObjectID().Hex(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvalidIfMatchHeader(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/notes", noteBody))
	require.NoError(t, err)
	created := decodeNote(t, resp)

	req := jsonRequest(fiber.MethodPut, "/api/notes/"+created.Id, noteBody)
	req.Header.Set(fiber.HeaderIfMatch, `"abc"`)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
