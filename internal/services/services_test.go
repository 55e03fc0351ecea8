package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/models"
)

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func datePtr(y int, m time.Month, d int) *datatypes.Date {
	v := date(y, m, d)
	return &v
}

// recordingHook remembers the hook calls it receives and whether the project row still existed.
type recordingHook struct {
	mu     sync.Mutex
	calls  []string
	exists func(id uint64) bool
	seen   []bool
}

func (h *recordingHook) ProjectSaved(_ context.Context, p *models.Project) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, "saved:"+p.Name)
}

func (h *recordingHook) ProjectDeleting(_ context.Context, p *models.Project) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, "deleting:"+p.Name)
	if h.exists != nil {
		h.seen = append(h.seen, h.exists(p.ID))
	}
}

// fakeDocumentStore records calls and answers with canned relays or errors.
type fakeDocumentStore struct {
	calls []string
	files []clients.UploadFile

	uploadStatus int
	uploadErr    error
	deleteStatus int
	deleteErr    error
	buildStatus  int
	buildErr     error
}

func relay(status int) *clients.Relay {
	return &clients.Relay{StatusCode: status}
}

func (f *fakeDocumentStore) Upload(_ context.Context, files []clients.UploadFile) (*clients.Relay, error) {
	f.calls = append(f.calls, "upload")
	f.files = append(f.files, files...)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return relay(f.uploadStatus), nil
}

func (f *fakeDocumentStore) BuildIndex(context.Context) (*clients.Relay, error) {
	f.calls = append(f.calls, "build")
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	return relay(f.buildStatus), nil
}

func (f *fakeDocumentStore) DeleteDocument(_ context.Context, filename string) (*clients.Relay, error) {
	f.calls = append(f.calls, "delete:"+filename)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return relay(f.deleteStatus), nil
}
