package service

import (
	"context"
	"sync"

	"github.com/notezipper/notezipper-go/internal/llm"
	"github.com/notezipper/notezipper-go/internal/model"
	"github.com/notezipper/notezipper-go/internal/repository"
)

// flakyNoteStore is a memory note store whose reads and writes can be made
// to fail.
type flakyNoteStore struct {
	*repository.MemoryNoteRepository
	err error
}

func newNoteStore() *flakyNoteStore {
	return &flakyNoteStore{MemoryNoteRepository: repository.NewMemoryNoteRepository()}
}

func (s *flakyNoteStore) Create(ctx context.Context, note *model.Note) error {
	if s.err != nil {
		return s.err
	}
	return s.MemoryNoteRepository.Create(ctx, note)
}

func (s *flakyNoteStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.MemoryNoteRepository.ListByOwner(ctx, ownerID)
}

// fakeCompleter records requests and answers with a canned reply or error.
type fakeCompleter struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []llm.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func (f *fakeCompleter) last() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

type welcomeCall struct{ to, name string }

type fakeNotifier struct {
	mu    sync.Mutex
	calls []welcomeCall
}

func (f *fakeNotifier) Welcome(to, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, welcomeCall{to, name})
}
