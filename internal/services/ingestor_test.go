package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/jobmapa/scraper/internal/browser"
	"github.com/jobmapa/scraper/internal/entities"
	"github.com/jobmapa/scraper/internal/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockJobStore struct {
	mock.Mock
}

func (m *mockJobStore) Upsert(ctx context.Context, job entities.JobPosting) (entities.JobPosting, bool, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(entities.JobPosting), args.Bool(1), args.Error(2)
}

func (m *mockJobStore) SourceURLs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type fakeSession struct {
	fakeRenderer
	closed atomic.Bool
}

func (f *fakeSession) Close() {
	f.closed.Store(true)
}

func sessionFactory(session *fakeSession) RenderSessionFactory {
	return func() (RenderSession, error) {
		return session, nil
	}
}

func Test_NewIngestor_RejectsZeroWorkers(t *testing.T) {
	_, err := NewIngestor(EventBus.New(), sessionFactory(&fakeSession{}), &stubResolver{},
		&mockJobStore{}, 0, "pracuj.pl")
	assert.Error(t, err)
}

func Test_Ingestor_IngestOne_StoresPostingAndPublishesEvent(t *testing.T) {
	store := &mockJobStore{}
	store.On("Upsert", mock.Anything, mock.Anything).
		Return(entities.JobPosting{SourceURL: "https://example.com/oferta/1", Title: "Kierowca"}, true, nil)

	bus := EventBus.New()
	var published []events.PostingStored
	err := bus.Subscribe(events.PostingStoredTopic, func(event events.PostingStored) {
		published = append(published, event)
	})
	assert.NoError(t, err)

	session := &fakeSession{fakeRenderer: fakeRenderer{html: "<html><body><h1>Kierowca</h1></body></html>"}}
	ingestor, err := NewIngestor(bus, sessionFactory(session), &stubResolver{}, store, 1, "pracuj.pl")
	assert.NoError(t, err)

	stored, created, err := ingestor.IngestOne(context.Background(), "https://example.com/oferta/1")

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Kierowca", stored.Title)
	assert.True(t, session.closed.Load())
	assert.Len(t, published, 1)
	assert.True(t, published[0].Created)
	store.AssertExpectations(t)
}

func Test_Ingestor_RenderFailureSkipsStorage(t *testing.T) {
	store := &mockJobStore{}
	bus := EventBus.New()

	session := &fakeSession{fakeRenderer: fakeRenderer{err: browser.ErrRenderFailed}}
	ingestor, err := NewIngestor(bus, sessionFactory(session), &stubResolver{}, store, 1, "pracuj.pl")
	assert.NoError(t, err)

	_, _, err = ingestor.IngestOne(context.Background(), "https://example.com/oferta/1")

	assert.ErrorIs(t, err, browser.ErrRenderFailed)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func Test_Ingestor_IngestBatch_HandlesEveryURL(t *testing.T) {
	store := &mockJobStore{}
	store.On("Upsert", mock.Anything, mock.Anything).
		Return(entities.JobPosting{}, false, nil)

	factory := func() (RenderSession, error) {
		return &fakeSession{fakeRenderer: fakeRenderer{html: "<html><body><h1>Magazynier</h1></body></html>"}}, nil
	}
	ingestor, err := NewIngestor(EventBus.New(), factory, &stubResolver{}, store, 2, "pracuj.pl")
	assert.NoError(t, err)

	ingestor.IngestBatch(context.Background(), []string{
		"https://example.com/oferta/1",
		"https://example.com/oferta/2",
		"https://example.com/oferta/3",
	})

	store.AssertNumberOfCalls(t, "Upsert", 3)
}

func Test_Ingestor_IngestBatch_SkipsFailedURLsAndContinues(t *testing.T) {
	store := &mockJobStore{}
	store.On("Upsert", mock.Anything, mock.Anything).
		Return(entities.JobPosting{}, false, nil).Once()
	store.On("Upsert", mock.Anything, mock.Anything).
		Return(entities.JobPosting{}, false, errors.New("disk full")).Once()
	store.On("Upsert", mock.Anything, mock.Anything).
		Return(entities.JobPosting{}, false, nil).Once()

	factory := func() (RenderSession, error) {
		return &fakeSession{fakeRenderer: fakeRenderer{html: "<html><body><h1>Magazynier</h1></body></html>"}}, nil
	}
	ingestor, err := NewIngestor(EventBus.New(), factory, &stubResolver{}, store, 1, "pracuj.pl")
	assert.NoError(t, err)

	ingestor.IngestBatch(context.Background(), []string{
		"https://example.com/oferta/1",
		"https://example.com/oferta/2",
		"https://example.com/oferta/3",
	})

	store.AssertNumberOfCalls(t, "Upsert", 3)
}
