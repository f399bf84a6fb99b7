package accommodation

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct{ mock.Mock }

func (m *mockRepository) Create(ctx context.Context, a *Accommodation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Accommodation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Accommodation), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter Filter) ([]*Accommodation, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*Accommodation), args.Int(1), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, a *Accommodation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) AddPhoto(ctx context.Context, id string, path string) error {
	return m.Called(ctx, id, path).Error(0)
}

// fakeStorage keeps saved files in memory so delete cleanup and photo
// reads can be observed.
type fakeStorage struct {
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}}
}

func (s *fakeStorage) Save(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, ErrPhotoNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

const (
	accID   = "11111111-1111-1111-1111-111111111111"
	ownerID = "22222222-2222-2222-2222-222222222222"
)

func TestCreateValidatesRequiredFields(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, newFakeStorage())

	_, err := svc.Create(context.Background(), CreateRequest{OwnerID: ownerID, Name: "  ", Address: "Thamel"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(context.Background(), CreateRequest{OwnerID: ownerID, Name: "Lakeside Lodge", Address: " "})
	assert.ErrorIs(t, err, ErrAddressRequired)

	repo.AssertNotCalled(t, "Create")
}

func TestCreateTrimsAndActivates(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *Accommodation) bool {
		return a.Name == "Lakeside Lodge" && a.City == "Pokhara" && a.IsActive
	})).Return(nil)
	svc := NewService(repo, newFakeStorage())

	a, err := svc.Create(context.Background(), CreateRequest{
		OwnerID: ownerID,
		Name:    "  Lakeside Lodge  ",
		Address: "Lakeside Rd",
		City:    " Pokhara ",
	})
	require.NoError(t, err)
	assert.True(t, a.IsActive)
	repo.AssertExpectations(t)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, accID).Return(&Accommodation{ID: accID, OwnerID: ownerID}, nil)
	svc := NewService(repo, newFakeStorage())

	name := "New Name"
	_, err := svc.Update(context.Background(), accID, UpdateRequest{Name: &name}, "someone-else", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateSysAdminBypassesOwnership(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, accID).Return(&Accommodation{ID: accID, OwnerID: ownerID, Name: "Old"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	svc := NewService(repo, newFakeStorage())

	name := "New Name"
	a, err := svc.Update(context.Background(), accID, UpdateRequest{Name: &name}, "someone-else", true)
	require.NoError(t, err)
	assert.Equal(t, "New Name", a.Name)
}

func TestPhotoOnlyServesListedPaths(t *testing.T) {
	store := newFakeStorage()
	listed := "accommodations/" + accID + "/a.jpg"
	store.files[listed] = []byte("jpeg-bytes")
	store.files["accommodations/"+accID+"/a_thumb.jpg"] = []byte("thumb-bytes")
	store.files["accommodations/"+accID+"/stray.jpg"] = []byte("stray")

	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, accID).Return(&Accommodation{
		ID: accID, OwnerID: ownerID, PhotoPaths: []string{listed},
	}, nil)
	svc := NewService(repo, store)

	rc, err := svc.Photo(context.Background(), accID, "a.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, []byte("jpeg-bytes"), data)

	rc, err = svc.Photo(context.Background(), accID, "a_thumb.jpg")
	require.NoError(t, err)
	data, err = io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, []byte("thumb-bytes"), data)

	_, err = svc.Photo(context.Background(), accID, "stray.jpg")
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestDeleteRemovesStoredPhotos(t *testing.T) {
	store := newFakeStorage()
	p1 := "accommodations/" + accID + "/a.jpg"
	p2 := "accommodations/" + accID + "/b.jpg"
	store.files[p1] = []byte("a")
	store.files[p2] = []byte("b")

	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, accID).Return(&Accommodation{
		ID: accID, OwnerID: ownerID, PhotoPaths: []string{p1, p2},
	}, nil)
	repo.On("Delete", mock.Anything, accID).Return(nil)
	svc := NewService(repo, store)

	require.NoError(t, svc.Delete(context.Background(), accID, ownerID, false))
	assert.Empty(t, store.files)
}
