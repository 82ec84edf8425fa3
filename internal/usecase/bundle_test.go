package usecase

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/miorlan/asset-bundler/internal/domain"
)

type mocks struct {
	loader    *MockModelLoader
	merger    *MockMerger
	writer    *MockFileWriter
	validator *MockValidator
}

func newTestUseCase(t *testing.T) (*BundleUseCase, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		loader:    NewMockModelLoader(ctrl),
		merger:    NewMockMerger(ctrl),
		writer:    NewMockFileWriter(ctrl),
		validator: NewMockValidator(ctrl),
	}
	return NewBundleUseCase(m.loader, m.merger, m.writer, m.validator), m
}

func testModel() *domain.Model {
	return &domain.Model{Groups: []domain.Group{
		{Name: "app", Resources: []domain.Resource{
			domain.NewResource("/css/app.css", domain.TypeCSS),
			domain.NewResource("/js/app.js", domain.TypeJS),
		}},
		{Name: "lib", Resources: []domain.Resource{
			domain.NewResource("/js/lib.js", domain.TypeJS),
		}},
	}}
}

// mergeFirstURI returns the URI of the first resource as merged content.
func mergeFirstURI(ctx context.Context, resources []domain.Resource, minimize bool) (string, error) {
	return resources[0].URI, nil
}

func TestBundleUseCase_Execute(t *testing.T) {
	uc, m := newTestUseCase(t)
	out := t.TempDir()

	m.loader.EXPECT().Load(gomock.Any(), "assets.yaml").Return(testModel(), nil)
	m.merger.EXPECT().ProcessAndMerge(gomock.Any(), gomock.Any(), true).DoAndReturn(mergeFirstURI).Times(3)
	m.writer.EXPECT().Write(filepath.Join(out, "app.css"), []byte("/css/app.css")).Return(nil)
	m.writer.EXPECT().Write(filepath.Join(out, "app.js"), []byte("/js/app.js")).Return(nil)
	m.writer.EXPECT().Write(filepath.Join(out, "lib.js"), []byte("/js/lib.js")).Return(nil)

	paths, err := uc.Execute(context.Background(), "assets.yaml", out, Config{Minimize: true})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "app.css"),
		filepath.Join(out, "app.js"),
		filepath.Join(out, "lib.js"),
	}, paths)
}

func TestBundleUseCase_Execute_CallConfigOnContext(t *testing.T) {
	uc, m := newTestUseCase(t)

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&domain.Model{Groups: []domain.Group{
		{Name: "lib", Resources: []domain.Resource{domain.NewResource("/js/lib.js", domain.TypeJS)}},
	}}, nil)
	m.merger.EXPECT().ProcessAndMerge(gomock.Any(), gomock.Any(), false).DoAndReturn(
		func(ctx context.Context, resources []domain.Resource, minimize bool) (string, error) {
			assert.Equal(t, domain.Config{Encoding: "ISO-8859-1", MaxFileSize: 1024, MaxDepth: 3}, domain.ConfigFrom(ctx))
			return "lib();", nil
		})
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)

	_, err := uc.Execute(context.Background(), "assets.yaml", t.TempDir(), Config{
		Encoding:    "ISO-8859-1",
		MaxFileSize: 1024,
		MaxDepth:    3,
	})
	require.NoError(t, err)
}

func TestBundleUseCase_Execute_SelectedGroups(t *testing.T) {
	uc, m := newTestUseCase(t)
	out := t.TempDir()

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testModel(), nil)
	m.merger.EXPECT().ProcessAndMerge(gomock.Any(), []domain.Resource{domain.NewResource("/js/lib.js", domain.TypeJS)}, false).Return("lib();", nil)
	m.writer.EXPECT().Write(filepath.Join(out, "lib.js"), []byte("lib();")).Return(nil)

	paths, err := uc.Execute(context.Background(), "assets.yaml", out, Config{Groups: []string{"lib"}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "lib.js")}, paths)
}

func TestBundleUseCase_Execute_UnknownGroup(t *testing.T) {
	uc, m := newTestUseCase(t)
	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testModel(), nil)

	_, err := uc.Execute(context.Background(), "assets.yaml", t.TempDir(), Config{Groups: []string{"admin"}})

	var nf *domain.ErrGroupNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "admin", nf.Name)
}

func TestBundleUseCase_Execute_LoadError(t *testing.T) {
	uc, m := newTestUseCase(t)
	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, &domain.ErrGroupCycle{Path: []string{"a", "a"}})

	_, err := uc.Execute(context.Background(), "assets.yaml", t.TempDir(), Config{})
	assert.ErrorContains(t, err, "failed to load model")

	var cycle *domain.ErrGroupCycle
	assert.True(t, errors.As(err, &cycle))
}

func TestBundleUseCase_Execute_MergeError(t *testing.T) {
	uc, m := newTestUseCase(t)
	notFound := &domain.ErrResourceNotFound{URI: "/js/lib.js"}

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testModel(), nil)
	m.merger.EXPECT().ProcessAndMerge(gomock.Any(), gomock.Any(), false).Return("", notFound)

	_, err := uc.Execute(context.Background(), "assets.yaml", t.TempDir(), Config{Groups: []string{"lib"}})
	assert.ErrorContains(t, err, "failed to bundle group lib")

	var nf *domain.ErrResourceNotFound
	assert.True(t, errors.As(err, &nf))
}

func TestBundleUseCase_Execute_ValidationFailureRemovesOutput(t *testing.T) {
	uc, m := newTestUseCase(t)
	out := t.TempDir()
	target := filepath.Join(out, "lib.js")

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testModel(), nil)
	m.merger.EXPECT().ProcessAndMerge(gomock.Any(), gomock.Any(), false).Return("function (", nil)
	gomock.InOrder(
		m.writer.EXPECT().Write(target, []byte("function (")).Return(nil),
		m.validator.EXPECT().Validate(domain.TypeJS, []byte("function (")).Return(errors.New("invalid JavaScript")),
		m.writer.EXPECT().Write(target, nil).Return(nil),
	)

	_, err := uc.Execute(context.Background(), "assets.yaml", out, Config{Groups: []string{"lib"}, Validate: true})
	assert.ErrorContains(t, err, "validation failed")
}

func TestBundleUseCase_Execute_Progress(t *testing.T) {
	uc, m := newTestUseCase(t)

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testModel(), nil)
	m.merger.EXPECT().ProcessAndMerge(gomock.Any(), gomock.Any(), false).DoAndReturn(mergeFirstURI).AnyTimes()
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var (
		mu     sync.Mutex
		counts []int
		groups []string
	)
	_, err := uc.Execute(context.Background(), "assets.yaml", t.TempDir(), Config{
		Concurrency: 1,
		Progress: func(current, total int, group string) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 2, total)
			counts = append(counts, current)
			groups = append(groups, group)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, counts)
	assert.ElementsMatch(t, []string{"app", "lib"}, groups)
}

func TestBundleUseCase_Execute_CancelledContext(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, "assets.yaml", t.TempDir(), Config{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectGroups(t *testing.T) {
	model := testModel()

	all, err := selectGroups(model, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	picked, err := selectGroups(model, []string{"lib", "app"})
	require.NoError(t, err)
	assert.Equal(t, "lib", picked[0].Name)
	assert.Equal(t, "app", picked[1].Name)
}
