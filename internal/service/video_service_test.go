package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/vidtube/backend/internal/repository/postgres"
	"github.com/vidtube/backend/internal/service"
	"github.com/vidtube/backend/internal/testutil"
)

func newVideoService(t *testing.T, testDB *testutil.TestDB, mediaStore *testutil.FakeMediaStore) *service.VideoService {
	t.Helper()
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewVideoService(repos.Video, repos.WatchEvent, repos.User, mediaStore, testutil.NopEvents{})
}

func TestVideoService_Publish(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	videoService := newVideoService(t, testDB, testutil.NewFakeMediaStore())
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.PublishInput
		wantErr error
	}{
		{
			name: "valid video",
			input: service.PublishInput{
				Title:        "My First Video",
				Description:  "hello",
				VideoKey:     "videos/abc.mp4",
				ThumbnailKey: "thumbnails/abc.png",
				Duration:     120.5,
				Meta:         datatypes.JSON(`{"codec":"h264"}`),
			},
		},
		{
			name: "missing title",
			input: service.PublishInput{
				VideoKey:     "videos/abc.mp4",
				ThumbnailKey: "thumbnails/abc.png",
			},
			wantErr: service.ErrMissingTitle,
		},
		{
			name: "missing media keys",
			input: service.PublishInput{
				Title: "No Media",
			},
			wantErr: service.ErrMissingMedia,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video, err := videoService.Publish(ctx, owner.ID, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner.ID, video.OwnerID)
			assert.Equal(t, tt.input.Title, video.Title)
			assert.True(t, video.IsPublished)
			assert.Equal(t, int64(0), video.Views)
		})
	}
}

func TestVideoService_Get_ViewRecording(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	videoService := newVideoService(t, testDB, testutil.NewFakeMediaStore())
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	viewer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder(owner.ID).Build(t, testDB.DB)

	// Anonymous view: no counter bump
	got, err := videoService.Get(ctx, video.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Views)

	// Owner view: no counter bump
	got, err = videoService.Get(ctx, video.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Views)

	// Authenticated non-owner view: bump and watch event
	got, err = videoService.Get(ctx, video.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	got, err = videoService.Get(ctx, video.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestVideoService_Get_Unpublished(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	videoService := newVideoService(t, testDB, testutil.NewFakeMediaStore())
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	draft := testutil.NewVideoBuilder(owner.ID).Unpublished().Build(t, testDB.DB)

	// Only the owner can see a draft
	got, err := videoService.Get(ctx, draft.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	_, err = videoService.Get(ctx, draft.ID, other.ID)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)

	_, err = videoService.Get(ctx, draft.ID, uuid.Nil)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)

	_, err = videoService.Get(ctx, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)
}

func TestVideoService_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	mediaStore := testutil.NewFakeMediaStore()
	videoService := newVideoService(t, testDB, mediaStore)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder(owner.ID).WithTitle("original").Build(t, testDB.DB)

	_, err := videoService.Update(ctx, video.ID, stranger.ID, service.UpdateVideoInput{Title: "hijacked"})
	assert.ErrorIs(t, err, service.ErrNotVideoOwner)

	updated, err := videoService.Update(ctx, video.ID, owner.ID, service.UpdateVideoInput{
		Title:        "renamed",
		ThumbnailKey: "thumbnails/replacement.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "thumbnails/replacement.png", updated.ThumbnailKey)

	// The replaced thumbnail object was cleaned up
	assert.Equal(t, []string{video.ThumbnailKey}, mediaStore.DeletedKeys())
}

func TestVideoService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	mediaStore := testutil.NewFakeMediaStore()
	videoService := newVideoService(t, testDB, mediaStore)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder(owner.ID).Build(t, testDB.DB)

	err := videoService.Delete(ctx, video.ID, stranger.ID)
	assert.ErrorIs(t, err, service.ErrNotVideoOwner)

	require.NoError(t, videoService.Delete(ctx, video.ID, owner.ID))

	_, err = videoService.Get(ctx, video.ID, owner.ID)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)

	// Both stored objects are removed with the record
	assert.ElementsMatch(t, []string{video.VideoKey, video.ThumbnailKey}, mediaStore.DeletedKeys())
}

func TestVideoService_TogglePublish(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	videoService := newVideoService(t, testDB, testutil.NewFakeMediaStore())
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder(owner.ID).Build(t, testDB.DB)

	toggled, err := videoService.TogglePublish(ctx, video.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPublished)

	toggled, err = videoService.TogglePublish(ctx, video.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPublished)
}

func TestVideoService_ChannelVideos(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	videoService := newVideoService(t, testDB, testutil.NewFakeMediaStore())
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithUserName("videochannel").Build(t, testDB.DB)
	testutil.NewVideoBuilder(owner.ID).WithTitle("public one").Build(t, testDB.DB)
	testutil.NewVideoBuilder(owner.ID).WithTitle("public two").Build(t, testDB.DB)
	testutil.NewVideoBuilder(owner.ID).WithTitle("draft").Unpublished().Build(t, testDB.DB)

	videos, err := videoService.ChannelVideos(ctx, "videochannel")
	require.NoError(t, err)
	require.Len(t, videos, 2)
	for _, v := range videos {
		assert.True(t, v.IsPublished)
	}

	_, err = videoService.ChannelVideos(ctx, "ghostchannel")
	assert.ErrorIs(t, err, service.ErrChannelNotFound)
}
