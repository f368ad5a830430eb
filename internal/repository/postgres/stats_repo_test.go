package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/backend/internal/repository/postgres"
	"github.com/vidtube/backend/internal/testutil"
)

func TestStatsRepository_ChannelStats(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewStatsRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	otherOwner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	fan, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// Empty channel
	stats, err := repo.ChannelStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalVideos)
	assert.Equal(t, int64(0), stats.TotalViews)
	assert.Equal(t, int64(0), stats.TotalSubscribers)
	assert.Equal(t, int64(0), stats.TotalLikes)

	first := testutil.NewVideoBuilder(owner.ID).WithViews(10).Build(t, testDB.DB)
	testutil.NewVideoBuilder(owner.ID).WithViews(5).Unpublished().Build(t, testDB.DB)
	foreign := testutil.NewVideoBuilder(otherOwner.ID).WithViews(99).Build(t, testDB.DB)

	testutil.Subscribe(t, testDB.DB, fan.ID, owner.ID)
	testutil.Subscribe(t, testDB.DB, otherOwner.ID, owner.ID)

	testutil.LikeVideo(t, testDB.DB, fan.ID, first.ID)
	testutil.LikeVideo(t, testDB.DB, fan.ID, foreign.ID)

	stats, err = repo.ChannelStats(ctx, owner.ID)
	require.NoError(t, err)

	// Drafts count toward the owner's totals; other channels never do
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(15), stats.TotalViews)
	assert.Equal(t, int64(2), stats.TotalSubscribers)
	assert.Equal(t, int64(1), stats.TotalLikes)
}
